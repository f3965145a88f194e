package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"dprefs/internal/dprefs"
	"dprefs/internal/prefs"
)

func newPutCmd(provider *appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "put <kind> <key> <value>",
		Short: "Store a preference under a new key",
		Long: `Store a preference. kind is one of string, int, float, double, long,
bool or object. Objects are given in the configured codec format (JSON by
default). Keys are write-once: remove a key before putting it again.

Examples:
  dprefs put string user.name ada
  dprefs put double ratio 700.965
  dprefs put object profile '{"age": 36}'`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := prefs.ParseKind(args[0])
			if err != nil {
				return err
			}
			a, err := provider.Get()
			if err != nil {
				return err
			}
			if err := putValue(a, kind, args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "%s %s\n", successColor(a.Out, "stored"), args[1])
			return nil
		},
	}
}

func putValue(a *app, kind prefs.Kind, key, raw string) error {
	p := a.Prefs
	switch kind {
	case prefs.KindString:
		return p.PutString(key, raw)
	case prefs.KindInt:
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return fmt.Errorf("parsing int %q: %w", raw, err)
		}
		return p.PutInt(key, int32(v))
	case prefs.KindFloat:
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return fmt.Errorf("parsing float %q: %w", raw, err)
		}
		return p.PutFloat(key, float32(v))
	case prefs.KindDouble:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("parsing double %q: %w", raw, err)
		}
		return p.PutDouble(key, v)
	case prefs.KindLong:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing long %q: %w", raw, err)
		}
		return p.PutLong(key, v)
	case prefs.KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parsing bool %q: %w", raw, err)
		}
		return p.PutBool(key, v)
	case prefs.KindObject:
		var v any
		if err := a.codec().Decode(raw, &v); err != nil {
			return fmt.Errorf("parsing %s object: %w", a.codec().Name(), err)
		}
		return p.PutObject(key, v)
	}
	return fmt.Errorf("unsupported kind %s", kind)
}

func newGetCmd(provider *appProvider) *cobra.Command {
	var def string

	cmd := &cobra.Command{
		Use:   "get <kind> <key>",
		Short: "Print a preference",
		Long: `Print the preference stored under key, read as kind.

A missing key prints the --default value, or the library default for the
kind when no default is given. A missing object prints nothing.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := prefs.ParseKind(args[0])
			if err != nil {
				return err
			}
			a, err := provider.Get()
			if err != nil {
				return err
			}
			out, err := getValue(a, kind, args[1], def, cmd.Flags().Changed("default"))
			if err != nil {
				return err
			}
			fmt.Fprintln(a.Out, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&def, "default", "", "value printed when the key is missing")
	return cmd
}

func getValue(a *app, kind prefs.Kind, key, rawDef string, hasDef bool) (string, error) {
	p := a.Prefs
	switch kind {
	case prefs.KindString:
		def := prefs.DefaultString
		if hasDef {
			def = rawDef
		}
		return p.GetStringOr(key, def)
	case prefs.KindInt:
		def := prefs.DefaultInt
		if hasDef {
			v, err := strconv.ParseInt(rawDef, 10, 32)
			if err != nil {
				return "", fmt.Errorf("parsing default %q: %w", rawDef, err)
			}
			def = int32(v)
		}
		v, err := p.GetIntOr(key, def)
		return strconv.FormatInt(int64(v), 10), err
	case prefs.KindFloat:
		def := prefs.DefaultFloat
		if hasDef {
			v, err := strconv.ParseFloat(rawDef, 32)
			if err != nil {
				return "", fmt.Errorf("parsing default %q: %w", rawDef, err)
			}
			def = float32(v)
		}
		v, err := p.GetFloatOr(key, def)
		return strconv.FormatFloat(float64(v), 'g', -1, 32), err
	case prefs.KindDouble:
		def := prefs.DefaultDouble
		if hasDef {
			v, err := strconv.ParseFloat(rawDef, 64)
			if err != nil {
				return "", fmt.Errorf("parsing default %q: %w", rawDef, err)
			}
			def = v
		}
		v, err := p.GetDoubleOr(key, def)
		return prefs.FormatDouble(v), err
	case prefs.KindLong:
		def := prefs.DefaultLong
		if hasDef {
			v, err := strconv.ParseInt(rawDef, 10, 64)
			if err != nil {
				return "", fmt.Errorf("parsing default %q: %w", rawDef, err)
			}
			def = v
		}
		v, err := p.GetLongOr(key, def)
		return strconv.FormatInt(v, 10), err
	case prefs.KindBool:
		def := prefs.DefaultBool
		if hasDef {
			v, err := strconv.ParseBool(rawDef)
			if err != nil {
				return "", fmt.Errorf("parsing default %q: %w", rawDef, err)
			}
			def = v
		}
		v, err := p.GetBoolOr(key, def)
		return strconv.FormatBool(v), err
	case prefs.KindObject:
		var v any
		ok, err := p.GetObject(key, &v)
		if err != nil {
			return "", err
		}
		if !ok {
			return rawDef, nil
		}
		return a.codec().Encode(v)
	}
	return "", fmt.Errorf("unsupported kind %s", kind)
}

func newRmCmd(provider *appProvider) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <key>...",
		Aliases: []string{"remove"},
		Short:   "Remove preferences so their keys can be written again",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get()
			if err != nil {
				return err
			}
			for _, key := range args {
				if err := a.Prefs.RemovePref(key); err != nil {
					return fmt.Errorf("removing %s: %w", key, err)
				}
				fmt.Fprintf(a.Out, "%s %s\n", successColor(a.Out, "removed"), key)
			}
			return nil
		},
	}
}

func newClearCmd(provider *appProvider) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every preference in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to clear without --force")
			}
			a, err := provider.Get()
			if err != nil {
				return err
			}
			if err := a.Prefs.ClearAllPrefs(); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "%s %s\n", warnColor(a.Out, "cleared"), a.Context.Name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "clear without refusing")
	return cmd
}

func newExistsCmd(provider *appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "exists <key>",
		Short: "Report whether a key holds a value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get()
			if err != nil {
				return err
			}
			ok, err := a.Prefs.DoesKeyExist(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.Out, strconv.FormatBool(ok))
			return nil
		},
	}
}

func newListCmd(provider *appProvider) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored keys",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get()
			if err != nil {
				return err
			}
			keys, err := a.Prefs.Keys()
			if err != nil {
				return err
			}
			return writeKeys(a.Out, a.Context.Name, keys)
		},
	}
}

func newKeyinfoCmd(provider *appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "keyinfo",
		Short: "Show the master key and store location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get()
			if err != nil {
				return err
			}
			mk := a.Context.MasterKey
			return writeFields(a.Out, [][2]string{
				{"key id", mk.KeyID},
				{"fingerprint", mk.Fingerprint()},
				{"store", a.Context.Name},
				{"data dir", a.Context.DataDir},
				{"codec", a.codec().Name()},
				{"database", dbPath(a.Context)},
			})
		},
	}
}

func dbPath(sc dprefs.StorageContext) string {
	return filepath.Join(sc.DataDir, dprefs.DBFile)
}

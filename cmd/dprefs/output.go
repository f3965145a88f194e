package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/term"

	"dprefs/internal/prefs"
)

func (a *app) codec() prefs.Codec {
	if a.Context.Codec == nil {
		return prefs.JSONCodec{}
	}
	return a.Context.Codec
}

// isTerminal reports whether w is a terminal. Buffers and pipes are not.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func successColor(w io.Writer, s string) string {
	if isTerminal(w) {
		return "\033[32m" + s + "\033[0m"
	}
	return s
}

func warnColor(w io.Writer, s string) string {
	if isTerminal(w) {
		return "\033[38;5;214m" + s + "\033[0m"
	}
	return s
}

// writeKeys prints one key per line, or a numbered table on a terminal.
func writeKeys(w io.Writer, store string, keys []string) error {
	if !isTerminal(w) {
		for _, k := range keys {
			if _, err := fmt.Fprintln(w, k); err != nil {
				return err
			}
		}
		return nil
	}

	if len(keys) == 0 {
		_, err := fmt.Fprintf(w, "no preferences in %s\n", store)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKEY")
	for i, k := range keys {
		fmt.Fprintf(tw, "%d\t%s\n", i+1, k)
	}
	return tw.Flush()
}

// writeFields prints name/value pairs, aligned on a terminal and as
// name=value lines otherwise.
func writeFields(w io.Writer, fields [][2]string) error {
	if !isTerminal(w) {
		for _, f := range fields {
			if _, err := fmt.Fprintf(w, "%s=%s\n", f[0], f[1]); err != nil {
				return err
			}
		}
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range fields {
		fmt.Fprintf(tw, "%s:\t%s\n", f[0], f[1])
	}
	return tw.Flush()
}

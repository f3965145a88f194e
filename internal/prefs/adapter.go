package prefs

import (
	"errors"
	"fmt"
	"strconv"

	"dprefs/internal/logging"
)

// ErrValueType is returned when a value's Go type does not match its Kind.
var ErrValueType = errors.New("value type does not match kind")

var logger = logging.For("prefs")

// NativeStore is the capability set of the backing store: strings, 32-bit
// ints, booleans, single-precision floats and 64-bit ints, keyed by name.
// Getters report ok=false when the name is absent.
type NativeStore interface {
	PutString(name, v string) error
	GetString(name string) (string, bool, error)
	PutInt(name string, v int32) error
	GetInt(name string) (int32, bool, error)
	PutBool(name string, v bool) error
	GetBool(name string) (bool, bool, error)
	PutFloat(name string, v float32) error
	GetFloat(name string) (float32, bool, error)
	PutLong(name string, v int64) error
	GetLong(name string) (int64, bool, error)
	Remove(name string) error
	Clear() error
	Contains(name string) (bool, error)
	Keys() ([]string, error)
	Close() error
}

// Adapter maps every Kind onto the native representations of a NativeStore.
// Doubles are kept as their shortest exact decimal string and objects as the
// codec's string payload; all other kinds are stored natively.
type Adapter struct {
	native NativeStore
	codec  Codec
}

// NewAdapter wraps native. A nil codec selects JSONCodec.
func NewAdapter(native NativeStore, codec Codec) *Adapter {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &Adapter{native: native, codec: codec}
}

// Put encodes value for kind and writes it in one commit.
func (a *Adapter) Put(key string, kind Kind, value any) error {
	switch kind {
	case KindString:
		v, ok := value.(string)
		if !ok {
			return typeError(kind, value)
		}
		return a.native.PutString(key, v)
	case KindInt:
		v, ok := value.(int32)
		if !ok {
			return typeError(kind, value)
		}
		return a.native.PutInt(key, v)
	case KindFloat:
		v, ok := value.(float32)
		if !ok {
			return typeError(kind, value)
		}
		return a.native.PutFloat(key, v)
	case KindDouble:
		v, ok := value.(float64)
		if !ok {
			return typeError(kind, value)
		}
		return a.native.PutString(key, FormatDouble(v))
	case KindLong:
		v, ok := value.(int64)
		if !ok {
			return typeError(kind, value)
		}
		return a.native.PutLong(key, v)
	case KindBool:
		v, ok := value.(bool)
		if !ok {
			return typeError(kind, value)
		}
		return a.native.PutBool(key, v)
	case KindObject:
		payload, err := a.codec.Encode(value)
		if err != nil {
			return fmt.Errorf("encoding object %q with %s: %w", key, a.codec.Name(), err)
		}
		return a.native.PutString(key, payload)
	default:
		return fmt.Errorf("put %q: unsupported kind %v", key, kind)
	}
}

// Get reads key as kind. An absent key yields def unchanged. A stored double
// that no longer parses yields DefaultDouble rather than def, since the key
// is present but its content is unusable. Objects are read with GetObject.
func (a *Adapter) Get(key string, kind Kind, def any) (any, error) {
	var (
		v   any
		ok  bool
		err error
	)
	switch kind {
	case KindString:
		var s string
		s, ok, err = a.native.GetString(key)
		v = s
	case KindInt:
		var i int32
		i, ok, err = a.native.GetInt(key)
		v = i
	case KindFloat:
		var f float32
		f, ok, err = a.native.GetFloat(key)
		v = f
	case KindLong:
		var l int64
		l, ok, err = a.native.GetLong(key)
		v = l
	case KindBool:
		var b bool
		b, ok, err = a.native.GetBool(key)
		v = b
	case KindDouble:
		var s string
		s, ok, err = a.native.GetString(key)
		if err == nil && ok {
			d, perr := strconv.ParseFloat(s, 64)
			if perr != nil {
				logger.Warn("stored double is not a number, returning library default", "key", key, "err", perr)
				return DefaultDouble, nil
			}
			v = d
		}
	default:
		return nil, fmt.Errorf("get %q: unsupported kind %v", key, kind)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// GetObject decodes the object stored under key into target. It returns
// false when the key is absent or its payload cannot be decoded into target.
func (a *Adapter) GetObject(key string, target any) (bool, error) {
	payload, ok, err := a.native.GetString(key)
	if err != nil || !ok {
		return false, err
	}
	if err := a.codec.Decode(payload, target); err != nil {
		logger.Warn("stored object does not decode into target", "key", key, "codec", a.codec.Name(), "err", err)
		return false, nil
	}
	return true, nil
}

func (a *Adapter) Remove(key string) error         { return a.native.Remove(key) }
func (a *Adapter) Clear() error                    { return a.native.Clear() }
func (a *Adapter) Exists(key string) (bool, error) { return a.native.Contains(key) }
func (a *Adapter) Keys() ([]string, error)         { return a.native.Keys() }
func (a *Adapter) Close() error                    { return a.native.Close() }

// FormatDouble renders v as the shortest decimal string that parses back to
// exactly v.
func FormatDouble(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func typeError(kind Kind, value any) error {
	return fmt.Errorf("%w: %v wants %s, got %T", ErrValueType, kind, goType(kind), value)
}

func goType(kind Kind) string {
	switch kind {
	case KindString:
		return "string"
	case KindInt:
		return "int32"
	case KindFloat:
		return "float32"
	case KindDouble:
		return "float64"
	case KindLong:
		return "int64"
	case KindBool:
		return "bool"
	default:
		return "any"
	}
}

package prefs

// Library defaults returned by a getter when the key is absent and the
// caller supplied no default of its own. The numeric values are chosen to be
// unlikely as real data, so a zero or false stored by the caller is never
// mistaken for a miss.
const (
	DefaultString         = ""
	DefaultInt    int32   = -1111111
	DefaultFloat  float32 = -0.1000001
	DefaultDouble float64 = -0.1000001
	DefaultLong   int64   = -1111111
	DefaultBool           = false
)

// Default returns the library default for k. Objects have none (nil).
func Default(k Kind) any {
	switch k {
	case KindString:
		return DefaultString
	case KindInt:
		return DefaultInt
	case KindFloat:
		return DefaultFloat
	case KindDouble:
		return DefaultDouble
	case KindLong:
		return DefaultLong
	case KindBool:
		return DefaultBool
	default:
		return nil
	}
}

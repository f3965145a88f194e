package prefs

import (
	"fmt"
	"strings"
)

// Kind is the semantic type a preference is written and read under.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindDouble
	KindLong
	KindBool
	KindObject
)

var kindNames = [...]string{
	KindString: "string",
	KindInt:    "int",
	KindFloat:  "float",
	KindDouble: "double",
	KindLong:   "long",
	KindBool:   "bool",
	KindObject: "object",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a kind name ("string", "int", ...) to its Kind.
// "boolean" is accepted as an alias for "bool".
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "boolean" {
		return KindBool, nil
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

package classname

import (
	"strings"

	"github.com/yacobolo/skribble/internal/cssfmt"
)

// Arguments are the literal call arguments of a class name: c.p('10px') is a
// single value and c('padding', '10px') is a key/value pair. Values are kept
// unescaped; escaping only happens when they become part of a selector.
type Arguments struct {
	Key   string
	Value string
	keyed bool
}

// Value returns single value arguments.
func Value(v string) Arguments {
	return Arguments{Value: strings.TrimSpace(v)}
}

// KeyValue returns key/value arguments.
func KeyValue(key, value string) Arguments {
	return Arguments{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value), keyed: true}
}

// Keyed reports whether the arguments are a key/value pair.
func (a Arguments) Keyed() bool {
	return a.keyed
}

// selector renders the escaped argument as it appears between \[ and \].
func (a Arguments) selector() string {
	if a.keyed {
		return cssfmt.Escape(a.Key) + `\:` + cssfmt.Escape(a.Value)
	}
	return cssfmt.Escape(a.Value)
}

// String renders the arguments as they appear in the DOM.
func (a Arguments) String() string {
	if a.keyed {
		return "[" + a.Key + ":" + a.Value + "]"
	}
	return "[" + a.Value + "]"
}

// parseArguments reads the DOM form "[value]" or "[key:value]".
func parseArguments(s string) (Arguments, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") || len(s) < 3 {
		return Arguments{}, false
	}
	s = s[1 : len(s)-1]
	key, value, found := strings.Cut(s, ":")
	if !found {
		return Value(s), true
	}
	return KeyValue(key, value), true
}

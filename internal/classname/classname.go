// Package classname turns the tokens of a member chain such as
// c.sm.focus.p.$px into a validated class name record, and renders that
// record as a selector and a CSS rule.
//
// A ClassName is a value. Every Add method returns an updated copy, and a
// class name that became Invalid stays Invalid: later additions return it
// unchanged and Err reports the first problem.
package classname

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yacobolo/skribble/internal/config"
)

// Validity is the tagged state of a class name.
type Validity int

const (
	// Undefined means no value has been attached yet, for example c.sm.p.
	Undefined Validity = iota
	// Valid class names produce CSS.
	Valid
	// Invalid class names are dropped. Err explains why.
	Invalid
)

func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "undefined"
	}
}

// Score weights per layer. A class name's score is the sum over its parts of
// weight times the part's position in the configuration, so that rules
// appear in the order the configuration declares them.
const (
	weightValue          = 1
	weightAtom           = 100
	weightModifier       = 10_000
	weightParentModifier = 100_000
	weightMediaQuery     = 1_000_000
	weightBreakpoint     = 10_000_000
)

// ClassName is a single resolved class name.
type ClassName struct {
	cfg *config.Config

	breakpoint     string
	mediaQuery     string
	parentModifier string
	modifiers      []string
	atom           string
	styleName      string
	shorthand      string
	argument       *Arguments

	groups    []string
	keyframes []string
	value     string

	score    int
	validity Validity
	err      error
}

// New returns an empty class name bound to cfg.
func New(cfg *config.Config) ClassName {
	return ClassName{cfg: cfg}
}

// FromTokens is New followed by AddTokens.
func FromTokens(cfg *config.Config, tokens ...string) ClassName {
	return New(cfg).AddTokens(tokens...)
}

// FromDOMString parses a class as it appears in the document, such as
// "sm:focus:p::$px", "$block" or "md:p::[10px]".
func FromDOMString(cfg *config.Config, s string) ClassName {
	c := New(cfg)
	segments := strings.Split(s, "::")
	switch len(segments) {
	case 1:
		if strings.HasPrefix(s, "$") || strings.HasPrefix(s, "[") {
			return c.addValueSegment(s)
		}
		return c.AddTokens(strings.Split(s, ":")...)
	case 2:
		c = c.AddTokens(strings.Split(segments[0], ":")...)
		return c.addValueSegment(segments[1])
	default:
		return c.invalidate(fmt.Errorf("%w: malformed class %q", ErrUnknownValue, s))
	}
}

func (c ClassName) addValueSegment(segment string) ClassName {
	if strings.HasPrefix(segment, "$") {
		return c.AddToken(segment)
	}
	args, ok := parseArguments(segment)
	if !ok {
		return c.invalidate(fmt.Errorf("%w: malformed arguments %q", ErrUnknownValue, segment))
	}
	return c.AddArguments(args)
}

func (c ClassName) invalidate(err error) ClassName {
	c.validity = Invalid
	c.err = err
	return c
}

// AddTokens adds each token in order.
func (c ClassName) AddTokens(tokens ...string) ClassName {
	for _, token := range tokens {
		c = c.AddToken(token)
	}
	return c
}

// AddToken classifies token against the configuration, first match wins:
// breakpoint, media query, parent modifier, modifier, $value, atom.
func (c ClassName) AddToken(token string) ClassName {
	if c.validity == Invalid {
		return c
	}
	cfg := c.cfg

	switch {
	case cfg.Breakpoints.Has(token):
		if c.breakpoint != "" {
			return c.invalidate(conflict("breakpoint", c.breakpoint, token))
		}
		c.breakpoint = token
		c.score += weightBreakpoint * cfg.Breakpoints.Index(token)

	case cfg.MediaQueries.Has(token):
		if c.mediaQuery != "" {
			return c.invalidate(conflict("media query", c.mediaQuery, token))
		}
		c.mediaQuery = token
		c.score += weightMediaQuery * cfg.MediaQueries.Index(token)

	case cfg.ParentModifiers.Has(token):
		if c.parentModifier != "" {
			return c.invalidate(conflict("parent modifier", c.parentModifier, token))
		}
		c.parentModifier = token
		c.score += weightParentModifier * cfg.ParentModifiers.Index(token)

	case cfg.Modifiers.Has(token):
		if slices.Contains(c.modifiers, token) {
			return c.invalidate(fmt.Errorf("%w: duplicate modifier %q", ErrConflict, token))
		}
		c.modifiers = append(slices.Clone(c.modifiers), token)
		slices.SortFunc(c.modifiers, func(a, b string) int {
			return cfg.Modifiers.Index(a) - cfg.Modifiers.Index(b)
		})
		c.score += weightModifier * cfg.Modifiers.Index(token)

	case strings.HasPrefix(token, "$"):
		return c.addValueToken(strings.TrimPrefix(token, "$"))

	default:
		if c.atom != "" {
			return c.invalidate(conflict("atom", c.atom, token))
		}
		if c.shorthand != "" {
			return c.invalidate(conflict("shorthand", "$"+c.shorthand, token))
		}
		meta, ok := cfg.Atoms.Get(token)
		if !ok {
			return c.invalidate(fmt.Errorf("%w: %q is not an atom, modifier, media query or breakpoint", ErrUnknownValue, token))
		}
		c.atom = token
		c.keyframes = slices.Clone(meta.Keyframes)
		c.groups = slices.Clone(meta.Groups)
		c.score += weightAtom * cfg.Atoms.Index(token)
	}

	return c
}

// addValueToken handles $name: a value of the current atom, or a shorthand
// when no atom has been given.
func (c ClassName) addValueToken(name string) ClassName {
	if c.styleName != "" || c.shorthand != "" || c.argument != nil {
		existing := c.styleName + c.shorthand
		if c.argument != nil {
			existing = c.argument.String()
		}
		return c.invalidate(conflict("value", existing, "$"+name))
	}

	if c.atom == "" {
		if !c.cfg.Shorthand.Has(name) {
			return c.invalidate(fmt.Errorf("%w: %q is not a shorthand", ErrUnknownValue, name))
		}
		c.shorthand = name
		c.validity = Valid
		return c
	}

	meta, _ := c.cfg.Atoms.Get(c.atom)
	value, ok := meta.Values.Get(name)
	if !ok {
		return c.invalidate(fmt.Errorf("%w: atom %q has no value %q", ErrUnknownValue, c.atom, name))
	}
	c.styleName = name
	c.value = value.Raw
	c.score += weightValue * meta.Values.Index(name)
	c.validity = Valid
	return c
}

// AddArguments attaches literal call arguments. Single values need an atom
// to apply to; key/value arguments stand on their own.
func (c ClassName) AddArguments(args Arguments) ClassName {
	if c.validity == Invalid {
		return c
	}
	if c.styleName != "" || c.shorthand != "" {
		return c.invalidate(fmt.Errorf("%w: %s already has the value $%s", ErrArgumentsNotSupported, c.Selector(), c.styleName+c.shorthand))
	}
	if c.argument != nil {
		return c.invalidate(conflict("arguments", c.argument.String(), args.String()))
	}
	if c.atom == "" && !args.keyed {
		return c.invalidate(fmt.Errorf("%w: value %q has no atom to apply to", ErrArgumentsNotSupported, args.Value))
	}

	if meta, ok := c.cfg.Atoms.Get(c.atom); ok {
		c.score += weightValue * meta.Values.Len()
	}
	c.argument = &args
	c.value = args.Value
	c.validity = Valid
	return c
}

// Validity returns the current state.
func (c ClassName) Validity() Validity { return c.validity }

// Valid reports whether the class name produces CSS.
func (c ClassName) Valid() bool { return c.validity == Valid }

// Err returns the reason the class name is invalid, or nil.
func (c ClassName) Err() error { return c.err }

// Score orders class names in the stylesheet. Lower scores come first.
func (c ClassName) Score() int { return c.score }

// Breakpoint returns the breakpoint name or "".
func (c ClassName) Breakpoint() string { return c.breakpoint }

// MediaQuery returns the media query name or "".
func (c ClassName) MediaQuery() string { return c.mediaQuery }

// ParentModifier returns the parent modifier name or "".
func (c ClassName) ParentModifier() string { return c.parentModifier }

// Modifiers returns the modifiers in configuration order.
func (c ClassName) Modifiers() []string { return slices.Clone(c.modifiers) }

// Atom returns the atom name or "".
func (c ClassName) Atom() string { return c.atom }

// StyleName returns the $value name of the atom or "".
func (c ClassName) StyleName() string { return c.styleName }

// Shorthand returns the shorthand name or "".
func (c ClassName) Shorthand() string { return c.shorthand }

// Arguments returns the call arguments, if any.
func (c ClassName) Arguments() (Arguments, bool) {
	if c.argument == nil {
		return Arguments{}, false
	}
	return *c.argument, true
}

// Value returns the resolved CSS value used by the atom's style rules.
func (c ClassName) Value() string { return c.value }

// Groups returns the group names used by the atom.
func (c ClassName) Groups() []string { return slices.Clone(c.groups) }

// Keyframes returns the keyframe names used by the atom.
func (c ClassName) Keyframes() []string { return slices.Clone(c.keyframes) }

// Config returns the configuration the class name resolves against.
func (c ClassName) Config() *config.Config { return c.cfg }

// String returns the class as it appears in the DOM.
func (c ClassName) String() string {
	tokens := c.tokens()
	var value string
	switch {
	case c.shorthand != "":
		value = "$" + c.shorthand
	case c.styleName != "":
		value = "$" + c.styleName
	case c.argument != nil:
		value = c.argument.String()
	}
	if value == "" {
		return strings.Join(tokens, ":")
	}
	if len(tokens) == 0 {
		return value
	}
	return strings.Join(tokens, ":") + "::" + value
}

func (c ClassName) tokens() []string {
	var tokens []string
	for _, t := range []string{c.breakpoint, c.mediaQuery, c.parentModifier} {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	tokens = append(tokens, c.modifiers...)
	if c.atom != "" {
		tokens = append(tokens, c.atom)
	}
	return tokens
}

package config

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// The configuration is decoded from yaml.Node trees rather than into Go maps
// so that key order survives. JSON documents are valid YAML and decode the
// same way.

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func errorAt(n *yaml.Node, path, format string, args ...any) error {
	e := &ParseError{Path: path, Msg: fmt.Sprintf(format, args...)}
	if n != nil {
		e.Line = n.Line
	}
	return e
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// eachEntry calls fn for every key/value pair of an object in document order.
// A missing or null node is an empty object.
func eachEntry(n *yaml.Node, path string, fn func(key string, value *yaml.Node, path string) error) error {
	n = resolve(n)
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return errorAt(n, path, "expected an object")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := resolve(n.Content[i])
		if key.Kind != yaml.ScalarNode {
			return errorAt(key, path, "object keys must be strings")
		}
		if err := fn(key.Value, n.Content[i+1], childPath(path, key.Value)); err != nil {
			return err
		}
	}
	return nil
}

// eachItem calls fn for every element of a list. A missing or null node is an
// empty list.
func eachItem(n *yaml.Node, path string, fn func(item *yaml.Node, path string) error) error {
	n = resolve(n)
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		return errorAt(n, path, "expected a list")
	}
	for i, item := range n.Content {
		if err := fn(item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func decodeValue(n *yaml.Node, path string) (CSSValue, error) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || isNull(n) {
		return CSSValue{}, errorAt(n, path, "expected a string or number")
	}
	switch n.Tag {
	case "!!int", "!!float":
		return CSSValue{Raw: n.Value, Number: true}, nil
	default:
		return CSSValue{Raw: n.Value}, nil
	}
}

func decodeString(n *yaml.Node, path string) (string, error) {
	v, err := decodeValue(n, path)
	return v.Raw, err
}

func decodeBool(n *yaml.Node, path string) (bool, error) {
	n = resolve(n)
	if isNull(n) {
		return false, nil
	}
	if n.Kind != yaml.ScalarNode || n.Tag != "!!bool" {
		return false, errorAt(n, path, "expected a boolean")
	}
	b, err := strconv.ParseBool(n.Value)
	if err != nil {
		return false, errorAt(n, path, "expected a boolean")
	}
	return b, nil
}

func decodeStrings(n *yaml.Node, path string) ([]string, error) {
	var out []string
	err := eachItem(n, path, func(item *yaml.Node, path string) error {
		s, err := decodeString(item, path)
		out = append(out, s)
		return err
	})
	return out, err
}

func decodeValues(n *yaml.Node, path string) (*OrderedMap[CSSValue], error) {
	out := NewOrderedMap[CSSValue]()
	err := eachEntry(n, path, func(key string, value *yaml.Node, path string) error {
		v, err := decodeValue(value, path)
		if err != nil {
			return err
		}
		out.Set(key, v)
		return nil
	})
	return out, err
}

func decodeStringMap(n *yaml.Node, path string) (*OrderedMap[string], error) {
	out := NewOrderedMap[string]()
	err := eachEntry(n, path, func(key string, value *yaml.Node, path string) error {
		s, err := decodeString(value, path)
		if err != nil {
			return err
		}
		out.Set(key, s)
		return nil
	})
	return out, err
}

func decodeTemplates(n *yaml.Node, path string) (*OrderedMap[[]string], error) {
	out := NewOrderedMap[[]string]()
	err := eachEntry(n, path, func(key string, value *yaml.Node, path string) error {
		list, err := decodeStrings(value, path)
		if err != nil {
			return err
		}
		out.Set(key, list)
		return nil
	})
	return out, err
}

// decodeStyleRule sniffs the rule shape: a string is a property name and a
// two element list is a fixed declaration.
func decodeStyleRule(n *yaml.Node, path string) (StyleRule, error) {
	n = resolve(n)
	if n != nil && n.Kind == yaml.ScalarNode && !isNull(n) {
		return StyleRule{Property: n.Value}, nil
	}
	if n != nil && n.Kind == yaml.SequenceNode {
		if len(n.Content) != 2 {
			return StyleRule{}, errorAt(n, path, "expected [property, value]")
		}
		property, err := decodeString(n.Content[0], path+"[0]")
		if err != nil {
			return StyleRule{}, err
		}
		value, err := decodeValue(n.Content[1], path+"[1]")
		if err != nil {
			return StyleRule{}, err
		}
		return StyleRule{Property: property, Value: &value}, nil
	}
	return StyleRule{}, errorAt(n, path, "expected a property name or [property, value]")
}

func decodeStyleRules(n *yaml.Node, path string) (*OrderedMap[[]StyleRule], error) {
	out := NewOrderedMap[[]StyleRule]()
	err := eachEntry(n, path, func(key string, value *yaml.Node, path string) error {
		var rules []StyleRule
		err := eachItem(value, path, func(item *yaml.Node, path string) error {
			rule, err := decodeStyleRule(item, path)
			rules = append(rules, rule)
			return err
		})
		if err != nil {
			return err
		}
		out.Set(key, rules)
		return nil
	})
	return out, err
}

func decodeNestedSelectors(n *yaml.Node, path string) (*OrderedMap[*Selectors], error) {
	n = resolve(n)
	if isNull(n) {
		return nil, nil
	}
	out := NewOrderedMap[*Selectors]()
	err := eachEntry(n, path, func(key string, value *yaml.Node, path string) error {
		selectors, err := decodeValues(value, path)
		if err != nil {
			return err
		}
		out.Set(key, selectors)
		return nil
	})
	return out, err
}

// decodeVariable sniffs a variable: a scalar is the :root value, an object
// carries selectors plus optional breakpoint and media query overrides.
func decodeVariable(n *yaml.Node, path string) (Variable, error) {
	n = resolve(n)
	if n != nil && n.Kind == yaml.ScalarNode && !isNull(n) {
		v, err := decodeValue(n, path)
		return Variable{Value: &v}, err
	}
	if n == nil || n.Kind != yaml.MappingNode {
		return Variable{}, errorAt(n, path, "expected a value or an object with selectors")
	}

	populated := &PopulatedVariable{Selectors: NewOrderedMap[CSSValue]()}
	err := eachEntry(n, path, func(key string, value *yaml.Node, path string) error {
		var err error
		switch key {
		case "selectors":
			populated.Selectors, err = decodeValues(value, path)
		case "breakpoints":
			populated.Breakpoints, err = decodeNestedSelectors(value, path)
		case "mediaQueries":
			populated.MediaQueries, err = decodeNestedSelectors(value, path)
		default:
			err = errorAt(value, path, "unknown variable field")
		}
		return err
	})
	return Variable{Object: populated}, err
}

func decodeVariables(n *yaml.Node, path string) (*OrderedMap[Variable], error) {
	out := NewOrderedMap[Variable]()
	err := eachEntry(n, path, func(key string, value *yaml.Node, path string) error {
		v, err := decodeVariable(value, path)
		if err != nil {
			return err
		}
		out.Set(key, v)
		return nil
	})
	return out, err
}

func decodeKeyframes(n *yaml.Node, path string) (*OrderedMap[Keyframes], error) {
	out := NewOrderedMap[Keyframes]()
	err := eachEntry(n, path, func(name string, value *yaml.Node, path string) error {
		frames := NewOrderedMap[*OrderedMap[string]]()
		err := eachEntry(value, path, func(key string, value *yaml.Node, path string) error {
			styles, err := decodeStringMap(value, path)
			if err != nil {
				return err
			}
			frames.Set(key, styles)
			return nil
		})
		if err != nil {
			return err
		}
		out.Set(name, Keyframes{Frames: frames})
		return nil
	})
	return out, err
}

func decodeGroups(n *yaml.Node, path string) (*OrderedMap[Group], error) {
	rules, err := decodeStyleRules(n, path)
	if err != nil {
		return nil, err
	}
	out := NewOrderedMap[Group]()
	for name, r := range rules.All() {
		out.Set(name, Group{Rules: r})
	}
	return out, nil
}

// decodeAtom distinguishes color atoms (with a colors field) from value atoms.
func decodeAtom(n *yaml.Node, path string) (Atom, error) {
	var atom Atom
	err := eachEntry(n, path, func(key string, value *yaml.Node, path string) error {
		var err error
		switch key {
		case "keyframes":
			atom.Keyframes, err = decodeStrings(value, path)
		case "groups":
			atom.Groups, err = decodeStrings(value, path)
		case "styleRules":
			atom.StyleRules, err = decodeStrings(value, path)
		case "values":
			atom.Values, err = decodeValues(value, path)
		case "colors":
			atom.Colors, err = decodeColorOptions(value, path)
		}
		return err
	})
	if err != nil {
		return Atom{}, err
	}
	if atom.Colors == nil && atom.Values == nil {
		return Atom{}, errorAt(resolve(n), path, "atom needs either values or colors")
	}
	return atom, nil
}

func decodeColorOptions(n *yaml.Node, path string) (*AtomColorOptions, error) {
	opts := &AtomColorOptions{}
	err := eachEntry(n, path, func(key string, value *yaml.Node, path string) error {
		var err error
		switch key {
		case "opacity":
			opts.Opacity, err = decodeString(value, path)
		case "palette":
			opts.Palette, err = decodeBool(value, path)
		}
		return err
	})
	if err == nil && opts.Opacity == "" {
		err = errorAt(resolve(n), path, "color atoms need an opacity variable")
	}
	return opts, err
}

func decodeOptions(n *yaml.Node, path string) (Options, error) {
	opts := Options{ColorFormat: ColorFormatHSL}
	err := eachEntry(n, path, func(key string, value *yaml.Node, path string) error {
		if key != "colorFormat" {
			return nil
		}
		s, err := decodeString(value, path)
		if err != nil {
			return err
		}
		switch ColorFormat(s) {
		case ColorFormatRGB, ColorFormatHSL:
			opts.ColorFormat = ColorFormat(s)
			return nil
		default:
			return errorAt(value, path, "unknown color format %q", s)
		}
	})
	return opts, err
}

// decodeDocument fills the authored sections of cfg from the document root.
func decodeDocument(cfg *Config, root *yaml.Node) error {
	return eachEntry(root, "", func(key string, value *yaml.Node, path string) error {
		var err error
		switch key {
		case "options":
			cfg.Options, err = decodeOptions(value, path)
		case "styleRules":
			cfg.StyleRules, err = decodeStyleRules(value, path)
		case "shorthand":
			cfg.Shorthand, err = decodeStyleRules(value, path)
		case "groups":
			cfg.Groups, err = decodeGroups(value, path)
		case "palette":
			cfg.Palette, err = decodeStringMap(value, path)
		case "keyframes":
			cfg.Keyframes, err = decodeKeyframes(value, path)
		case "breakpoints":
			cfg.Breakpoints, err = decodeValues(value, path)
		case "mediaQueries":
			cfg.MediaQueries, err = decodeStringMap(value, path)
		case "parentModifiers":
			cfg.ParentModifiers, err = decodeTemplates(value, path)
		case "modifiers":
			cfg.ModifierGroups = nil
			err = eachItem(value, path, func(item *yaml.Node, path string) error {
				group, err := decodeTemplates(item, path)
				cfg.ModifierGroups = append(cfg.ModifierGroups, group)
				return err
			})
		case "colors":
			cfg.Colors, err = decodeVariables(value, path)
		case "atoms":
			cfg.AtomDefinitions = nil
			err = eachItem(value, path, func(item *yaml.Node, path string) error {
				atom, err := decodeAtom(item, path)
				cfg.AtomDefinitions = append(cfg.AtomDefinitions, atom)
				return err
			})
		case "variables":
			cfg.Variables, err = decodeVariables(value, path)
		}
		return err
	})
}

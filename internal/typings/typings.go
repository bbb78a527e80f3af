// Package typings generates the TypeScript declarations for the class name
// client. Every breakpoint, media query, modifier, shorthand and atom of the
// style configuration becomes a member of the SkribbleCss interface, with the
// CSS it produces as the member's doc comment.
package typings

import (
	"fmt"
	"strings"

	"github.com/yacobolo/skribble/internal/classname"
	"github.com/yacobolo/skribble/internal/config"
	"github.com/yacobolo/skribble/internal/cssfmt"
)

const header = "// This file is generated by skribble. Do not edit."

const utilities = `/**
 * The default className signature.
 *
 * ` + "```" + `
 * import { c } from 'skribble-css/client';
 * const className = c.sm.$block; // => 'sm::$block'
 * ` + "```" + `
 */
export type ClassName = string;

/**
 * A callable class name whose value is given at the call site.
 *
 * ` + "```" + `
 * import { c } from 'skribble-css/client';
 * const className = c.sm.focus.p('10px'); // => 'sm:focus:p::[10px]'
 * ` + "```" + `
 */
export type DynamicClassName = (value: string | number) => ClassName;

/**
 * Atoms expose their named values and are also callable.
 */
export type WithDynamicClassName<Atom> = Atom & DynamicClassName;

/**
 * Breakpoints, media queries and modifiers accept a completely custom
 * property and value.
 *
 * ` + "```ts" + `
 * import { c } from 'skribble-css/client';
 * const className = c.sm.focus('padding', '10px'); // => 'sm:focus::[padding:10px]'
 * ` + "```" + `
 */
export type CustomClassName = (property: string, value: string | number) => ClassName;

/**
 * Adds the custom class name signature to a layer.
 */
export type WithCustomClassName<Style> = Style & CustomClassName;`

// Generate returns the declaration file for cfg. The output ends with a
// newline.
func Generate(cfg *config.Config) string {
	var members []string
	var types []string
	var omitted []string

	// layer adds the keys of one layer and the Omit type its members resolve to.
	layer := func(keysName, typeName string, keys []string) {
		quoted := make([]string, 0, len(keys))
		for _, k := range keys {
			quoted = append(quoted, quote(k))
		}
		if len(quoted) == 0 {
			quoted = append(quoted, "never")
		}
		types = append(types, fmt.Sprintf("type %s = %s;", keysName, strings.Join(quoted, " | ")))
		omitted = append(omitted, keysName)
		types = append(types, fmt.Sprintf("type %s = Omit<SkribbleCss, %s>;", typeName, strings.Join(omitted, " | ")))
	}

	for name := range cfg.Breakpoints.All() {
		width, _ := cfg.BreakpointWidth(name)
		members = append(members, docComment(fmt.Sprintf("@media (min-width: %s) {\n  &\n}", width))+
			fmt.Sprintf("%s: WithCustomClassName<SkribbleBreakpointCss>;", quote(name)))
	}
	layer("BreakpointKeys", "SkribbleBreakpointCss", cfg.Breakpoints.Keys())

	for name, query := range cfg.MediaQueries.All() {
		members = append(members, docComment(fmt.Sprintf("@media %s {\n  &\n}", query))+
			fmt.Sprintf("%s: WithCustomClassName<SkribbleMediaQueryCss>;", quote(name)))
	}
	layer("MediaQueryKeys", "SkribbleMediaQueryCss", cfg.MediaQueries.Keys())

	for name, templates := range cfg.ParentModifiers.All() {
		members = append(members, docComment(strings.Join(templates, ", ")+" {}")+
			fmt.Sprintf("%s: WithCustomClassName<SkribbleParentModifierCss>;", quote(name)))
	}
	layer("ParentModifierKeys", "SkribbleParentModifierCss", cfg.ParentModifiers.Keys())

	for i, group := range cfg.ModifierGroups {
		for name, templates := range group.All() {
			members = append(members, docComment(strings.Join(templates, ", ")+" {}")+
				fmt.Sprintf("%s: WithCustomClassName<SkribbleModifierCssGroup%d>;", quote(name), i))
		}
		layer(fmt.Sprintf("ModifierKeys%d", i), fmt.Sprintf("SkribbleModifierCssGroup%d", i), group.Keys())
	}

	for name := range cfg.Shorthand.All() {
		c := classname.FromTokens(cfg, "$"+name)
		members = append(members, docComment(c.CSS())+fmt.Sprintf("%s: ClassName;", quote("$"+name)))
	}

	var interfaces []string
	for atom, meta := range cfg.Atoms.All() {
		base := classname.FromTokens(cfg, atom)
		interfaceName := Pascal(atom) + "AtomStyle"

		var values []string
		for name := range meta.Values.All() {
			c := base.AddToken("$" + name)
			values = append(values, docComment(c.CSS())+fmt.Sprintf("%s: ClassName;", quote("$"+name)))
		}
		interfaces = append(interfaces, fmt.Sprintf("interface %s {\n%s\n}", interfaceName, cssfmt.Indent(strings.Join(values, "\n"))))

		dynamic := base.AddArguments(classname.Value("<value>"))
		members = append(members, docComment(dynamic.CSS())+
			fmt.Sprintf("%s: WithDynamicClassName<%s>;", quote(atom), interfaceName))
	}

	sections := []string{
		header,
		utilities,
		fmt.Sprintf("export interface SkribbleCss {\n%s\n}", cssfmt.Indent(strings.Join(members, "\n"))),
		strings.Join(types, "\n"),
	}
	if len(interfaces) > 0 {
		sections = append(sections, strings.Join(interfaces, "\n\n"))
	}
	return strings.Join(sections, "\n\n") + "\n"
}

// docComment wraps css in a TSDoc comment with a css code block. Blank lines
// are dropped and the comment can never be closed early.
func docComment(css string) string {
	var lines []string
	for _, line := range strings.Split(css, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.ReplaceAll(line, "*/", `*\/`))
		}
	}
	return "/**\n * ```css\n * " + strings.Join(lines, "\n * ") + "\n * ```\n */\n"
}

// quote returns name as a single quoted property key.
func quote(name string) string {
	return "'" + strings.ReplaceAll(name, "'", `\'`) + "'"
}

// Pascal converts an atom name such as maxW or translate-x to PascalCase.
func Pascal(name string) string {
	var b strings.Builder
	for _, word := range strings.Split(cssfmt.Kebab(name), "-") {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]) + word[1:])
	}
	return b.String()
}

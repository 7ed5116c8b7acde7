package prompt

import (
	"regexp"
	"strings"
)

var (
	ifOpen      = regexp.MustCompile(`\{\{#if\s+(\w+)\}\}`)
	eachOpen    = regexp.MustCompile(`\{\{#each\s+(\w+)\}\}`)
	bareVar     = regexp.MustCompile(`\{\{([a-zA-Z_]\w*)\}\}`)
	helperCall  = regexp.MustCompile(`\{\{([a-zA-Z_]\w*)\s+([^{}]+)\}\}`)
	controlVar  = regexp.MustCompile(`\{\{#(?:if|each)\s+([a-zA-Z_]\w*)\}\}`)
	numberToken = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	identToken  = regexp.MustCompile(`^[a-zA-Z_]\w*$`)
)

// keywords are text/template words that must not become field lookups.
var keywords = map[string]bool{
	"else": true, "end": true, "if": true, "range": true, "with": true,
	"define": true, "template": true, "block": true,
}

// convertSyntax rewrites Handlebars-like markup to text/template:
//
//	{{name}}                 -> {{.name}}
//	{{#if x}}..{{/if}}       -> {{if .x}}..{{end}}
//	{{#each xs}}..{{/each}}  -> {{range .xs}}..{{end}}
//	{{helper a 10 "s"}}      -> {{helper .a 10 "s"}}
func convertSyntax(input string) string {
	out := ifOpen.ReplaceAllString(input, "{{if .$1}}")
	out = eachOpen.ReplaceAllString(out, "{{range .$1}}")
	out = strings.ReplaceAll(out, "{{/if}}", "{{end}}")
	out = strings.ReplaceAll(out, "{{/each}}", "{{end}}")

	out = bareVar.ReplaceAllStringFunc(out, func(m string) string {
		name := m[2 : len(m)-2]
		if keywords[name] {
			return m
		}
		return "{{." + name + "}}"
	})

	return helperCall.ReplaceAllStringFunc(out, func(m string) string {
		parts := helperCall.FindStringSubmatch(m)
		name := parts[1]
		if _, ok := helperNames[name]; !ok {
			return m
		}
		args := splitArguments(parts[2])
		for i, arg := range args {
			if identToken.MatchString(arg) && arg != "true" && arg != "false" && !keywords[arg] {
				args[i] = "." + arg
			}
		}
		return "{{" + name + " " + strings.Join(args, " ") + "}}"
	})
}

// splitArguments splits on spaces outside quotes.
func splitArguments(args string) []string {
	var parts []string
	var cur strings.Builder
	var quote rune

	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}

	for _, ch := range args {
		switch {
		case quote == 0 && (ch == '"' || ch == '\''):
			quote = ch
			cur.WriteRune(ch)
		case quote != 0 && ch == quote:
			quote = 0
			cur.WriteRune(ch)
		case quote == 0 && ch == ' ':
			flush()
		default:
			cur.WriteRune(ch)
		}
	}
	flush()
	return parts
}

// extractVariables lists variable names referenced by a template, in
// order of first appearance.
func extractVariables(templateStr string) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if keywords[name] || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	for _, m := range bareVar.FindAllStringSubmatch(templateStr, -1) {
		add(m[1])
	}
	for _, m := range controlVar.FindAllStringSubmatch(templateStr, -1) {
		add(m[1])
	}
	for _, m := range helperCall.FindAllStringSubmatch(templateStr, -1) {
		if _, ok := helperNames[m[1]]; !ok {
			continue
		}
		for _, arg := range splitArguments(m[2]) {
			if identToken.MatchString(arg) && !numberToken.MatchString(arg) && arg != "true" && arg != "false" {
				add(arg)
			}
		}
	}
	return names
}

package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/randalmurphal/ctxkit/truncate"
)

// helperNames lists helpers whose bare-word arguments are variables.
var helperNames = map[string]struct{}{
	"truncate": {}, "lines": {}, "json": {}, "upper": {}, "lower": {},
	"trim": {}, "default": {}, "indent": {}, "fence": {},
}

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": truncate.ToLength,
		"lines":    truncate.ToLines,
		"json":     toJSON,
		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
		"trim":     strings.TrimSpace,
		"default":  defaultValue,
		"indent":   indent,
		"fence":    fence,
	}
}

func toJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// defaultValue returns def when val is nil or an empty string.
func defaultValue(val, def any) any {
	if val == nil {
		return def
	}
	if s, ok := val.(string); ok && s == "" {
		return def
	}
	return val
}

func indent(s string, spaces int) string {
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

// fence wraps code in a Markdown code fence tagged with lang.
func fence(lang, code string) string {
	return "```" + lang + "\n" + code + "\n```"
}

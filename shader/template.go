package shader

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// A token is @name not glued to a preceding word, so text such as an e-mail
// address in a comment is never treated as a placeholder.
var tokenPattern = regexp.MustCompile(`(^|[^A-Za-z0-9_.@])@([A-Za-z_][A-Za-z0-9_]*)`)

// MissingVarError is returned when a template token has no value.
type MissingVarError struct {
	Template string
	Token    string
}

func (e *MissingVarError) Error() string {
	return fmt.Sprintf("shader template %s: no value for @%s", e.Template, e.Token)
}

// Template is shader source text with @name placeholders. Rendering never
// mutates the template, so the same text can be re-rendered with new values.
type Template struct {
	Name string
	Text string
}

func NewTemplate(name, text string) *Template {
	return &Template{Name: name, Text: text}
}

// Tokens returns the distinct placeholder names in the template, sorted.
func (t *Template) Tokens() []string {
	seen := make(map[string]struct{})
	for _, m := range tokenPattern.FindAllStringSubmatch(t.Text, -1) {
		seen[m[2]] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Render substitutes every @name token with vars[name].
func (t *Template) Render(vars map[string]string) (string, error) {
	var missing string
	out := replaceTokens(t.Text, func(name string) (string, bool) {
		v, ok := vars[name]
		if !ok && missing == "" {
			missing = name
		}
		return v, ok
	})
	if missing != "" {
		return "", &MissingVarError{Template: t.Name, Token: missing}
	}
	return out, nil
}

// Substitute replaces only the named token and leaves all other text,
// including other tokens, untouched.
func Substitute(text, token, value string) string {
	return replaceTokens(text, func(name string) (string, bool) {
		if name == token {
			return value, true
		}
		return "", false
	})
}

// replaceTokens rewrites each token for which lookup reports a value.
func replaceTokens(text string, lookup func(name string) (string, bool)) string {
	var b strings.Builder
	last := 0
	for _, m := range tokenPattern.FindAllStringSubmatchIndex(text, -1) {
		// m[4]:m[5] is the name; the token starts one byte before it.
		at := m[4] - 1
		v, ok := lookup(text[m[4]:m[5]])
		if !ok {
			continue
		}
		b.WriteString(text[last:at])
		b.WriteString(v)
		last = m[5]
	}
	b.WriteString(text[last:])
	return b.String()
}

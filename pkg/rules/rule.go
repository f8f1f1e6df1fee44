package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// delimClass matches a single namespace delimiter, dot or slash.
const delimClass = `[./]`

// rule is one ordered match/replace step. Every implementation is pure:
// apply never mutates shared state and always returns a new string, so a
// compiled rule is safe for concurrent use by any number of workers.
type rule interface {
	apply(s string) string
	describe() string
}

// escapeTemplate escapes '$' so a literal segment is safe inside a regexp
// expansion template.
func escapeTemplate(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

// flexPattern builds a regexp source matching a dotted token with each
// separator interchangeable between '.' and '/', one capture group per
// separator. Returns the pattern and the number of separator groups.
func flexPattern(token string) (string, int) {
	segs := strings.Split(token, ".")
	var b strings.Builder
	b.WriteString(regexp.QuoteMeta(segs[0]))
	for _, seg := range segs[1:] {
		b.WriteString("(" + delimClass + ")")
		b.WriteString(regexp.QuoteMeta(seg))
	}
	return b.String(), len(segs) - 1
}

// flexTemplate builds the expansion rewriting everything after the token's
// first segment to the target segments. Every join reuses the first
// captured delimiter, so dotted occurrences stay dotted and slashed
// occurrences stay slashed.
func flexTemplate(first, target string) string {
	var b strings.Builder
	b.WriteString(escapeTemplate(first))
	for _, seg := range strings.Split(target, ".") {
		b.WriteString("${1}")
		b.WriteString(escapeTemplate(seg))
	}
	return b.String()
}

// literalRule replaces every occurrence of an exact token with an exact
// replacement.
type literalRule struct {
	from string
	to   string
}

func newLiteralToken(from, to string) literalRule {
	return literalRule{from: from, to: to}
}

func (r literalRule) apply(s string) string {
	if r.from == "" {
		return s
	}
	return strings.ReplaceAll(s, r.from, r.to)
}

func (r literalRule) describe() string {
	return fmt.Sprintf("literal %q -> %q", r.from, r.to)
}

// flexRule rewrites a dotted token whose separators are interchangeable
// between '.' and '/'. The token's first segment is preserved verbatim; the
// remaining segments are replaced by the target's.
type flexRule struct {
	re       *regexp.Regexp
	template string
}

func newDelimiterFlexibleToken(token, target string) rule {
	segs := strings.Split(token, ".")
	if len(segs) == 1 {
		// No separators to flex on; degenerate to an exact replacement.
		return newLiteralToken(token, target)
	}
	pattern, _ := flexPattern(token)
	return flexRule{
		re:       regexp.MustCompile(pattern),
		template: flexTemplate(segs[0], target),
	}
}

func (r flexRule) apply(s string) string {
	return r.re.ReplaceAllString(s, r.template)
}

func (r flexRule) describe() string {
	return fmt.Sprintf("flex %s -> %s", r.re.String(), r.template)
}

// guardedRule matches a base token together with an optional trailing
// suffix segment, in a single pass. In guard mode occurrences that carry
// the suffix are left untouched, which stands in for a negative lookahead:
// Go's RE2 engine has none, so the rule matches the suffixed form too and
// simply skips it. In collapse mode both forms rewrite to the bare target.
type guardedRule struct {
	re        *regexp.Regexp
	template  string
	suffixIdx int // submatch index of the optional suffix group
	collapse  bool
}

func newSuffixRule(token, suffix, target string, collapse bool) guardedRule {
	pattern, seps := flexPattern(token)
	pattern += "((" + delimClass + ")" + regexp.QuoteMeta(suffix) + ")?"
	segs := strings.Split(token, ".")
	return guardedRule{
		re:        regexp.MustCompile(pattern),
		template:  flexTemplate(segs[0], target),
		suffixIdx: seps + 1,
		collapse:  collapse,
	}
}

// newGuardedToken rewrites base-token occurrences not followed by the
// suffix segment; suffixed occurrences are assumed already handled by an
// earlier rule and pass through untouched.
func newGuardedToken(token, suffix, target string) guardedRule {
	return newSuffixRule(token, suffix, target, false)
}

// newOptionalSuffixToken rewrites both bare and suffixed occurrences of the
// token to the bare target form in one pass.
func newOptionalSuffixToken(token, suffix, target string) guardedRule {
	return newSuffixRule(token, suffix, target, true)
}

func (r guardedRule) apply(s string) string {
	matches := r.re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		if m[2*r.suffixIdx] >= 0 && !r.collapse {
			// Suffixed occurrence: already in its final form.
			continue
		}
		b.WriteString(s[last:m[0]])
		b.Write(r.re.ExpandString(nil, r.template, s, m))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func (r guardedRule) describe() string {
	mode := "guard"
	if r.collapse {
		mode = "collapse"
	}
	return fmt.Sprintf("%s %s -> %s", mode, r.re.String(), r.template)
}

// restoreRule re-anchors protected vendor modules to the original
// namespace. It runs strictly after the main substitution, which has
// already absorbed these modules into the new namespace, so it matches
// <delim><target><delim>[<suffix><delim>]<module> and rewrites the target
// segments back to the original namespace, preserving the captured
// delimiters. The variant suffix, when one applies, is captured verbatim
// and re-emitted, so suffixed occurrences keep it and bare occurrences
// never gain it; that also keeps the rule a fixed point on
// already-restored buffers.
type restoreRule struct {
	re       *regexp.Regexp
	template string
}

func newProtectedModuleRestore(target, origin, suffix string, modules []string) restoreRule {
	segs := strings.Split(target, ".")
	join := len(segs) + 1 // group index of the delimiter after the target

	var pat strings.Builder
	pat.WriteString("(" + delimClass + ")")
	for i, seg := range segs {
		if i > 0 {
			pat.WriteString("(" + delimClass + ")")
		}
		pat.WriteString(regexp.QuoteMeta(seg))
	}
	pat.WriteString("(" + delimClass + ")")
	modIdx := join + 1
	suffixIdx := 0
	if suffix != "" {
		pat.WriteString("((?:" + regexp.QuoteMeta(suffix) + delimClass + ")?)")
		suffixIdx = join + 1
		modIdx = join + 2
	}
	quoted := make([]string, len(modules))
	for i, mod := range modules {
		quoted[i] = regexp.QuoteMeta(mod)
	}
	pat.WriteString("(" + strings.Join(quoted, "|") + ")")

	joinRef := fmt.Sprintf("${%d}", join)
	var tmpl strings.Builder
	tmpl.WriteString("${1}")
	for i, seg := range strings.Split(origin, ".") {
		if i > 0 {
			tmpl.WriteString(joinRef)
		}
		tmpl.WriteString(escapeTemplate(seg))
	}
	tmpl.WriteString(joinRef)
	if suffixIdx > 0 {
		tmpl.WriteString(fmt.Sprintf("${%d}", suffixIdx))
	}
	tmpl.WriteString(fmt.Sprintf("${%d}", modIdx))

	return restoreRule{
		re:       regexp.MustCompile(pat.String()),
		template: tmpl.String(),
	}
}

func (r restoreRule) apply(s string) string {
	return r.re.ReplaceAllString(s, r.template)
}

func (r restoreRule) describe() string {
	return fmt.Sprintf("restore %s -> %s", r.re.String(), r.template)
}

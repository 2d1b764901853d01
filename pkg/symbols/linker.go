package symbols

import (
	"regexp"
	"strings"

	"github.com/matzehuels/refdoc/pkg/errors"
)

// ExternalRule rewrites mentions of a symbol namespace that lives outside
// the index, such as a host API, into links to its documentation.
type ExternalRule struct {
	Pattern     *regexp.Regexp
	Replacement string // regexp.Expand template, e.g. "[${1}](https://example.org/#${1})"
}

// Neovim API references: "vim.api.nvim_buf_get_lines" links to the
// matching entry of the upstream API reference.
const (
	NeovimAPIPattern     = `vim\.api\.([\w|_]*)`
	NeovimAPIReplacement = "[${1}](https://neovim.io/doc/user/api.html#${1}())"
)

// DefaultExternalRules returns the rules applied when none are configured.
func DefaultExternalRules() []ExternalRule {
	return []ExternalRule{{
		Pattern:     regexp.MustCompile(NeovimAPIPattern),
		Replacement: NeovimAPIReplacement,
	}}
}

// CompileExternalRule compiles a configured pattern.
func CompileExternalRule(pattern, replacement string) (ExternalRule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return ExternalRule{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "external link pattern %q", pattern)
	}
	return ExternalRule{Pattern: re, Replacement: replacement}, nil
}

// Linker resolves symbol mentions in free text. It is immutable and safe
// to share between renders.
type Linker struct {
	entries  []Entry
	external []ExternalRule
}

// NewLinker compiles idx into a linker. A nil rules slice means no
// external rules; pass [DefaultExternalRules] for the standard set.
func NewLinker(idx *Index, rules []ExternalRule) *Linker {
	var entries []Entry
	for _, e := range idx.Entries() {
		if e.ID == "" {
			continue
		}
		entries = append(entries, e)
	}
	return &Linker{entries: entries, external: rules}
}

// Link replaces every indexed identifier with an anchor tag wrapping its
// display name, then applies the external rules to the remaining text.
func (l *Linker) Link(text string) string {
	if text == "" {
		return text
	}
	segs := l.substitute(text, func(e Entry) string {
		return "<a href='" + e.URL + "'>" + e.Name + "</a>"
	})
	for i := range segs {
		if segs[i].done {
			continue
		}
		for _, r := range l.external {
			segs[i].text = r.Pattern.ReplaceAllString(segs[i].text, r.Replacement)
		}
	}
	return join(segs)
}

// Label replaces every indexed identifier with its bare display name.
func (l *Linker) Label(text string) string {
	if text == "" {
		return text
	}
	return join(l.substitute(text, func(e Entry) string { return e.Name }))
}

// segment is a run of text; done marks replacement output, which later
// identifiers and external rules must not touch.
type segment struct {
	text string
	done bool
}

// substitute applies the entries in index order, so a longer identifier
// claims its span before any shorter identifier it contains is tried.
// Within one entry, occurrences are replaced left to right without overlap.
func (l *Linker) substitute(text string, replace func(Entry) string) []segment {
	segs := []segment{{text: text}}
	for _, e := range l.entries {
		if !anyContains(segs, e.ID) {
			continue
		}
		next := make([]segment, 0, len(segs)+2)
		for _, s := range segs {
			if s.done || !strings.Contains(s.text, e.ID) {
				next = append(next, s)
				continue
			}
			rest := s.text
			for {
				i := strings.Index(rest, e.ID)
				if i < 0 {
					break
				}
				if i > 0 {
					next = append(next, segment{text: rest[:i]})
				}
				next = append(next, segment{text: replace(e), done: true})
				rest = rest[i+len(e.ID):]
			}
			if rest != "" {
				next = append(next, segment{text: rest})
			}
		}
		segs = next
	}
	return segs
}

func anyContains(segs []segment, id string) bool {
	for _, s := range segs {
		if !s.done && strings.Contains(s.text, id) {
			return true
		}
	}
	return false
}

func join(segs []segment) string {
	if len(segs) == 1 {
		return segs[0].text
	}
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.text)
	}
	return b.String()
}

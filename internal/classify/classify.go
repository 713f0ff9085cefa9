// Package classify decides whether an announcement describes a
// multi-family-house project using a configurable keyword vocabulary.
package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher tests free text against the MFH vocabulary. It is deterministic
// and pure; false positives and negatives are accepted as a known
// limitation of the heuristic.
type Matcher struct {
	patterns []pattern
}

type pattern struct {
	term string
	re   *regexp.Regexp
}

// NewMatcher compiles one case-insensitive expression per keyword. Keywords
// are trimmed and deduplicated; an empty vocabulary is a configuration
// error.
func NewMatcher(keywords []string) (*Matcher, error) {
	seen := make(map[string]struct{})
	patterns := make([]pattern, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if _, dup := seen[strings.ToLower(kw)]; dup {
			continue
		}
		seen[strings.ToLower(kw)] = struct{}{}
		re, err := regexp.Compile(keywordPattern(kw))
		if err != nil {
			return nil, fmt.Errorf("compile keyword %q: %w", kw, err)
		}
		patterns = append(patterns, pattern{term: kw, re: re})
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("classifier keyword list is empty")
	}
	return &Matcher{patterns: patterns}, nil
}

// Match returns the first vocabulary term found in text. Short tokens like
// "MFH" only match on word boundaries so they do not fire inside unrelated
// words.
func (m *Matcher) Match(text string) (string, bool) {
	for _, p := range m.patterns {
		if p.re.MatchString(text) {
			return p.term, true
		}
	}
	return "", false
}

// keywordPattern wraps the keyword in \b anchors where the adjacent rune is
// an ASCII word character. RE2 word boundaries are ASCII-only, so
// umlaut-initial keywords such as "Überbauung" get no leading anchor.
func keywordPattern(kw string) string {
	var b strings.Builder
	b.WriteString(`(?i)`)
	runes := []rune(kw)
	if isASCIIWord(runes[0]) {
		b.WriteString(`\b`)
	}
	b.WriteString(regexp.QuoteMeta(kw))
	if isASCIIWord(runes[len(runes)-1]) {
		b.WriteString(`\b`)
	}
	return b.String()
}

func isASCIIWord(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

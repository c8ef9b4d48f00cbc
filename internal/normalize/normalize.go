package normalize

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer canonicalizes author fields for comparison. It carries the
// affiliation alias table; all other behavior is stateless.
type Normalizer struct {
	// aliases maps a lowercased affiliation spelling to its expanded
	// canonical form, e.g. "nus" -> "national university of singapore".
	aliases map[string]string
}

// honorifics are leading titles that carry no identity information.
var honorifics = map[string]bool{
	"dr":        true,
	"prof":      true,
	"professor": true,
	"mr":        true,
	"mrs":       true,
	"ms":        true,
	"mx":        true,
	"sir":       true,
	"dame":      true,
	"rev":       true,
}

// suffixes are trailing qualifiers that carry no identity information.
// Single letters like the "V" in generational suffixes are already
// dropped by the initials rule.
var suffixes = map[string]bool{
	"jr":  true,
	"sr":  true,
	"ii":  true,
	"iii": true,
	"iv":  true,
	"phd": true,
	"md":  true,
	"esq": true,
}

// New creates a Normalizer with the built-in alias table extended by
// the given overrides. Override keys are matched case-insensitively and
// replace built-in entries on collision. Every expansion is resolved
// through the table to its final form, so an expansion which is itself
// an alias key still canonicalizes in one Affiliation lookup and the
// result never depends on chain length.
func New(overrides map[string]string) *Normalizer {
	aliases := make(map[string]string, len(defaultAliases)+len(overrides))
	for k, v := range defaultAliases {
		aliases[cleanAffiliation(k)] = cleanAffiliation(v)
	}
	for k, v := range overrides {
		aliases[cleanAffiliation(k)] = cleanAffiliation(v)
	}

	resolved := make(map[string]string, len(aliases))
	for k, v := range aliases {
		resolved[k] = resolveChain(aliases, v)
	}
	return &Normalizer{aliases: resolved}
}

// resolveChain follows an expansion through the alias table until it is
// no longer an alias key. A misconfigured cycle canonicalizes every one
// of its members to the lexicographically smallest, so lookups agree no
// matter where they enter the cycle and Affiliation stays idempotent.
func resolveChain(aliases map[string]string, v string) string {
	index := make(map[string]int)
	var path []string
	for {
		if at, ok := index[v]; ok {
			rep := path[at]
			for _, member := range path[at:] {
				if member < rep {
					rep = member
				}
			}
			return rep
		}
		next, ok := aliases[v]
		if !ok || next == v {
			return v
		}
		index[v] = len(path)
		path = append(path, v)
		v = next
	}
}

// Email returns the canonical form of an email address: lowercased and
// trimmed. Empty input stays empty.
func (n *Normalizer) Email(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Name returns the canonical form of a display name: diacritics folded,
// punctuation removed, honorifics, suffixes, and single-letter initials
// stripped, remaining tokens lowercased and sorted. Sorting makes
// "Alice Zhang" and "Zhang, Alice" identical, which is the property the
// scorer relies on. Returns the empty string when nothing identifying
// remains.
func (n *Normalizer) Name(name string) string {
	folded := foldDiacritics(name)
	lower := strings.ToLower(folded)
	lower = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}
		if r == '-' || r == '\'' {
			// Hyphenated and apostrophe names keep their joiner so
			// "O'Brien" and "Al-Sayed" stay single tokens.
			return r
		}
		return ' '
	}, lower)

	tokens := strings.Fields(lower)
	kept := tokens[:0]
	for _, tok := range tokens {
		tok = strings.Trim(tok, "-'")
		if tok == "" || honorifics[tok] || suffixes[tok] {
			continue
		}
		if len([]rune(tok)) == 1 {
			// Middle initials vary too much between variants of the
			// same person to be comparison signal.
			continue
		}
		kept = append(kept, tok)
	}
	sort.Strings(kept)
	return strings.Join(kept, " ")
}

// Affiliation returns the canonical form of an affiliation: diacritics
// folded, lowercased, whitespace collapsed, then expanded through the
// alias table when the whole string matches an alias.
func (n *Normalizer) Affiliation(affiliation string) string {
	cleaned := cleanAffiliation(foldDiacritics(affiliation))
	if cleaned == "" {
		return ""
	}
	if expanded, ok := n.aliases[cleaned]; ok {
		return expanded
	}
	return cleaned
}

// cleanAffiliation lowercases, collapses internal whitespace, and trims
// surrounding space plus a trailing period.
func cleanAffiliation(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSuffix(s, ".")
}

// foldDiacritics removes combining marks after NFD decomposition, so
// "Müller" and "Mueller"-style ASCII spellings at least agree on the
// base letters ("muller"). Exact transliteration is out of scope; the
// fuzzy ratio absorbs the remaining distance.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

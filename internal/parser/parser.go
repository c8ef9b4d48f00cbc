package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// Outcome classifies how well one author entry parsed.
//
// Design decision: We tag every entry instead of silently defaulting
// malformed ones, so downstream reporting can distinguish clean parses
// from salvaged ones and surface the rest for review.
type Outcome int

const (
	// OutcomeParsed means the entry yielded a usable name.
	OutcomeParsed Outcome = iota

	// OutcomeSalvaged means the entry had no usable name but carried an
	// email address, which is enough to identify the author. Salvaged
	// entries are kept with a warning.
	OutcomeSalvaged

	// OutcomeUnusable means the entry yielded neither a name nor an
	// email. Unusable entries are dropped with a warning.
	OutcomeUnusable
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeParsed:
		return "parsed"
	case OutcomeSalvaged:
		return "salvaged"
	case OutcomeUnusable:
		return "unusable"
	default:
		return "unknown"
	}
}

// Entry is one parsed author entry from a raw author field.
type Entry struct {
	// Name is the display name with email and affiliation markers
	// removed. May be empty for salvaged entries.
	Name string

	// Email is the address from the first angle-bracket group that
	// looks like an email. Original case is preserved.
	Email string

	// Affiliation is the text of the last parenthesized group.
	Affiliation string

	// Raw is the entry text exactly as it appeared in the field.
	Raw string

	// Outcome classifies the parse result.
	Outcome Outcome

	// Warning holds the reason for a non-Parsed outcome.
	Warning string
}

var (
	// emailRegex matches an angle-bracket group, e.g. "<a@b.org>".
	// Validation that the content is an email happens separately so a
	// stray "<TBD>" does not get mistaken for an address.
	emailRegex = regexp.MustCompile(`<([^<>]*)>`)

	// affiliationRegex matches a parenthesized group.
	affiliationRegex = regexp.MustCompile(`\(([^()]*)\)`)

	// emailShape is a loose sanity check for email addresses. The
	// parser is not an RFC 5322 validator; it only needs to tell
	// addresses apart from other bracketed text.
	emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	// spaceRegex collapses runs of whitespace, including newlines that
	// sneak in from spreadsheet cells.
	spaceRegex = regexp.MustCompile(`\s+`)
)

// ParseAuthorField splits one raw author field into entries, preserving
// entry order. The first entry is the lead author and stays first.
// Blank segments between delimiters are skipped silently; segments with
// content that fails to parse come back tagged OutcomeSalvaged or
// OutcomeUnusable so the caller can report them.
func ParseAuthorField(raw string) []Entry {
	segments := strings.Split(raw, ";")
	entries := make([]Entry, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		entries = append(entries, parseEntry(segment))
	}
	return entries
}

// parseEntry parses a single author entry.
func parseEntry(raw string) Entry {
	entry := Entry{Raw: raw}
	rest := raw

	// Extract the first bracket group that looks like an email.
	// Additional bracket groups are ignored; the first address is
	// treated as the author's primary contact.
	for _, match := range emailRegex.FindAllStringSubmatch(rest, -1) {
		candidate := strings.TrimSpace(match[1])
		if emailShape.MatchString(candidate) {
			entry.Email = candidate
			break
		}
	}
	rest = emailRegex.ReplaceAllString(rest, " ")

	// The last parenthesized group wins: names like "Robert (Bob) Li"
	// put nicknames early, while affiliations conventionally trail.
	if matches := affiliationRegex.FindAllStringSubmatch(rest, -1); len(matches) > 0 {
		entry.Affiliation = strings.TrimSpace(matches[len(matches)-1][1])
		rest = strings.Replace(rest, matches[len(matches)-1][0], " ", 1)
	}

	entry.Name = cleanName(rest)

	switch {
	case usableName(entry.Name):
		entry.Outcome = OutcomeParsed
	case entry.Email != "":
		entry.Name = ""
		entry.Outcome = OutcomeSalvaged
		entry.Warning = "no usable name, kept via email"
	default:
		entry.Name = ""
		entry.Outcome = OutcomeUnusable
		entry.Warning = "no usable name or email"
	}
	return entry
}

// cleanName normalizes whitespace and strips the punctuation debris
// left behind after removing email and affiliation markers.
func cleanName(s string) string {
	s = spaceRegex.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, ",")
	return strings.TrimSpace(s)
}

// usableName reports whether a candidate name contains at least one
// letter. Pure punctuation or digits ("???", "N/A" stripped to "/")
// does not identify anyone.
func usableName(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

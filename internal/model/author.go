package model

// CanonicalNone marks an author variant that has not been merged into
// another identity. Such a variant represents itself.
const CanonicalNone = -1

// Author is one parsed author variant. Multiple Author records may
// denote the same real person; resolving that ambiguity is the job of
// the cluster builder and merge engine. An Author is never mutated
// after parsing except for MergedInto, which records the outcome of a
// merge decision.
type Author struct {
	// ID is the stable index of this variant in AnalysisReport.Authors.
	// IDs are assigned in order of first appearance, so a smaller ID
	// means an earlier-appearing variant.
	ID int `json:"id"`

	// Name is the display name exactly as it appeared in the raw author
	// field, with email and affiliation markers removed. Never used for
	// comparison; that is what the canonical fields are for.
	Name string `json:"name"`

	// Email is the email address from the angle-bracket portion of the
	// entry, original case preserved. Empty when the entry had none.
	Email string `json:"email,omitempty"`

	// Affiliation is the free-text affiliation from the parenthesized
	// portion of the entry. Empty when the entry had none.
	Affiliation string `json:"affiliation,omitempty"`

	// CanonicalName is the comparable form of Name: diacritics folded,
	// honorifics and initials stripped, tokens lowercased and sorted.
	CanonicalName string `json:"canonical_name,omitempty"`

	// CanonicalEmail is the comparable form of Email: lowercased and
	// trimmed. Equal canonical emails are treated as proof of identity.
	CanonicalEmail string `json:"canonical_email,omitempty"`

	// CanonicalAffiliation is the comparable form of Affiliation:
	// lowercased with institutional aliases expanded.
	CanonicalAffiliation string `json:"canonical_affiliation,omitempty"`

	// Salvaged is true when the entry yielded no usable name and the
	// variant survived parsing through its email alone. Salvaged
	// variants compare solely on email.
	Salvaged bool `json:"salvaged,omitempty"`

	// PaperIDs lists every submission on which this exact raw variant
	// appeared, in load order. A paper appears at most once even when
	// the variant repeats within one author field.
	PaperIDs []string `json:"paper_ids"`

	// MergedInto is the ID of the canonical author this variant was
	// merged into, or CanonicalNone when the variant still represents
	// itself. Set only by the merge engine.
	MergedInto int `json:"merged_into"`
}

// DisplayName returns the name to show for this variant, falling back
// to the email address for salvaged variants with no name.
func (a *Author) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	if a.Email != "" {
		return a.Email
	}
	return "(unknown)"
}

// IsCanonical reports whether this variant currently represents itself
// rather than having been merged into another identity.
func (a *Author) IsCanonical() bool {
	return a.MergedInto == CanonicalNone
}

// HasPaper reports whether the variant already references the paper.
func (a *Author) HasPaper(paperID string) bool {
	for _, id := range a.PaperIDs {
		if id == paperID {
			return true
		}
	}
	return false
}

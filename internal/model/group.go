package model

// GroupMember pairs an author variant with its confidence score against
// the group seed, plus the dominant signal that drove the score. The
// signal makes clustering decisions explainable during human review.
type GroupMember struct {
	// AuthorID references the variant in AnalysisReport.Authors.
	AuthorID int `json:"author_id"`

	// Score is the pairwise confidence in [0,100] between this member
	// and the group seed. The seed itself carries 100.
	Score int `json:"score"`

	// Signal names the dominant evidence behind the score, e.g.
	// "email match" or "name similarity".
	Signal string `json:"signal"`
}

// DuplicateGroup is a set of author variants (size >= 2) judged to
// plausibly denote one person. Groups are ephemeral: they are
// recomputed from scratch on every clustering run and are never the
// source of truth for identity. The first member is the seed, the
// earliest-appearing variant in the group.
type DuplicateGroup struct {
	// ID numbers the group within one clustering run, starting at 1.
	ID int `json:"id"`

	// Members lists the group members ordered by first appearance.
	// Members[0] is the seed.
	Members []GroupMember `json:"members"`

	// SharedEmail is the single canonical email shared by every member,
	// or empty when members carry differing or missing emails. A group
	// with a shared email qualifies for automatic merging.
	SharedEmail string `json:"shared_email,omitempty"`
}

// Seed returns the ID of the group's seed variant.
func (g *DuplicateGroup) Seed() int {
	return g.Members[0].AuthorID
}

// AuthorIDs returns the member variant IDs in group order.
func (g *DuplicateGroup) AuthorIDs() []int {
	ids := make([]int, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.AuthorID
	}
	return ids
}

// AutoMergeable reports whether the group qualifies for automatic
// merging, which requires every member to share one identical canonical
// email. Identity via matching verified emails is near-certain; any
// other grouping is advisory and needs explicit confirmation.
func (g *DuplicateGroup) AutoMergeable() bool {
	return g.SharedEmail != ""
}

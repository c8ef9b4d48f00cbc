package cluster

import (
	"sort"

	"github.com/authcheck/authcheck/internal/model"
	"github.com/authcheck/authcheck/internal/similarity"
)

// Builder groups author variants into duplicate candidates.
type Builder struct {
	scorer    *similarity.Scorer
	threshold int
}

// NewBuilder creates a Builder using the given scorer and similarity
// threshold in [0,100]. Pairs scoring at or above the threshold are
// considered duplicate evidence.
func NewBuilder(scorer *similarity.Scorer, threshold int) *Builder {
	return &Builder{scorer: scorer, threshold: threshold}
}

// Build partitions the report's active author variants into
// duplicate-candidate groups of size >= 2. Variants already merged into
// a canonical identity are excluded; their canonical record represents
// them.
//
// The two-phase approach (score all pairs, then connected components
// over threshold edges) makes the result a pure function of the pair
// scores: no visit order can change which variants end up together.
// Pairwise scoring is O(n^2) over distinct variants, which is fine for
// one venue's submission pool.
func (b *Builder) Build(report *model.AnalysisReport) []*model.DuplicateGroup {
	active := report.ActiveAuthors()
	if len(active) < 2 {
		return nil
	}

	uf := newUnionFind(len(report.Authors))
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			score, _ := b.scorer.Score(active[i], active[j])
			if score >= b.threshold {
				uf.union(active[i].ID, active[j].ID)
			}
		}
	}

	// Collect components. Members are appended in first-appearance
	// order because active is ordered by ID, so the first member of
	// each component is its seed.
	components := make(map[int][]*model.Author)
	for _, a := range active {
		root := uf.find(a.ID)
		components[root] = append(components[root], a)
	}

	candidates := make([][]*model.Author, 0, len(components))
	for _, members := range components {
		if len(members) >= 2 {
			candidates = append(candidates, members)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i][0].ID < candidates[j][0].ID
	})

	groups := make([]*model.DuplicateGroup, 0, len(candidates))
	for i, members := range candidates {
		groups = append(groups, b.buildGroup(i+1, members))
	}
	return groups
}

// buildGroup assembles one DuplicateGroup, scoring every member against
// the seed for explainability and detecting a shared canonical email.
func (b *Builder) buildGroup(id int, members []*model.Author) *model.DuplicateGroup {
	seed := members[0]
	group := &model.DuplicateGroup{
		ID:      id,
		Members: make([]model.GroupMember, 0, len(members)),
	}

	sharedEmail := seed.CanonicalEmail
	for _, m := range members {
		score, signal := 100, similarity.SignalSeed
		if m.ID != seed.ID {
			score, signal = b.scorer.Score(seed, m)
		}
		group.Members = append(group.Members, model.GroupMember{
			AuthorID: m.ID,
			Score:    score,
			Signal:   signal,
		})
		if m.CanonicalEmail == "" || m.CanonicalEmail != sharedEmail {
			sharedEmail = ""
		}
	}
	group.SharedEmail = sharedEmail
	return group
}

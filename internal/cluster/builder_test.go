package cluster

import (
	"testing"

	"github.com/authcheck/authcheck/internal/model"
	"github.com/authcheck/authcheck/internal/normalize"
	"github.com/authcheck/authcheck/internal/similarity"
)

// internVariant parses nothing; it interns a variant with canonical
// fields computed by the normalizer, mimicking the parse step.
func internVariant(t *testing.T, report *model.AnalysisReport, n *normalize.Normalizer, paperID, name, email, affiliation string) *model.Author {
	t.Helper()

	return report.InternAuthor(model.Author{
		Name:                 name,
		Email:                email,
		Affiliation:          affiliation,
		CanonicalName:        n.Name(name),
		CanonicalEmail:       n.Email(email),
		CanonicalAffiliation: n.Affiliation(affiliation),
	}, paperID)
}

func newBuilder() *Builder {
	return NewBuilder(similarity.NewScorer(60), 85)
}

func TestBuilderBuild(t *testing.T) {
	t.Parallel()

	t.Run("groups name variants of the same person", func(t *testing.T) {
		t.Parallel()

		report := model.NewAnalysisReport("test")
		n := normalize.New(nil)
		internVariant(t, report, n, "P001", "Alice Zhang", "alice.zhang@nus.edu.sg", "National University of Singapore")
		internVariant(t, report, n, "P002", "Zhang, Alice", "alice.zhang@nus.edu.sg", "NUS")
		internVariant(t, report, n, "P003", "Alice Y. Zhang", "alice.zhang@nus.edu.sg", "National University of Singapore")
		internVariant(t, report, n, "P004", "Henry Thompson", "h.thompson@oxford.ac.uk", "University of Oxford")

		groups := newBuilder().Build(report)
		if len(groups) != 1 {
			t.Fatalf("expected 1 group, got %d", len(groups))
		}

		g := groups[0]
		if len(g.Members) != 3 {
			t.Fatalf("expected 3 members, got %d", len(g.Members))
		}
		if g.Seed() != 0 {
			t.Errorf("expected earliest variant as seed, got %d", g.Seed())
		}
		if g.SharedEmail != "alice.zhang@nus.edu.sg" {
			t.Errorf("expected shared email, got %q", g.SharedEmail)
		}
		if !g.AutoMergeable() {
			t.Error("same-email group should be auto-mergeable")
		}
	})

	t.Run("group without shared email is advisory", func(t *testing.T) {
		t.Parallel()

		report := model.NewAnalysisReport("test")
		n := normalize.New(nil)
		internVariant(t, report, n, "P001", "Emily Wang", "ewang@berkeley.edu", "UC Berkeley")
		internVariant(t, report, n, "P002", "Emily Wang", "", "University of California, Berkeley")

		groups := newBuilder().Build(report)
		if len(groups) != 1 {
			t.Fatalf("expected 1 group, got %d", len(groups))
		}
		if groups[0].SharedEmail != "" {
			t.Errorf("expected no shared email, got %q", groups[0].SharedEmail)
		}
		if groups[0].AutoMergeable() {
			t.Error("group with a missing email must not be auto-mergeable")
		}
	})

	t.Run("different people stay apart", func(t *testing.T) {
		t.Parallel()

		report := model.NewAnalysisReport("test")
		n := normalize.New(nil)
		internVariant(t, report, n, "P001", "Alice Zhang", "alice@nus.edu.sg", "NUS")
		internVariant(t, report, n, "P002", "Bob Li", "bob.li@google.com", "Google Research")
		internVariant(t, report, n, "P003", "Grace Park", "gpark@kaist.ac.kr", "KAIST")

		groups := newBuilder().Build(report)
		if len(groups) != 0 {
			t.Fatalf("expected no groups, got %d", len(groups))
		}
	})

	t.Run("email mismatch ceiling keeps same-name variants apart", func(t *testing.T) {
		t.Parallel()

		// Same name and affiliation but three different addresses:
		// names alone would clear the threshold, the ceiling must not.
		report := model.NewAnalysisReport("test")
		n := normalize.New(nil)
		internVariant(t, report, n, "P001", "Carol Chen", "cchen@stanford.edu", "Stanford University")
		internVariant(t, report, n, "P002", "Carol Chen", "carol.chen@stanford.edu", "Stanford")
		internVariant(t, report, n, "P003", "Carol Chen", "carol@cs.stanford.edu", "Stanford University")

		groups := newBuilder().Build(report)
		if len(groups) != 0 {
			t.Fatalf("expected no groups under the email mismatch ceiling, got %d", len(groups))
		}
	})

	t.Run("pairwise edges collapse into one component", func(t *testing.T) {
		t.Parallel()

		report := model.NewAnalysisReport("test")
		n := normalize.New(nil)
		internVariant(t, report, n, "P001", "Isabella Rodriguez", "i.rodriguez@cmu.edu", "Carnegie Mellon")
		internVariant(t, report, n, "P002", "Rodriguez, Isabella", "i.rodriguez@cmu.edu", "Carnegie Mellon University")
		internVariant(t, report, n, "P003", "Isabella Rodriguez", "i.rodriguez@cmu.edu", "CMU")

		groups := newBuilder().Build(report)
		if len(groups) != 1 {
			t.Fatalf("expected 1 group, got %d", len(groups))
		}
		if len(groups[0].Members) != 3 {
			t.Errorf("expected 3 members, got %d", len(groups[0].Members))
		}
	})

	t.Run("merged variants are excluded from clustering", func(t *testing.T) {
		t.Parallel()

		report := model.NewAnalysisReport("test")
		n := normalize.New(nil)
		a := internVariant(t, report, n, "P001", "Alice Zhang", "alice@nus.edu.sg", "NUS")
		b := internVariant(t, report, n, "P002", "Zhang, Alice", "alice@nus.edu.sg", "NUS")
		b.MergedInto = a.ID

		groups := newBuilder().Build(report)
		if len(groups) != 0 {
			t.Fatalf("expected no groups after merge, got %d", len(groups))
		}
	})

	t.Run("fewer than two active variants yields nil", func(t *testing.T) {
		t.Parallel()

		report := model.NewAnalysisReport("test")
		n := normalize.New(nil)
		internVariant(t, report, n, "P001", "Grace Park", "gpark@kaist.ac.kr", "KAIST")

		if groups := newBuilder().Build(report); groups != nil {
			t.Errorf("expected nil groups, got %v", groups)
		}
	})

	t.Run("group members carry scores and signals", func(t *testing.T) {
		t.Parallel()

		report := model.NewAnalysisReport("test")
		n := normalize.New(nil)
		internVariant(t, report, n, "P001", "Frank Mueller", "frank.mueller@ethz.ch", "ETH Zurich")
		internVariant(t, report, n, "P002", "Mueller, Frank", "frank.mueller@ethz.ch", "ETH")

		groups := newBuilder().Build(report)
		if len(groups) != 1 {
			t.Fatalf("expected 1 group, got %d", len(groups))
		}
		for _, m := range groups[0].Members {
			if m.Score < 0 || m.Score > 100 {
				t.Errorf("member %d score out of range: %d", m.AuthorID, m.Score)
			}
			if m.Signal == "" {
				t.Errorf("member %d has no signal", m.AuthorID)
			}
		}
		if groups[0].Members[0].Score != 100 {
			t.Errorf("seed should carry 100, got %d", groups[0].Members[0].Score)
		}
	})

	t.Run("seed carries the seed signal even without an email", func(t *testing.T) {
		t.Parallel()

		report := model.NewAnalysisReport("test")
		n := normalize.New(nil)
		internVariant(t, report, n, "P001", "Emily Wang", "", "UC Berkeley")
		internVariant(t, report, n, "P002", "Emily Wang", "", "University of California, Berkeley")

		groups := newBuilder().Build(report)
		if len(groups) != 1 {
			t.Fatalf("expected 1 group, got %d", len(groups))
		}

		seed := groups[0].Members[0]
		if seed.Signal != similarity.SignalSeed {
			t.Errorf("expected seed signal %q, got %q", similarity.SignalSeed, seed.Signal)
		}
		for _, m := range groups[0].Members[1:] {
			if m.Signal == similarity.SignalSeed {
				t.Errorf("member %d should carry a scorer signal, got the seed marker", m.AuthorID)
			}
		}
	})

	t.Run("group ids start at 1 and are ordered by seed", func(t *testing.T) {
		t.Parallel()

		report := model.NewAnalysisReport("test")
		n := normalize.New(nil)
		internVariant(t, report, n, "P001", "Alice Zhang", "alice@nus.edu.sg", "NUS")
		internVariant(t, report, n, "P002", "Frank Mueller", "frank@ethz.ch", "ETH Zurich")
		internVariant(t, report, n, "P003", "Zhang, Alice", "alice@nus.edu.sg", "NUS")
		internVariant(t, report, n, "P004", "Mueller, Frank", "frank@ethz.ch", "ETH")

		groups := newBuilder().Build(report)
		if len(groups) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(groups))
		}
		if groups[0].ID != 1 || groups[1].ID != 2 {
			t.Errorf("expected IDs 1 and 2, got %d and %d", groups[0].ID, groups[1].ID)
		}
		if groups[0].Seed() != 0 {
			t.Errorf("first group should be seeded by the earliest variant, got %d", groups[0].Seed())
		}
	})
}

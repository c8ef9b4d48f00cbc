package similarity

import (
	"math"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/authcheck/authcheck/internal/model"
)

// Dominant signals reported alongside a score.
const (
	// SignalEmailMatch means both canonical emails are present and
	// equal. This is deterministic identity and short-circuits all
	// other evidence.
	SignalEmailMatch = "email match"

	// SignalEmailMismatch means both emails are present but differ,
	// capping the combined score. Two verified, different addresses
	// are strong evidence against a shared identity even when the
	// names agree closely.
	SignalEmailMismatch = "email mismatch"

	// SignalEmailOnly means at least one variant has no usable name,
	// so the comparison fell back to email equality alone.
	SignalEmailOnly = "email only"

	// SignalName means name similarity contributed most of the score.
	SignalName = "name similarity"

	// SignalAffiliation means affiliation similarity contributed most.
	SignalAffiliation = "affiliation similarity"

	// SignalSeed marks a group's reference member. The seed is not
	// scored against itself, so its entry carries this instead of a
	// scorer signal.
	SignalSeed = "group seed"
)

// Weights of the combined score. Names identify people; affiliations
// only corroborate, and people change institutions.
const (
	nameWeight        = 0.6
	affiliationWeight = 0.4
)

// Scorer computes pairwise confidence scores from canonical forms.
// It is stateless apart from its configuration and safe to reuse
// across clustering runs.
type Scorer struct {
	// nameMetric measures edit distance over token-sorted canonical
	// names. Because the normalizer already sorts tokens, plain
	// Levenshtein similarity behaves as a token-sort fuzzy ratio.
	nameMetric *metrics.Levenshtein

	// affiliationMetric measures bigram overlap, which tolerates the
	// word reordering and partial spellings common in affiliations.
	affiliationMetric *metrics.SorensenDice

	// emailMismatchCeiling caps the combined score when both variants
	// carry emails that differ. Always below the auto-merge threshold.
	emailMismatchCeiling int
}

// NewScorer creates a Scorer. emailMismatchCeiling must have been
// validated by config (inside [0,100] and below the clustering
// threshold).
func NewScorer(emailMismatchCeiling int) *Scorer {
	return &Scorer{
		nameMetric:           metrics.NewLevenshtein(),
		affiliationMetric:    metrics.NewSorensenDice(),
		emailMismatchCeiling: emailMismatchCeiling,
	}
}

// Score returns the confidence in [0,100] that two author variants
// denote the same person, plus the dominant signal behind the number.
//
// Policy, in priority order:
//  1. Equal non-empty canonical emails score 100 outright.
//  2. A variant without a usable name compares solely on email.
//  3. Otherwise 0.6*name + 0.4*affiliation fuzzy ratios, where a
//     missing affiliation on either side counts as 100 so absence
//     never penalizes.
//  4. Differing emails on both sides cap the result at the configured
//     ceiling.
func (s *Scorer) Score(a, b *model.Author) (int, string) {
	emailA, emailB := a.CanonicalEmail, b.CanonicalEmail

	if emailA != "" && emailA == emailB {
		return 100, SignalEmailMatch
	}

	// No usable name on either side: email equality already failed
	// above, so there is nothing left to compare.
	if a.CanonicalName == "" || b.CanonicalName == "" {
		return 0, SignalEmailOnly
	}

	nameScore := ratio(s.nameMetric, a.CanonicalName, b.CanonicalName)

	affiliationScore := 100
	hasAffiliations := a.CanonicalAffiliation != "" && b.CanonicalAffiliation != ""
	if hasAffiliations {
		affiliationScore = ratio(s.affiliationMetric, a.CanonicalAffiliation, b.CanonicalAffiliation)
	}

	combined := int(math.Round(nameWeight*float64(nameScore) + affiliationWeight*float64(affiliationScore)))

	signal := SignalName
	if hasAffiliations && affiliationWeight*float64(affiliationScore) > nameWeight*float64(nameScore) {
		signal = SignalAffiliation
	}

	if emailA != "" && emailB != "" && combined > s.emailMismatchCeiling {
		return s.emailMismatchCeiling, SignalEmailMismatch
	}
	return combined, signal
}

// ratio converts a [0,1] string similarity into an integer percentage.
func ratio(metric strutil.StringMetric, a, b string) int {
	return int(math.Round(strutil.Similarity(a, b, metric) * 100))
}

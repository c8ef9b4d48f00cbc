// Package similarity computes pairwise identity-confidence scores
// between parsed author variants. A score lives in [0,100] and comes
// with the dominant signal that drove it, so clustering decisions stay
// explainable during human review.
package similarity

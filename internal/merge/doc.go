// Package merge applies duplicate-group merge decisions. A merge
// collapses a group of author variants into one canonical identity and
// reassigns submission ownership. Merging is the only mutation of the
// submission-to-identity mapping in the system; everything downstream
// (stats, violations) is recomputed from the mapping afterwards.
package merge

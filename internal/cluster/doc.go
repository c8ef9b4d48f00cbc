// Package cluster partitions author variants into duplicate-candidate
// groups. It scores every eligible pair and joins variants through a
// union-find structure over edges at or above the similarity threshold,
// so the grouping is deterministic and independent of input order.
// Groups are a heuristic intended for human confirmation, not silent
// auto-merge; only the same-email policy in the merge package may apply
// a group automatically.
package cluster

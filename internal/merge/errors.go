package merge

import "errors"

// Merge failures. All of them leave the report unchanged: validation
// runs to completion before any variant is touched.
var (
	// ErrGroupTooSmall is returned for groups with fewer than two
	// members. There is nothing to merge.
	ErrGroupTooSmall = errors.New("merge group must have at least two members")

	// ErrUnknownAuthor is returned when the chosen canonical ID does
	// not reference an author in the report.
	ErrUnknownAuthor = errors.New("canonical author not found in report")

	// ErrNotGroupMember is returned when the chosen canonical author is
	// not a member of the group being merged.
	ErrNotGroupMember = errors.New("canonical author is not a member of the group")

	// ErrMergeConflict is returned when a group member was already
	// merged into a different canonical identity. Applying the merge
	// would silently re-home submissions, so it is rejected instead.
	ErrMergeConflict = errors.New("group member already merged into a different identity")
)

package model

import "strings"

// Status represents the review state of a submission.
//
// Design decision: We use iota-based constants rather than string
// constants for efficiency in comparisons and aggregation. The String()
// method provides human-readable output when needed.
type Status int

const (
	// StatusUnknown is used when the input row carries no recognizable
	// status value. Unknown submissions still count toward limits.
	StatusUnknown Status = iota

	// StatusUnderReview indicates a submission currently in review.
	StatusUnderReview

	// StatusAccepted indicates an accepted submission.
	StatusAccepted

	// StatusRejected indicates a rejected submission.
	StatusRejected

	// StatusWithdrawn indicates a submission withdrawn by its authors.
	StatusWithdrawn
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusUnderReview:
		return "under review"
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	case StatusWithdrawn:
		return "withdrawn"
	default:
		return "unknown"
	}
}

// ParseStatus converts a free-text status value into a Status.
// Matching is case-insensitive and tolerant of hyphen and underscore
// separators ("Under Review", "under-review", "UNDER_REVIEW" are
// equivalent). Unrecognized values map to StatusUnknown rather than
// failing, because a bad status must not prevent a row from loading.
func ParseStatus(value string) Status {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("-", " ", "_", " ").Replace(normalized)

	switch normalized {
	case "under review", "in review", "review", "reviewing", "submitted":
		return StatusUnderReview
	case "accepted", "accept":
		return StatusAccepted
	case "rejected", "reject":
		return StatusRejected
	case "withdrawn", "withdraw":
		return StatusWithdrawn
	default:
		return StatusUnknown
	}
}

// MarshalText implements encoding.TextMarshaler so Status serializes
// as its name in JSON rather than an opaque integer.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	*s = ParseStatus(string(text))
	return nil
}

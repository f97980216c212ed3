package domain

import "errors"

// ErrUnknownReactionKind is returned when a caller supplies a reaction name
// outside the two seeded kinds.
var ErrUnknownReactionKind = errors.New("unknown reaction kind")

// ReactionKind names one of the two fixed reaction categories. Kinds are
// stored as rows in the reactions table and resolved by name at insert time.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Validate checks that the kind is one of the seeded categories.
func (k ReactionKind) Validate() error {
	switch k {
	case ReactionLike, ReactionDislike:
		return nil
	}
	return ErrUnknownReactionKind
}

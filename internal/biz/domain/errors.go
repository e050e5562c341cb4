package domain

import "errors"

// ErrDuplicateCommitment maps the store's uniqueness violation on
// (committed_at, participant, description). The resolver recovers it
// within the cycle and records the outcome into the wide event.
var ErrDuplicateCommitment = errors.New("duplicate commitment")

package scroll

import (
	"encoding/json"
	"errors"
	"fmt"
)

const envelopeKind = "headerscroll"

// ErrForeignState is returned when a blob was not produced by MarshalEnvelope.
var ErrForeignState = errors.New("scroll: saved state not produced by a container")

// SavedState is the container-specific part of a persisted blob.
type SavedState struct {
	Offset int `json:"offset"`
	Bound  int `json:"bound"`
}

type envelope struct {
	Kind  string     `json:"kind"`
	Super []byte     `json:"super,omitempty"`
	State SavedState `json:"state"`
}

// MarshalEnvelope chains st beneath the parent's own saved blob.
func MarshalEnvelope(super []byte, st SavedState) ([]byte, error) {
	data, err := json.Marshal(envelope{Kind: envelopeKind, Super: super, State: st})
	if err != nil {
		return nil, fmt.Errorf("marshal saved state: %w", err)
	}
	return data, nil
}

// UnmarshalEnvelope splits a blob into the parent state and ours. A blob
// that is not ours comes back untouched as super, with ErrForeignState.
func UnmarshalEnvelope(blob []byte) (super []byte, st SavedState, err error) {
	var env envelope
	if jerr := json.Unmarshal(blob, &env); jerr != nil || env.Kind != envelopeKind {
		return blob, SavedState{}, ErrForeignState
	}
	return env.Super, env.State, nil
}

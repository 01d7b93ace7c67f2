package resolver

import (
	"encoding/json"
	"fmt"
)

// FailureReason classifies why a name could not be resolved.
type FailureReason int

const (
	// ReasonNone marks a successfully resolved name.
	ReasonNone FailureReason = iota

	// ReasonNotFound: the service knows no compound for the name.
	ReasonNotFound

	// ReasonAmbiguousMatch: the service flagged the match as unreliable
	// and no deterministic candidate choice was possible.
	ReasonAmbiguousMatch

	// ReasonServiceError: malformed or error response from the service.
	ReasonServiceError

	// ReasonTimeout: no response within the per-call deadline.
	ReasonTimeout
)

var reasonNames = map[FailureReason]string{
	ReasonNone:           "None",
	ReasonNotFound:       "NotFound",
	ReasonAmbiguousMatch: "AmbiguousMatch",
	ReasonServiceError:   "ServiceError",
	ReasonTimeout:        "Timeout",
}

func (r FailureReason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return "Unknown"
}

// MarshalJSON serialises FailureReason as its name string.
func (r FailureReason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON deserialises a name string into FailureReason.
func (r *FailureReason) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for k, v := range reasonNames {
		if v == s {
			*r = k
			return nil
		}
	}
	return fmt.Errorf("unknown failure reason: %s", s)
}

// Result is the outcome of resolving one chemical name: either a canonical
// SMILES encoding or a classified failure.  Exactly one Result is produced
// per input name and every failure path terminates in one — no error ever
// crosses the resolver boundary.
type Result struct {
	// Name is the input chemical name, verbatim.
	Name string `json:"name"`

	// SMILES is the canonical structure encoding; empty unless resolved.
	SMILES string `json:"smiles,omitempty"`

	// Reason is ReasonNone when resolved, otherwise the failure class.
	Reason FailureReason `json:"reason"`
}

// Resolved reports whether the name was mapped to a SMILES encoding.
func (r Result) Resolved() bool {
	return r.Reason == ReasonNone
}

// NewResolved constructs a successful Result.
func NewResolved(name, smiles string) Result {
	return Result{Name: name, SMILES: smiles}
}

// NewUnresolved constructs a failed Result with the given reason.
func NewUnresolved(name string, reason FailureReason) Result {
	return Result{Name: name, Reason: reason}
}

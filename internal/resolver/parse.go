package resolver

import (
	"encoding/json"
	"net/http"
	"strings"
)

// propertyTable mirrors the PUG REST property response shape:
//
//	{"PropertyTable":{"Properties":[{"CID":938,"CanonicalSMILES":"..."}]}}
//
// Properties are returned in the service's own ranking; the first entry is
// the deterministic tie-break when a name maps to several compounds.
type propertyTable struct {
	PropertyTable struct {
		Properties []struct {
			CID             int64  `json:"CID"`
			CanonicalSMILES string `json:"CanonicalSMILES"`
		} `json:"Properties"`
	} `json:"PropertyTable"`
}

// faultResponse mirrors the PUG REST fault shape:
//
//	{"Fault":{"Code":"PUGREST.NotFound","Message":"...","Details":[...]}}
type faultResponse struct {
	Fault struct {
		Code    string   `json:"Code"`
		Message string   `json:"Message"`
		Details []string `json:"Details"`
	} `json:"Fault"`
}

// classify maps a raw service response onto the Result failure taxonomy.
// Every expected shape is enumerated here; anything unrecognised is a
// ServiceError rather than a guess.
func classify(raw *RawResponse) (smiles string, reason FailureReason) {
	if raw == nil {
		return "", ReasonServiceError
	}

	// A fault body can accompany any status code; it is the most specific
	// signal, so check it first.
	if reason, ok := classifyFault(raw.Body); ok {
		return "", reason
	}

	switch {
	case raw.StatusCode == http.StatusOK:
		var table propertyTable
		if err := json.Unmarshal(raw.Body, &table); err != nil {
			return "", ReasonServiceError
		}
		props := table.PropertyTable.Properties
		if len(props) == 0 || props[0].CanonicalSMILES == "" {
			return "", ReasonNotFound
		}
		// First-ranked candidate wins.
		return props[0].CanonicalSMILES, ReasonNone

	case raw.StatusCode == http.StatusNotFound:
		return "", ReasonNotFound

	case raw.StatusCode == http.StatusRequestTimeout,
		raw.StatusCode == http.StatusGatewayTimeout:
		return "", ReasonTimeout

	default:
		return "", ReasonServiceError
	}
}

// classifyFault inspects body for a PUG REST fault and maps its code.
// ok is false when body carries no fault.
func classifyFault(body []byte) (FailureReason, bool) {
	var fault faultResponse
	if err := json.Unmarshal(body, &fault); err != nil || fault.Fault.Code == "" {
		return ReasonNone, false
	}

	code := fault.Fault.Code
	switch {
	case strings.Contains(code, "NotFound"):
		return ReasonNotFound, true
	case strings.Contains(code, "Ambiguous"):
		// The service explicitly flags the match as unreliable; this is
		// the only path that emits AmbiguousMatch.
		return ReasonAmbiguousMatch, true
	case strings.Contains(code, "Timeout"):
		return ReasonTimeout, true
	default:
		return ReasonServiceError, true
	}
}

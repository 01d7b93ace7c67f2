package resolver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyResolved(t *testing.T) {
	raw := &RawResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"PropertyTable":{"Properties":[{"CID":938,"CanonicalSMILES":"C1=CC(=CN=C1)C(=O)O"}]}}`),
	}

	smiles, reason := classify(raw)
	assert.Equal(t, ReasonNone, reason)
	assert.Equal(t, "C1=CC(=CN=C1)C(=O)O", smiles)
}

func TestClassifyFirstCandidateWins(t *testing.T) {
	raw := &RawResponse{
		StatusCode: http.StatusOK,
		Body: []byte(`{"PropertyTable":{"Properties":[` +
			`{"CID":1,"CanonicalSMILES":"first"},` +
			`{"CID":2,"CanonicalSMILES":"second"}]}}`),
	}

	smiles, reason := classify(raw)
	assert.Equal(t, ReasonNone, reason)
	assert.Equal(t, "first", smiles)
}

func TestClassifyFailureShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  *RawResponse
		want FailureReason
	}{
		{
			"nil response",
			nil,
			ReasonServiceError,
		},
		{
			"empty property list",
			&RawResponse{StatusCode: http.StatusOK, Body: []byte(`{"PropertyTable":{"Properties":[]}}`)},
			ReasonNotFound,
		},
		{
			"first candidate without smiles",
			&RawResponse{StatusCode: http.StatusOK, Body: []byte(`{"PropertyTable":{"Properties":[{"CID":1}]}}`)},
			ReasonNotFound,
		},
		{
			"http 404 without fault body",
			&RawResponse{StatusCode: http.StatusNotFound, Body: []byte(`gone`)},
			ReasonNotFound,
		},
		{
			"fault notfound",
			&RawResponse{StatusCode: http.StatusNotFound, Body: []byte(`{"Fault":{"Code":"PUGREST.NotFound","Message":"No CID found"}}`)},
			ReasonNotFound,
		},
		{
			"fault ambiguous",
			&RawResponse{StatusCode: http.StatusBadRequest, Body: []byte(`{"Fault":{"Code":"PUGREST.AmbiguousMatch","Message":"unreliable match"}}`)},
			ReasonAmbiguousMatch,
		},
		{
			"fault timeout",
			&RawResponse{StatusCode: http.StatusGatewayTimeout, Body: []byte(`{"Fault":{"Code":"PUGREST.Timeout","Message":"too slow"}}`)},
			ReasonTimeout,
		},
		{
			"fault server busy",
			&RawResponse{StatusCode: http.StatusServiceUnavailable, Body: []byte(`{"Fault":{"Code":"PUGREST.ServerBusy","Message":"busy"}}`)},
			ReasonServiceError,
		},
		{
			"http 504 without fault body",
			&RawResponse{StatusCode: http.StatusGatewayTimeout, Body: []byte(``)},
			ReasonTimeout,
		},
		{
			"malformed json on 200",
			&RawResponse{StatusCode: http.StatusOK, Body: []byte(`<html>proxy error</html>`)},
			ReasonServiceError,
		},
		{
			"http 500",
			&RawResponse{StatusCode: http.StatusInternalServerError, Body: []byte(`boom`)},
			ReasonServiceError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			smiles, reason := classify(tt.raw)
			assert.Empty(t, smiles)
			assert.Equal(t, tt.want, reason)
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	raw := &RawResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"PropertyTable":{"Properties":[{"CID":938,"CanonicalSMILES":"CCO"}]}}`),
	}

	a, _ := classify(raw)
	b, _ := classify(raw)
	assert.Equal(t, a, b)
}

package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/chem2smiles/internal/config"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *PubChemService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewPubChemService(config.ResolverConfig{
		BaseURL:   srv.URL + "/rest/pug",
		UserAgent: "chem2smiles-test/1.0",
	})
}

func TestQueryRequestShape(t *testing.T) {
	var gotPath, gotUA, gotAccept string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{}`))
	})

	_, err := svc.Query(context.Background(), "Glutamic acid")
	require.NoError(t, err)

	assert.Equal(t, "/rest/pug/compound/name/Glutamic%20acid/property/CanonicalSMILES/JSON", gotPath)
	assert.Equal(t, "chem2smiles-test/1.0", gotUA)
	assert.Equal(t, "application/json", gotAccept)
}

func TestQueryEscapesAwkwardNames(t *testing.T) {
	var gotPath string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{}`))
	})

	// Salt names carry slashes in some vendor catalogues.
	_, err := svc.Query(context.Background(), "sodium chloride/water")
	require.NoError(t, err)
	assert.Contains(t, gotPath, "sodium%20chloride%2Fwater")
}

func TestQueryReturnsStatusAndBody(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"Fault":{"Code":"PUGREST.NotFound"}}`))
	})

	raw, err := svc.Query(context.Background(), "unobtainium")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, raw.StatusCode)
	assert.Contains(t, string(raw.Body), "PUGREST.NotFound")
}

func TestQueryTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	svc := NewPubChemService(config.ResolverConfig{BaseURL: srv.URL})
	srv.Close()

	_, err := svc.Query(context.Background(), "ethanol")
	assert.Error(t, err)
}

func TestQueryHonoursContextDeadline(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.Query(ctx, "ethanol")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewPubChemServiceTrimsTrailingSlash(t *testing.T) {
	svc := NewPubChemService(config.ResolverConfig{BaseURL: "http://example.test/pug/"})
	assert.Equal(t, "http://example.test/pug", svc.baseURL)
}

package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/chem2smiles/internal/config"
	"github.com/turtacn/chem2smiles/pkg/errors"
)

var fakePNG = []byte("\x89PNG\r\n\x1a\nfake image bytes")

func newTestRenderer(t *testing.T, handler http.HandlerFunc) *PubChemRenderer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewPubChemRenderer(config.ResolverConfig{BaseURL: srv.URL + "/rest/pug"}, "400x400")
}

func TestRenderWritesImage(t *testing.T) {
	var gotPath, gotSMILES, gotSize string
	r := newTestRenderer(t, func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		gotSMILES = req.URL.Query().Get("smiles")
		gotSize = req.URL.Query().Get("image_size")
		w.Write(fakePNG)
	})

	out := filepath.Join(t.TempDir(), "niacin.png")
	require.NoError(t, r.Render(context.Background(), "C1=CC(=CN=C1)C(=O)O", out))

	assert.Equal(t, "/rest/pug/compound/smiles/PNG", gotPath)
	assert.Equal(t, "C1=CC(=CN=C1)C(=O)O", gotSMILES)
	assert.Equal(t, "400x400", gotSize)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, fakePNG, data)
}

func TestRenderPreservesStereoBondSlashes(t *testing.T) {
	var gotSMILES string
	r := newTestRenderer(t, func(w http.ResponseWriter, req *http.Request) {
		gotSMILES = req.URL.Query().Get("smiles")
		w.Write(fakePNG)
	})

	out := filepath.Join(t.TempDir(), "ferulic.png")
	require.NoError(t, r.Render(context.Background(), `COc1cc(/C=C/C(=O)O)ccc1O`, out))
	assert.Equal(t, `COc1cc(/C=C/C(=O)O)ccc1O`, gotSMILES)
}

func TestRenderServiceFailure(t *testing.T) {
	r := newTestRenderer(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	out := filepath.Join(t.TempDir(), "bad.png")
	err := r.Render(context.Background(), "not-smiles", out)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeRenderFailed))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderServiceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	r := NewPubChemRenderer(config.ResolverConfig{BaseURL: srv.URL}, "400x400")
	srv.Close()

	err := r.Render(context.Background(), "CCO", filepath.Join(t.TempDir(), "x.png"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeRenderUnavailable))
}

func TestRenderUnwritablePath(t *testing.T) {
	r := newTestRenderer(t, func(w http.ResponseWriter, req *http.Request) {
		w.Write(fakePNG)
	})

	err := r.Render(context.Background(), "CCO", filepath.Join(t.TempDir(), "missing", "x.png"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeRenderFailed))
}

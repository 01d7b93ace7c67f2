// Package render produces 2D structure depictions for resolved SMILES
// encodings.  Rendering is an external collaborator of the pipeline: the
// production implementation fetches a raster from the PubChem depiction
// endpoint, and failures are reported per name without ever affecting the
// batch outcome.
package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/turtacn/chem2smiles/internal/config"
	"github.com/turtacn/chem2smiles/pkg/errors"
)

// maxImageBytes caps a single depiction download.
const maxImageBytes = 8 << 20

// Renderer turns a SMILES encoding into an image file at path.
type Renderer interface {
	Render(ctx context.Context, smiles, path string) error
}

// PubChemRenderer fetches PNG depictions from the PUG REST endpoint.
type PubChemRenderer struct {
	baseURL    string
	size       string
	httpClient *http.Client
}

// NewPubChemRenderer constructs a renderer sharing the resolver's service
// endpoint; size is "<width>x<height>".
func NewPubChemRenderer(cfg config.ResolverConfig, size string) *PubChemRenderer {
	return &PubChemRenderer{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		size:       size,
		httpClient: &http.Client{},
	}
}

// Render fetches the depiction of smiles and writes it to path.  The SMILES
// string travels as a query parameter: characters like "/" and "\" are
// meaningful stereo-bond notation and must not be mangled by path routing.
func (r *PubChemRenderer) Render(ctx context.Context, smiles, path string) error {
	q := url.Values{}
	q.Set("smiles", smiles)
	if r.size != "" {
		q.Set("image_size", r.size)
	}
	u := fmt.Sprintf("%s/compound/smiles/PNG?%s", r.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeRenderFailed, "building depiction request")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeRenderUnavailable, "depiction service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf(errors.ErrCodeRenderFailed, "depiction service returned HTTP %d", resp.StatusCode)
	}

	img, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeRenderFailed, "reading depiction response")
	}

	if err := os.WriteFile(path, img, 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrCodeRenderFailed, "writing image to %q", path)
	}
	return nil
}

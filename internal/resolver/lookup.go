package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/turtacn/chem2smiles/internal/config"
)

// maxResponseBytes caps how much of a lookup response is read; property
// responses are a few hundred bytes, so anything near this limit is garbage.
const maxResponseBytes = 1 << 20

// RawResponse is the unparsed reply from one name lookup.  The resolver's
// parser, not the transport, decides what it means.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// NameLookupService performs one logical query against the remote structure
// database keyed by chemical name.  Production code uses PubChemService;
// tests substitute in-memory stubs.  Implementations return an error only
// for transport-level failures (connection refused, deadline exceeded);
// any received HTTP response, whatever its status, is a RawResponse.
type NameLookupService interface {
	Query(ctx context.Context, name string) (*RawResponse, error)
}

// PubChemService queries the PubChem PUG REST API for the canonical SMILES
// of a compound by name.
type PubChemService struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewPubChemService constructs a PubChemService from resolver configuration.
// The per-call deadline is managed by the caller's context, not the client.
func NewPubChemService(cfg config.ResolverConfig) *PubChemService {
	return &PubChemService{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{},
	}
}

// Query issues GET {base}/compound/name/{name}/property/CanonicalSMILES/JSON.
func (s *PubChemService) Query(ctx context.Context, name string) (*RawResponse, error) {
	u := fmt.Sprintf("%s/compound/name/%s/property/CanonicalSMILES/JSON", s.baseURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("pubchem: building request for %q: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pubchem: query for %q: %w", name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("pubchem: reading response for %q: %w", name, err)
	}

	return &RawResponse{StatusCode: resp.StatusCode, Body: body}, nil
}

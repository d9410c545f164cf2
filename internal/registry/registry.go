// Package registry holds the canonical catalogue of capture endpoints: every
// landing-page / ad-listing combination that can produce leads. The catalogue
// is defined at deploy time and immutable at runtime, so the registry is safe
// for concurrent readers without locking.
package registry

import (
	_ "embed"
	"fmt"
	"os"

	"funnel_analytics_backend/platform/config"

	"gopkg.in/yaml.v3"
)

//go:embed registry.yaml
var defaultCatalogue []byte

// CaptureEndpoint is one configured landing-page/listing combination.
// Listing may be empty, which represents direct or organic traffic for the
// source channel.
type CaptureEndpoint struct {
	Source        string `yaml:"source" json:"source"`
	Listing       string `yaml:"listing" json:"listing"`
	CategoryLabel string `yaml:"categoryLabel" json:"categoryLabel"`
	Path          string `yaml:"path" json:"path"`
}

// Key identifies an endpoint by its unique (source, listing) pair.
func (e CaptureEndpoint) Key() EndpointKey {
	return EndpointKey{Source: e.Source, Listing: e.Listing}
}

// EndpointKey is the unique identity of a capture endpoint.
type EndpointKey struct {
	Source  string
	Listing string
}

// Registry is the loaded, validated endpoint catalogue.
type Registry struct {
	endpoints []CaptureEndpoint
	sources   []string
	sourceSet map[string]struct{}
}

type catalogueFile struct {
	Endpoints []CaptureEndpoint `yaml:"endpoints"`
}

// Load reads the catalogue from the configured path, falling back to the
// embedded default catalogue when no path is set.
func Load(cfg config.RegistryConfig) (*Registry, error) {
	data := defaultCatalogue
	if path := cfg.GetRegistryPath(); path != "" {
		external, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read registry catalogue: %w", err)
		}
		data = external
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalogue. Duplicate (source, listing)
// pairs are a configuration error, not a runtime fault.
func Parse(data []byte) (*Registry, error) {
	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse registry catalogue: %w", err)
	}
	if len(file.Endpoints) == 0 {
		return nil, fmt.Errorf("registry catalogue contains no endpoints")
	}

	seen := make(map[EndpointKey]struct{}, len(file.Endpoints))
	sourceSet := make(map[string]struct{})
	sources := make([]string, 0)

	for _, endpoint := range file.Endpoints {
		if endpoint.Source == "" {
			return nil, fmt.Errorf("registry endpoint %q has empty source", endpoint.CategoryLabel)
		}
		key := endpoint.Key()
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate registry endpoint (%s, %s)", key.Source, key.Listing)
		}
		seen[key] = struct{}{}

		if _, ok := sourceSet[endpoint.Source]; !ok {
			sourceSet[endpoint.Source] = struct{}{}
			sources = append(sources, endpoint.Source)
		}
	}

	return &Registry{
		endpoints: file.Endpoints,
		sources:   sources,
		sourceSet: sourceSet,
	}, nil
}

// All returns every endpoint in catalogue order.
func (r *Registry) All() []CaptureEndpoint {
	out := make([]CaptureEndpoint, len(r.endpoints))
	copy(out, r.endpoints)
	return out
}

// BySource returns the endpoints for one channel, preserving catalogue order.
func (r *Registry) BySource(source string) []CaptureEndpoint {
	out := make([]CaptureEndpoint, 0)
	for _, endpoint := range r.endpoints {
		if endpoint.Source == source {
			out = append(out, endpoint)
		}
	}
	return out
}

// Sources returns the distinct channel set in first-seen catalogue order.
func (r *Registry) Sources() []string {
	out := make([]string, len(r.sources))
	copy(out, r.sources)
	return out
}

// Contains reports whether source is a registered channel.
func (r *Registry) Contains(source string) bool {
	_, ok := r.sourceSet[source]
	return ok
}

// Len returns the number of configured endpoints.
func (r *Registry) Len() int {
	return len(r.endpoints)
}

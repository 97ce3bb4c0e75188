package schema

import (
	"fmt"
	"strings"

	"github.com/Sokol111/ecommerce-record-converter/pkg/converter/config"
)

// Origin identifies where a source's schema definition comes from.
type Origin int

const (
	// OriginLocal reads the schema text from a file path.
	OriginLocal Origin = iota + 1
	// OriginRegistry fetches the latest schema version for a subject from
	// the Schema Registry.
	OriginRegistry
)

// String returns the lowercase name of the origin.
func (o Origin) String() string {
	switch o {
	case OriginLocal:
		return "local"
	case OriginRegistry:
		return "registry"
	}
	return "unknown"
}

// Source binds a source identifier to the locator its schema is resolved from.
type Source struct {
	// ID is the source identifier payloads are tagged with.
	ID string
	// Origin says how Locator is interpreted.
	Origin Origin
	// Locator is a file path (OriginLocal) or a registry subject name
	// (OriginRegistry).
	Locator string
}

// ParseSources parses a comma-separated list of identifier=locator pairs.
// When registryConfigured is true, locators are registry subject names,
// otherwise local file paths. Malformed pairs and duplicate identifiers
// fail with config.ErrInvalidConfiguration.
func ParseSources(mapping string, registryConfigured bool) ([]Source, error) {
	if strings.TrimSpace(mapping) == "" {
		return nil, fmt.Errorf("%w: source mapping is empty", config.ErrInvalidConfiguration)
	}

	origin := OriginLocal
	if registryConfigured {
		origin = OriginRegistry
	}

	pairs := strings.Split(mapping, ",")
	sources := make([]Source, 0, len(pairs))
	seen := make(map[string]struct{}, len(pairs))

	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			return nil, fmt.Errorf("%w: empty identifier=locator pair in %q", config.ErrInvalidConfiguration, mapping)
		}

		id, locator, found := strings.Cut(pair, "=")
		id = strings.TrimSpace(id)
		locator = strings.TrimSpace(locator)
		if !found || locator == "" {
			return nil, fmt.Errorf("%w: identifier %q has no locator", config.ErrInvalidConfiguration, id)
		}
		if id == "" {
			return nil, fmt.Errorf("%w: locator %q has no identifier", config.ErrInvalidConfiguration, locator)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: duplicate source identifier %q", config.ErrInvalidConfiguration, id)
		}
		seen[id] = struct{}{}

		sources = append(sources, Source{ID: id, Origin: origin, Locator: locator})
	}

	return sources, nil
}

// Package schema maintains the mapping from source identifier to resolved
// Avro schema. Local schemas are resolved eagerly at construction; registry
// schemas are fetched lazily, coalesced, and cached for the table's lifetime.
package schema

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	hambavro "github.com/hamba/avro/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Sokol111/ecommerce-record-converter/pkg/converter/config"
)

var (
	// ErrUnknownSource is returned when a source identifier was never configured.
	ErrUnknownSource = errors.New("unknown source identifier")

	// ErrSchemaResolution is returned when a configured schema cannot be
	// read, fetched, or parsed.
	ErrSchemaResolution = errors.New("schema resolution failed")
)

// Table maps source identifiers to resolved schemas. It is immutable after
// construction apart from the registry schema cache and safe for concurrent
// lookups.
type Table struct {
	sources  map[string]Source
	fetcher  Fetcher
	logger   *zap.Logger
	group    singleflight.Group
	mu       sync.RWMutex
	resolved map[string]hambavro.Schema
}

// NewTable builds the schema table from the configured source mapping.
// Local schemas are read and parsed immediately so that a broken
// configuration fails at startup. Registry schemas resolve on first Lookup.
func NewTable(cfg config.Config, fetcher Fetcher, logger *zap.Logger) (*Table, error) {
	registryConfigured := cfg.Registry.URL != ""
	if registryConfigured && fetcher == nil {
		return nil, fmt.Errorf("%w: registry URL is set but no fetcher was provided", config.ErrInvalidConfiguration)
	}

	sources, err := ParseSources(cfg.Sources, registryConfigured)
	if err != nil {
		return nil, err
	}

	t := &Table{
		sources:  make(map[string]Source, len(sources)),
		fetcher:  fetcher,
		logger:   logger,
		resolved: make(map[string]hambavro.Schema, len(sources)),
	}

	for _, src := range sources {
		t.sources[src.ID] = src
		if src.Origin == OriginLocal {
			parsed, err := resolveLocal(src)
			if err != nil {
				return nil, err
			}
			t.resolved[src.ID] = parsed
		}
	}

	logger.Info("schema table initialized",
		zap.Int("sources", len(sources)),
		zap.Bool("registry", registryConfigured),
	)
	return t, nil
}

// Lookup returns the schema bound to the given source identifier. Registry
// schemas are fetched on first use; concurrent first lookups for the same
// identifier are coalesced into a single registry call.
func (t *Table) Lookup(sourceID string) (hambavro.Schema, error) {
	src, ok := t.sources[sourceID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, sourceID)
	}

	t.mu.RLock()
	cached, ok := t.resolved[sourceID]
	t.mu.RUnlock()
	if ok {
		return cached, nil
	}

	parsed, err, _ := t.group.Do(sourceID, func() (interface{}, error) {
		// A previous flight may have populated the cache while this call
		// was waiting to enter the group.
		t.mu.RLock()
		cached, ok := t.resolved[sourceID]
		t.mu.RUnlock()
		if ok {
			return cached, nil
		}

		return t.resolveRegistry(src)
	})
	if err != nil {
		return nil, err
	}
	return parsed.(hambavro.Schema), nil
}

// Sources returns all configured sources, sorted by identifier.
func (t *Table) Sources() []Source {
	sources := make([]Source, 0, len(t.sources))
	for _, src := range t.sources {
		sources = append(sources, src)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].ID < sources[j].ID })
	return sources
}

func (t *Table) resolveRegistry(src Source) (hambavro.Schema, error) {
	text, err := t.fetcher.FetchLatest(src.Locator)
	if err != nil {
		return nil, fmt.Errorf("%w: source %s: %w", ErrSchemaResolution, src.ID, err)
	}

	parsed, err := hambavro.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing registry schema for source %s: %w", ErrSchemaResolution, src.ID, err)
	}

	t.mu.Lock()
	t.resolved[src.ID] = parsed
	t.mu.Unlock()

	t.logger.Info("resolved registry schema",
		zap.String("source", src.ID),
		zap.String("subject", src.Locator),
	)
	return parsed, nil
}

func resolveLocal(src Source) (hambavro.Schema, error) {
	text, err := os.ReadFile(src.Locator)
	if err != nil {
		return nil, fmt.Errorf("%w: reading schema file for source %s: %w", ErrSchemaResolution, src.ID, err)
	}

	parsed, err := hambavro.Parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing schema file for source %s: %w", ErrSchemaResolution, src.ID, err)
	}
	return parsed, nil
}

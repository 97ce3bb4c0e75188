package schema

import (
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/schemaregistry"
)

// Fetcher obtains schema text for a registry subject.
type Fetcher interface {
	// FetchLatest returns the schema text of the latest version registered
	// under the given subject.
	FetchLatest(subject string) (string, error)
}

type confluentFetcher struct {
	client schemaregistry.Client
}

// NewConfluentFetcher creates a Fetcher backed by a Confluent Schema Registry
// client. Request timeouts are bounded by the client configuration.
func NewConfluentFetcher(client schemaregistry.Client) Fetcher {
	return &confluentFetcher{client: client}
}

func (f *confluentFetcher) FetchLatest(subject string) (string, error) {
	metadata, err := f.client.GetLatestSchemaMetadata(subject)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest schema for subject %s: %w", subject, err)
	}
	return metadata.Schema, nil
}

// Package container provides test containers for integration tests.
package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SchemaRegistryContainer wraps a testcontainers Schema Registry container.
type SchemaRegistryContainer struct {
	Container testcontainers.Container
	URL       string
}

// SchemaRegistryOption configures the Schema Registry container.
type SchemaRegistryOption func(*schemaRegistryOptions)

type schemaRegistryOptions struct {
	image string
}

// WithSchemaRegistryImage sets the Schema Registry image to use.
func WithSchemaRegistryImage(image string) SchemaRegistryOption {
	return func(o *schemaRegistryOptions) {
		o.image = image
	}
}

// StartSchemaRegistryContainer starts a Schema Registry container.
// This uses Redpanda which includes both Kafka and Schema Registry in one
// container.
func StartSchemaRegistryContainer(ctx context.Context, opts ...SchemaRegistryOption) (*SchemaRegistryContainer, error) {
	options := &schemaRegistryOptions{
		image: "redpandadata/redpanda:v24.1.1",
	}
	for _, opt := range opts {
		opt(options)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        options.image,
			ExposedPorts: []string{"8081/tcp", "9092/tcp"},
			Cmd: []string{
				"redpanda", "start",
				"--mode", "dev-container",
				"--smp", "1",
				"--memory", "512M",
				"--reserve-memory", "0M",
				"--overprovisioned",
				"--node-id", "0",
				"--kafka-addr", "PLAINTEXT://0.0.0.0:9092",
				"--advertise-kafka-addr", "PLAINTEXT://localhost:9092",
				"--schema-registry-addr", "0.0.0.0:8081",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("8081/tcp"),
				wait.ForListeningPort("9092/tcp"),
			).WithDeadline(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start redpanda container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx) //nolint:errcheck // best effort cleanup
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "8081")
	if err != nil {
		_ = container.Terminate(ctx) //nolint:errcheck // best effort cleanup
		return nil, fmt.Errorf("failed to get schema registry port: %w", err)
	}

	schemaRegistryURL := fmt.Sprintf("http://%s:%s", host, port.Port())

	if err := waitForSchemaRegistry(ctx, schemaRegistryURL, 30*time.Second); err != nil {
		_ = container.Terminate(ctx) //nolint:errcheck // best effort cleanup
		return nil, fmt.Errorf("schema registry not ready: %w", err)
	}

	return &SchemaRegistryContainer{
		Container: container,
		URL:       schemaRegistryURL,
	}, nil
}

// Terminate terminates the container.
func (s *SchemaRegistryContainer) Terminate(ctx context.Context) error {
	if s.Container != nil {
		return s.Container.Terminate(ctx)
	}
	return nil
}

func waitForSchemaRegistry(ctx context.Context, url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := &http.Client{Timeout: 2 * time.Second}

	probe := func() error {
		resp, err := client.Get(url + "/subjects")
		if err != nil {
			return err
		}
		_ = resp.Body.Close() //nolint:errcheck // best effort cleanup
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("schema registry returned status %d", resp.StatusCode)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.NewConstantBackOff(500*time.Millisecond), ctx)
	if err := backoff.Retry(probe, policy); err != nil {
		return fmt.Errorf("timeout waiting for schema registry at %s: %w", url, err)
	}
	return nil
}

package converter

import (
	"context"

	"github.com/confluentinc/confluent-kafka-go/v2/schemaregistry"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Sokol111/ecommerce-record-converter/pkg/converter/config"
	"github.com/Sokol111/ecommerce-record-converter/pkg/converter/decode"
	"github.com/Sokol111/ecommerce-record-converter/pkg/converter/schema"
	"github.com/Sokol111/ecommerce-record-converter/pkg/converter/translate"
)

// NewConverterModule provides the converter and all of its collaborators for
// dependency injection. Configuration is read from the "converter" sub-tree
// of the application viper.
func NewConverterModule() fx.Option {
	return fx.Module("converter",
		config.NewConverterConfigModule(),
		fx.Provide(
			provideFetcher,
			schema.NewTable,
			decode.NewHambaDecoder,
			translate.NewAvroTranslator,
			New,
		),
	)
}

// provideFetcher creates the registry fetcher when a registry URL is
// configured. With no registry configured the fetcher is nil and all source
// locators resolve as local file paths.
func provideFetcher(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (schema.Fetcher, error) {
	if cfg.Registry.URL == "" {
		return nil, nil
	}

	clientConf := schemaregistry.NewConfig(cfg.Registry.URL)
	clientConf.RequestTimeoutMs = int(cfg.Registry.RequestTimeout.Milliseconds())

	client, err := schemaregistry.NewClient(clientConf)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("closing schema registry client")
			return client.Close()
		},
	})

	return schema.NewConfluentFetcher(client), nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/BielosX/wombat/pokedex/src/config"
	"github.com/BielosX/wombat/pokedex/src/export"
	"github.com/BielosX/wombat/pokedex/src/logging"
	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/s3"
	"github.com/BielosX/wombat/pokedex/src/usecase"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	cfg        *config.Config
	sugar      *zap.SugaredLogger
	repository *pokeapi.Repository
	catalog    *usecase.Catalog
}

func newApp(configFile string) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	sugar, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	client := pokeapi.NewClient(sugar, pokeapi.Options{
		BaseUrl:       cfg.PokeAPI.BaseURL,
		Timeout:       cfg.PokeAPI.Timeout,
		RetryAttempts: cfg.PokeAPI.RetryAttempts,
	})
	repository := pokeapi.NewRepository(client, sugar, pokeapi.RepositoryOptions{
		Concurrency: cfg.PokeAPI.Concurrency,
		SearchLimit: cfg.PokeAPI.SearchLimit,
	})
	return &app{
		cfg:        cfg,
		sugar:      sugar,
		repository: repository,
		catalog:    usecase.NewCatalog(repository),
	}, nil
}

func (a *app) newExporter(ctx context.Context) (*export.Exporter, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(a.cfg.Export.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS SDK config: %w", err)
	}
	return export.NewExporter(a.repository, s3.NewClient(awsCfg), a.cfg.Export.Bucket, a.cfg.PokeAPI.Concurrency, a.sugar), nil
}

func (a *app) syncLogger() {
	_ = a.sugar.Sync()
}

func newRootCommand() *cobra.Command {
	var configFile string
	root := &cobra.Command{
		Use:           "pokedex",
		Short:         "Browse the PokeAPI catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")

	load := func() (*app, error) {
		return newApp(configFile)
	}
	root.AddCommand(
		newServeCommand(load),
		newLambdaCommand(load),
		newListCommand(load),
		newGetCommand(load),
		newSearchCommand(load),
		newTypeCommand(load),
		newExportCommand(load),
	)
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

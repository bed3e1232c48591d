// Command main generates the relational fixture files: ordered and shuffled
// primary and secondary datasets in the working directory (or
// RELGEN_OUTPUT_DIR).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/yourusername/go-relgen/config"
	"github.com/yourusername/go-relgen/datagen"
	"github.com/yourusername/go-relgen/dbload"
	"github.com/yourusername/go-relgen/logging"
	"github.com/yourusername/go-relgen/pipeline"
	"github.com/yourusername/go-relgen/publish"
)

func main() {
	runCfg := config.LoadRunConfig()
	log := logging.New(os.Stdout, runCfg.LogLevel, runCfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, runCfg, log)
	stop()
	if err != nil {
		log.Error("❌ generation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, runCfg config.RunConfig, log *slog.Logger) error {
	opts := pipeline.Options{
		Dataset: datagen.DefaultConfig(),
		Run:     runCfg,
		Seed:    runCfg.EffectiveSeed(),
		Logger:  log,
	}

	if runCfg.LoadDB {
		loader, closeDB, err := openLoader(runCfg, log)
		if err != nil {
			return err
		}
		defer closeDB()
		opts.Loader = loader
	}

	if runCfg.Upload {
		storeCfg := config.LoadObjectStoreConfig()
		client, err := publish.NewClient(storeCfg)
		if err != nil {
			return err
		}
		opts.Publisher = publish.NewUploader(client, storeCfg.Bucket, storeCfg.Prefix, log)
	}

	log.Info("Starting fixture generation",
		"seed", opts.Seed,
		"output_dir", runCfg.OutputDir,
		"size", opts.Dataset.Size,
		"record_size", opts.Dataset.RecordSize,
		"compression", runCfg.Compression)

	_, err := pipeline.Run(ctx, opts)
	return err
}

func openLoader(runCfg config.RunConfig, log *slog.Logger) (*dbload.Loader, func(), error) {
	dbCfg := config.LoadDBConfig()
	if runCfg.ResetDB {
		if err := config.DropAndRecreateDatabase(dbCfg, log); err != nil {
			return nil, nil, err
		}
	}

	db, err := config.ConnectDB(dbCfg)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := config.PrepareSchema(db, runCfg.ResetDB, log); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	return dbload.NewLoader(db, runCfg.DBBatchSize, log), func() { sqlDB.Close() }, nil
}

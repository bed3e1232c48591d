package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/google/uuid"

	"github.com/yourusername/go-relgen/config"
	"github.com/yourusername/go-relgen/datagen"
	"github.com/yourusername/go-relgen/output"
	"github.com/yourusername/go-relgen/verify"
)

// Loader stores a generated dataset somewhere other than flat files.
type Loader interface {
	Load(ctx context.Context, ds *datagen.Dataset, manifest *output.Manifest) error
}

// Publisher ships written files to remote storage.
type Publisher interface {
	Publish(ctx context.Context, paths []string) error
}

type Options struct {
	Dataset datagen.Config
	Run     config.RunConfig
	Seed    int64
	// Rand overrides the source built from Seed. Result.Seed and the
	// manifest then report 0.
	Rand   datagen.Source
	Logger *slog.Logger

	// Loader and Publisher are used only when Run.LoadDB / Run.Upload are set.
	Loader    Loader
	Publisher Publisher
}

type Result struct {
	RunID        uuid.UUID
	Seed         int64
	Files        []output.FileSpec
	Removed      []string
	Manifest     *output.Manifest
	ManifestPath string
	Report       *verify.Report
}

// Run generates the dataset and writes ordered primary, ordered secondary,
// unordered primary and unordered secondary files in that order. Any error
// stops the run; files already written stay on disk.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if err := opts.Dataset.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Run.Validate(); err != nil {
		return nil, err
	}
	codec, err := output.ParseCodec(opts.Run.Compression)
	if err != nil {
		return nil, err
	}
	if opts.Run.LoadDB && opts.Loader == nil {
		return nil, fmt.Errorf("database load requested without a loader")
	}
	if opts.Run.Upload && opts.Publisher == nil {
		return nil, fmt.Errorf("upload requested without a publisher")
	}

	rnd, seed := opts.Rand, opts.Seed
	if rnd == nil {
		rnd = datagen.NewSource(seed)
	} else {
		seed = 0
	}
	res := &Result{
		RunID: uuid.New(),
		Seed:  seed,
		Files: output.Plan(opts.Run.OutputDir, opts.Dataset, codec),
	}
	log = log.With("run_id", res.RunID.String(), "seed", res.Seed)

	if opts.Run.Clean {
		removed, err := output.CleanStale(opts.Run.OutputDir, opts.Dataset)
		if err != nil {
			return nil, fmt.Errorf("failed to clean stale output: %w", err)
		}
		res.Removed = removed
		if len(removed) > 0 {
			log.Info("Removed stale output", "files", len(removed))
		}
	}

	ds, err := datagen.Generate(opts.Dataset, rnd, log)
	if err != nil {
		return nil, err
	}

	// The dataset keeps insertion order for the loader; unordered files are
	// written from shuffled copies.
	records := map[output.Role][]datagen.Record{
		output.RolePrimary:   ds.PrimaryRecords,
		output.RoleSecondary: ds.SecondaryRecords,
	}
	for _, spec := range res.Files {
		recs := records[spec.Role]
		if !spec.Ordered {
			recs = slices.Clone(recs)
			datagen.Shuffle(recs, rnd)
		}
		log.Info("Generating file " + filepath.Base(spec.Path))
		if err := output.WriteRecords(spec.Path, recs, codec); err != nil {
			return nil, err
		}
	}

	res.Manifest = output.NewManifest(res.RunID, res.Seed, opts.Dataset, codec)
	for _, spec := range res.Files {
		if err := res.Manifest.AddFile(spec, len(records[spec.Role])); err != nil {
			return nil, err
		}
	}
	if opts.Run.Manifest {
		path, err := res.Manifest.Write(opts.Run.OutputDir)
		if err != nil {
			return nil, err
		}
		res.ManifestPath = path
		log.Info("✅ Wrote manifest", "path", path)
	}

	if opts.Run.Verify {
		report, err := verify.Files(res.Files, opts.Dataset, codec)
		if err != nil {
			return nil, err
		}
		res.Report = report
		for role, same := range report.SameOrder {
			if same {
				log.Warn("Unordered file kept insertion order", "role", role)
			}
		}
		log.Info("✅ Verified output files", "files", len(report.Files))
	}

	if opts.Run.LoadDB {
		log.Info("Loading dataset into database...")
		if err := opts.Loader.Load(ctx, ds, res.Manifest); err != nil {
			return nil, fmt.Errorf("failed to load dataset: %w", err)
		}
	}

	if opts.Run.Upload {
		paths := make([]string, 0, len(res.Files)+1)
		for _, spec := range res.Files {
			paths = append(paths, spec.Path)
		}
		if res.ManifestPath != "" {
			paths = append(paths, res.ManifestPath)
		}
		log.Info("Uploading output files...", "files", len(paths))
		if err := opts.Publisher.Publish(ctx, paths); err != nil {
			return nil, fmt.Errorf("failed to publish output: %w", err)
		}
	}

	log.Info("All Done!")
	return res, nil
}

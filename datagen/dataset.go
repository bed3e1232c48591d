package datagen

import (
	"fmt"
	"log/slog"
)

// Dataset is the in-memory result of key, relation and record generation.
// Records are in insertion order: PrimaryRecords[i] carries primary key i and
// SecondaryRecords[i] references it.
type Dataset struct {
	Config           Config
	Primary          KeyRange
	Secondary        KeyRange
	Relations        []Relation
	PrimaryRecords   []Record
	SecondaryRecords []Record
}

// Generate builds keys, relations and records for cfg, drawing all randomness
// from rnd.
func Generate(cfg Config, rnd Source, logger *slog.Logger) (*Dataset, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}

	logger.Info("Generating keys...", "size", cfg.Size)
	primary, secondary := GenerateKeys(cfg.Size)

	logger.Info("Generating relations...")
	relations, err := GenerateRelations(primary, secondary, rnd)
	if err != nil {
		return nil, fmt.Errorf("failed to generate relations: %w", err)
	}

	logger.Info("Generating primary records...", "record_size", cfg.RecordSize)
	primaryRecords := make([]Record, 0, primary.Len())
	for k := primary.Start; k < primary.End; k++ {
		rec, err := FormatPrimary(k, cfg, rnd)
		if err != nil {
			return nil, fmt.Errorf("failed to format primary record %d: %w", k, err)
		}
		primaryRecords = append(primaryRecords, rec)
	}

	logger.Info("Generating secondary records...", "record_size", cfg.RecordSize)
	secondaryRecords := make([]Record, 0, len(relations))
	for _, rel := range relations {
		rec, err := FormatSecondary(rel, cfg, rnd)
		if err != nil {
			return nil, fmt.Errorf("failed to format secondary record %d: %w", rel.Secondary, err)
		}
		secondaryRecords = append(secondaryRecords, rec)
	}

	return &Dataset{
		Config:           cfg,
		Primary:          primary,
		Secondary:        secondary,
		Relations:        relations,
		PrimaryRecords:   primaryRecords,
		SecondaryRecords: secondaryRecords,
	}, nil
}

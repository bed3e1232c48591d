package dbload

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/go-relgen/datagen"
	"github.com/yourusername/go-relgen/db/schemas/relational/models"
	"github.com/yourusername/go-relgen/output"
)

type Loader struct {
	db        *gorm.DB
	batchSize int
	log       *slog.Logger
}

func NewLoader(db *gorm.DB, batchSize int, log *slog.Logger) *Loader {
	if batchSize <= 0 {
		batchSize = 500
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Loader{db: db, batchSize: batchSize, log: log}
}

// Load inserts primary rows, then secondary rows referencing them, then the
// run record, all in one transaction.
func (l *Loader) Load(ctx context.Context, ds *datagen.Dataset, manifest *output.Manifest) error {
	delim := ds.Config.FieldDelimiter
	primary, err := PrimaryRows(ds.PrimaryRecords, delim)
	if err != nil {
		return err
	}
	secondary, err := SecondaryRows(ds.SecondaryRecords, delim)
	if err != nil {
		return err
	}
	run, err := RunRow(manifest)
	if err != nil {
		return err
	}

	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).CreateInBatches(&primary, l.batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert primary records: %w", err)
		}
		l.log.Info("✅ Inserted primary records", "table", models.PrimaryRecord{}.TableName(), "rows", len(primary))

		if err := tx.Omit(clause.Associations).CreateInBatches(&secondary, l.batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert secondary records: %w", err)
		}
		l.log.Info("✅ Inserted secondary records", "table", models.SecondaryRecord{}.TableName(), "rows", len(secondary))

		if err := tx.Create(&run).Error; err != nil {
			return fmt.Errorf("failed to insert dataset run: %w", err)
		}
		return nil
	})
}

func PrimaryRows(records []datagen.Record, delim string) ([]models.PrimaryRecord, error) {
	rows := make([]models.PrimaryRecord, 0, len(records))
	for _, rec := range records {
		keys, err := datagen.ParseKeys(string(rec), delim, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to parse primary record: %w", err)
		}
		rows = append(rows, models.PrimaryRecord{ID: int64(keys[0]), Record: string(rec)})
	}
	return rows, nil
}

func SecondaryRows(records []datagen.Record, delim string) ([]models.SecondaryRecord, error) {
	rows := make([]models.SecondaryRecord, 0, len(records))
	for _, rec := range records {
		keys, err := datagen.ParseKeys(string(rec), delim, 2)
		if err != nil {
			return nil, fmt.Errorf("failed to parse secondary record: %w", err)
		}
		rows = append(rows, models.SecondaryRecord{
			ID:        int64(keys[0]),
			PrimaryID: int64(keys[1]),
			Record:    string(rec),
		})
	}
	return rows, nil
}

func RunRow(m *output.Manifest) (models.DatasetRun, error) {
	id, err := uuid.Parse(m.RunID)
	if err != nil {
		return models.DatasetRun{}, fmt.Errorf("invalid run id %q: %w", m.RunID, err)
	}
	data, err := m.JSON()
	if err != nil {
		return models.DatasetRun{}, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return models.DatasetRun{
		ID:         id,
		Seed:       m.Seed,
		Size:       m.Size,
		RecordSize: m.RecordSize,
		Manifest:   datatypes.JSON(data),
		CreatedAt:  m.CreatedAt,
	}, nil
}

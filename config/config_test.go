package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/go-relgen/db/schemas/relational/models"
	"github.com/yourusername/go-relgen/logging"
)

func TestLoadRunConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := LoadRunConfig()
	assert.Equal(t, DefaultRunConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadRunConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("RELGEN_OUTPUT_DIR", dir)
	t.Setenv("RELGEN_SEED", "42")
	t.Setenv("RELGEN_COMPRESSION", "LZ4")
	t.Setenv("RELGEN_VERIFY", "off")
	t.Setenv("RELGEN_MANIFEST", "yes")
	t.Setenv("RELGEN_DB_BATCH_SIZE", "not-a-number")

	cfg := LoadRunConfig()
	assert.Equal(t, dir, cfg.OutputDir)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, int64(42), cfg.EffectiveSeed())
	assert.Equal(t, "lz4", cfg.Compression)
	assert.False(t, cfg.Verify)
	assert.True(t, cfg.Manifest)
	assert.Equal(t, 500, cfg.DBBatchSize)
	require.NoError(t, cfg.Validate())
}

func TestRunConfigValidate(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.OutputDir = t.TempDir()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Compression = "gzip"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.OutputDir = ""
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.OutputDir = cfg.OutputDir + "/missing"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.LoadDB = true
	bad.DBBatchSize = 0
	assert.Error(t, bad.Validate())
}

func TestEffectiveSeedFallsBackToTime(t *testing.T) {
	cfg := DefaultRunConfig()
	assert.NotZero(t, cfg.EffectiveSeed())
}

func TestDBConfigDSN(t *testing.T) {
	cfg := DBConfig{Host: "localhost", Port: "5432", User: "bench", Password: "secret", DBName: "fixtures"}
	assert.Equal(t, "host=localhost port=5432 user=bench password=secret dbname=fixtures sslmode=disable", cfg.DSN(cfg.DBName))
	require.NoError(t, cfg.Validate())
	assert.Error(t, DBConfig{}.Validate())
}

func TestObjectStoreConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("S3_ENDPOINT", "localhost:9000")
	t.Setenv("S3_BUCKET", "fixtures")
	t.Setenv("S3_SECURE", "false")

	cfg := LoadObjectStoreConfig()
	assert.False(t, cfg.Secure)
	require.NoError(t, cfg.Validate())
	assert.Error(t, ObjectStoreConfig{Endpoint: "x"}.Validate())
}

// TestPrepareSchemaIntegration requires a Postgres reachable through DB_* variables.
func TestPrepareSchemaIntegration(t *testing.T) {
	dbCfg := LoadDBConfig()
	if err := dbCfg.Validate(); err != nil {
		t.Skipf("Postgres not configured: %v", err)
	}
	db, err := ConnectDB(dbCfg)
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	log := logging.Discard()

	require.NoError(t, PrepareSchema(db, false, log))
	require.NoError(t, db.Exec("CREATE TABLE IF NOT EXISTS relgen_stray (id int)").Error)
	require.NoError(t, db.Create(&models.PrimaryRecord{ID: 1, Record: "1|AB"}).Error)

	require.NoError(t, PrepareSchema(db, true, log))
	assert.False(t, db.Migrator().HasTable("relgen_stray"))
	assert.True(t, db.Migrator().HasTable(&models.SecondaryRecord{}))

	var count int64
	require.NoError(t, db.Model(&models.PrimaryRecord{}).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, ResetSessionConfig(db, log))
}

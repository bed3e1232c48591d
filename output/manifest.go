package output

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/go-relgen/datagen"
)

// Manifest describes one generator run and the files it produced.
type Manifest struct {
	RunID       string         `yaml:"run_id" json:"run_id"`
	Seed        int64          `yaml:"seed" json:"seed"`
	CreatedAt   time.Time      `yaml:"created_at" json:"created_at"`
	Prefix      string         `yaml:"prefix" json:"prefix"`
	Extension   string         `yaml:"extension" json:"extension"`
	Delimiter   string         `yaml:"delimiter" json:"delimiter"`
	RecordSize  int            `yaml:"record_size" json:"record_size"`
	Size        int            `yaml:"size" json:"size"`
	Compression Codec          `yaml:"compression" json:"compression"`
	Files       []ManifestFile `yaml:"files" json:"files"`
}

type ManifestFile struct {
	Name    string `yaml:"name" json:"name"`
	Role    Role   `yaml:"role" json:"role"`
	Ordered bool   `yaml:"ordered" json:"ordered"`
	Records int    `yaml:"records" json:"records"`
	Bytes   int64  `yaml:"bytes" json:"bytes"`
	BLAKE2b string `yaml:"blake2b" json:"blake2b"`
}

func NewManifest(runID uuid.UUID, seed int64, cfg datagen.Config, codec Codec) *Manifest {
	return &Manifest{
		RunID:       runID.String(),
		Seed:        seed,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		Prefix:      cfg.OutputPrefix,
		Extension:   cfg.OutputExt,
		Delimiter:   cfg.FieldDelimiter,
		RecordSize:  cfg.RecordSize,
		Size:        cfg.Size,
		Compression: codec,
	}
}

// AddFile records size and checksum of a written file.
func (m *Manifest) AddFile(spec FileSpec, records int) error {
	info, err := os.Stat(spec.Path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", spec.Path, err)
	}
	sum, err := Checksum(spec.Path)
	if err != nil {
		return err
	}
	m.Files = append(m.Files, ManifestFile{
		Name:    filepath.Base(spec.Path),
		Role:    spec.Role,
		Ordered: spec.Ordered,
		Records: records,
		Bytes:   info.Size(),
		BLAKE2b: sum,
	})
	return nil
}

func (m *Manifest) FileName() string {
	return m.Prefix + "_manifest.yaml"
}

// Write stores the manifest as YAML in dir and returns its path.
func (m *Manifest) Write(dir string) (string, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}
	path := filepath.Join(dir, m.FileName())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return path, nil
}

func (m *Manifest) JSON() ([]byte, error) {
	return json.Marshal(m)
}

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// Checksum returns the hex BLAKE2b-256 digest of a file's bytes on disk.
func Checksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

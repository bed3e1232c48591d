package verify

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/go-relgen/datagen"
	"github.com/yourusername/go-relgen/output"
)

func testConfig() datagen.Config {
	cfg := datagen.DefaultConfig()
	cfg.Size = 300
	cfg.RecordSize = 48
	return cfg
}

func writeFixture(t *testing.T, cfg datagen.Config, codec output.Codec) []output.FileSpec {
	t.Helper()
	rnd := datagen.NewSource(21)
	ds, err := datagen.Generate(cfg, rnd, nil)
	require.NoError(t, err)

	specs := output.Plan(t.TempDir(), cfg, codec)
	write := func(role output.Role, ordered bool, records []datagen.Record) {
		spec, ok := output.Find(specs, role, ordered)
		require.True(t, ok)
		require.NoError(t, output.WriteRecords(spec.Path, records, codec))
	}
	write(output.RolePrimary, true, ds.PrimaryRecords)
	write(output.RoleSecondary, true, ds.SecondaryRecords)
	datagen.Shuffle(ds.PrimaryRecords, rnd)
	write(output.RolePrimary, false, ds.PrimaryRecords)
	datagen.Shuffle(ds.SecondaryRecords, rnd)
	write(output.RoleSecondary, false, ds.SecondaryRecords)
	return specs
}

func rewrite(t *testing.T, spec output.FileSpec, edit func(lines []string) []string) {
	t.Helper()
	lines, err := output.ReadLines(spec.Path, output.CodecNone)
	require.NoError(t, err)
	lines = edit(lines)
	require.NoError(t, os.WriteFile(spec.Path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

func TestFilesAcceptsGeneratedFixture(t *testing.T) {
	for _, codec := range []output.Codec{output.CodecNone, output.CodecLZ4, output.CodecZstd} {
		t.Run(string(codec), func(t *testing.T) {
			cfg := testConfig()
			report, err := Files(writeFixture(t, cfg, codec), cfg, codec)
			require.NoError(t, err)
			require.Len(t, report.Files, 4)
			for _, f := range report.Files {
				assert.Equal(t, cfg.Size, f.Records)
			}
			assert.Equal(t, report.Files[0].Fingerprint, report.Files[1].Fingerprint)
			assert.Equal(t, report.Files[2].Fingerprint, report.Files[3].Fingerprint)
			assert.False(t, report.SameOrder[output.RolePrimary])
			assert.False(t, report.SameOrder[output.RoleSecondary])
		})
	}
}

func TestFilesRejectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		role    output.Role
		ordered bool
		edit    func(lines []string) []string
		msg     string
	}{
		{
			name: "short record", role: output.RolePrimary, ordered: true,
			edit: func(l []string) []string { l[3] = l[3][:10]; return l },
			msg:  "record length",
		},
		{
			name: "missing record", role: output.RoleSecondary, ordered: false,
			edit: func(l []string) []string { return l[1:] },
			msg:  "covers 299 keys",
		},
		{
			name: "swapped order", role: output.RolePrimary, ordered: true,
			edit: func(l []string) []string { l[4], l[5] = l[5], l[4]; return l },
			msg:  "ascending order",
		},
		{
			name: "duplicate", role: output.RolePrimary, ordered: false,
			edit: func(l []string) []string { l[1] = l[0]; return l },
			msg:  "appears twice",
		},
		{
			name: "changed padding", role: output.RolePrimary, ordered: false,
			edit: func(l []string) []string { l[0] = l[0][:len(l[0])-1] + flip(l[0][len(l[0])-1]); return l },
			msg:  "different records",
		},
		{
			name: "bad padding", role: output.RoleSecondary, ordered: true,
			edit: func(l []string) []string { l[0] = l[0][:len(l[0])-1] + "a"; return l },
			msg:  "invalid padding",
		},
		{
			name: "padded key", role: output.RolePrimary, ordered: true,
			edit: func(l []string) []string { l[1] = "01|" + l[1][3:]; return l },
			msg:  "canonical",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			specs := writeFixture(t, cfg, output.CodecNone)
			spec, ok := output.Find(specs, tt.role, tt.ordered)
			require.True(t, ok)
			rewrite(t, spec, tt.edit)

			_, err := Files(specs, cfg, output.CodecNone)
			require.ErrorIs(t, err, ErrVerification)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestFilesSingleRecord(t *testing.T) {
	cfg := testConfig()
	cfg.Size = 1
	report, err := Files(writeFixture(t, cfg, output.CodecNone), cfg, output.CodecNone)
	require.NoError(t, err)
	assert.True(t, report.SameOrder[output.RolePrimary])
}

func TestFilesMissingFile(t *testing.T) {
	cfg := testConfig()
	specs := writeFixture(t, cfg, output.CodecNone)
	require.NoError(t, os.Remove(specs[3].Path))
	_, err := Files(specs, cfg, output.CodecNone)
	assert.Error(t, err)
}

func flip(b byte) string {
	if b == 'A' {
		return "B"
	}
	return "A"
}

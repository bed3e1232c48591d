package go_benchmark_tests

import (
	"context"
	"testing"

	"github.com/yourusername/go-relgen/benchmark"
	"github.com/yourusername/go-relgen/config"
	"github.com/yourusername/go-relgen/datagen"
	"github.com/yourusername/go-relgen/output"
	"github.com/yourusername/go-relgen/pipeline"
)

func fixture(b *testing.B, codec output.Codec) []output.FileSpec {
	b.Helper()
	run := config.DefaultRunConfig()
	run.OutputDir = b.TempDir()
	run.Compression = string(codec)
	run.Verify = false

	res, err := pipeline.Run(context.Background(), pipeline.Options{
		Dataset: datagen.DefaultConfig(),
		Run:     run,
		Seed:    1,
	})
	if err != nil {
		b.Fatalf("failed to generate fixture: %v", err)
	}
	return res.Files
}

func loadPair(b *testing.B, specs []output.FileSpec, codec output.Codec, ordered bool) ([]benchmark.KeyedRecord, []benchmark.KeyedRecord) {
	b.Helper()
	p, _ := output.Find(specs, output.RolePrimary, ordered)
	s, _ := output.Find(specs, output.RoleSecondary, ordered)
	primary, err := benchmark.LoadRecords(p.Path, codec, datagen.DefaultFieldDelimiter, 0)
	if err != nil {
		b.Fatalf("failed to load primary records: %v", err)
	}
	secondary, err := benchmark.LoadRecords(s.Path, codec, datagen.DefaultFieldDelimiter, 1)
	if err != nil {
		b.Fatalf("failed to load secondary records: %v", err)
	}
	return primary, secondary
}

func BenchmarkMergeJoinOrdered(b *testing.B) {
	specs := fixture(b, output.CodecNone)
	primary, secondary := loadPair(b, specs, output.CodecNone, true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := benchmark.MergeJoin(primary, secondary, nil); err != nil {
			b.Fatalf("join failed: %v", err)
		}
	}
}

func BenchmarkSortMergeJoinUnordered(b *testing.B) {
	specs := fixture(b, output.CodecNone)
	primary, secondary := loadPair(b, specs, output.CodecNone, false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		p := append([]benchmark.KeyedRecord(nil), primary...)
		s := append([]benchmark.KeyedRecord(nil), secondary...)
		b.StartTimer()

		benchmark.SortByKey(p)
		benchmark.SortByKey(s)
		if _, err := benchmark.MergeJoin(p, s, nil); err != nil {
			b.Fatalf("join failed: %v", err)
		}
	}
}

func BenchmarkLoadRecords(b *testing.B) {
	for _, codec := range []output.Codec{output.CodecNone, output.CodecLZ4, output.CodecZstd} {
		b.Run(string(codec), func(b *testing.B) {
			specs := fixture(b, codec)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				loadPair(b, specs, codec, true)
			}
		})
	}
}

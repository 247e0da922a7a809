package bench

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"toolbench/internal/eval"
)

func writeBenchCorpus(b *testing.B, name string, size int, format func(i int) string, open, sep, close string) string {
	b.Helper()
	parts := make([]string, size)
	for i := range parts {
		parts[i] = format(i)
	}
	path := filepath.Join(b.TempDir(), name)
	if err := os.WriteFile(path, []byte(open+strings.Join(parts, sep)+close), 0o644); err != nil {
		b.Fatalf("write corpus: %v", err)
	}
	return path
}

// BenchmarkLoadCasesJSON_1000 measures loading a large JSON corpus.
func BenchmarkLoadCasesJSON_1000(b *testing.B) {
	path := writeBenchCorpus(b, "cases.json", 1000, func(i int) string {
		return fmt.Sprintf(`{"query":"find item %d","expectedTool":"item_lookup"}`, i)
	}, "[", ",", "]")
	benchmarkLoad(b, path)
}

// BenchmarkLoadCasesYAML_1000 measures loading a large YAML corpus.
func BenchmarkLoadCasesYAML_1000(b *testing.B) {
	path := writeBenchCorpus(b, "cases.yaml", 1000, func(i int) string {
		return fmt.Sprintf("- query: find perk %d\n  expectedTool: perk_lookup", i)
	}, "", "\n", "\n")
	benchmarkLoad(b, path)
}

func benchmarkLoad(b *testing.B, path string) {
	b.Helper()
	registry, err := eval.DefaultSchemaRegistry()
	if err != nil {
		b.Fatalf("registry: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cases, err := LoadCases(path, registry)
		if err != nil {
			b.Fatalf("load: %v", err)
		}
		if len(cases) != 1000 {
			b.Fatalf("expected 1000 cases, got %d", len(cases))
		}
	}
}

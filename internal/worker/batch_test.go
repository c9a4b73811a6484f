package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/gapdash/internal/chart"
	"github.com/ppiankov/gapdash/internal/render"
	"github.com/ppiankov/gapdash/internal/view"
)

// mockSource implements SpecSource
type mockSource struct {
	failOutput string
	calls      int32
}

func (m *mockSource) Render(sel view.Selection, output string) (*chart.Spec, error) {
	atomic.AddInt32(&m.calls, 1)
	time.Sleep(5 * time.Millisecond) // Simulate work
	if output == m.failOutput {
		return nil, errors.New("render error")
	}
	return &chart.Spec{
		Kind:   chart.KindPie,
		Title:  output,
		Series: []chart.Series{{Points: []chart.Point{{Label: "Europe", Value: 1}, {Label: "Asia", Value: 3}}}},
	}, nil
}

func TestBatchRenderer_RenderAll(t *testing.T) {
	dir := t.TempDir()
	source := &mockSource{}
	renderer := NewBatchRenderer(source, render.DefaultOptions(), 2)

	outputs := []string{"a", "b", "c"}
	formats := []string{render.FormatJSON, render.FormatSVG}
	results := renderer.RenderAll(context.Background(), view.Selection{}, outputs, formats, dir)

	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	if atomic.LoadInt32(&source.calls) != 6 {
		t.Errorf("expected 6 renders, got %d", source.calls)
	}

	for i, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s.%s: %v", res.Output, res.Format, res.Error)
			continue
		}
		if res.Index != i {
			t.Errorf("expected result %d in position %d", res.Index, i)
		}
		want := filepath.Join(dir, outputs[i/2]+"."+formats[i%2])
		if res.Path != want {
			t.Errorf("expected path %s, got %s", want, res.Path)
		}
		info, err := os.Stat(res.Path)
		if err != nil {
			t.Errorf("expected file %s: %v", res.Path, err)
			continue
		}
		if info.Size() != int64(res.Bytes) || res.Bytes == 0 {
			t.Errorf("expected %d bytes on disk, got %d", res.Bytes, info.Size())
		}
	}
}

func TestBatchRenderer_RenderAll_Error(t *testing.T) {
	source := &mockSource{failOutput: "b"}
	renderer := NewBatchRenderer(source, render.DefaultOptions(), 2)

	results := renderer.RenderAll(context.Background(), view.Selection{}, []string{"a", "b"}, []string{render.FormatJSON}, t.TempDir())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].GetError() != nil {
		t.Errorf("unexpected error for a: %v", results[0].GetError())
	}
	if results[1].GetError() == nil {
		t.Error("expected error for b, got nil")
	}
}

func TestBatchRenderer_RenderAll_BadFormat(t *testing.T) {
	renderer := NewBatchRenderer(&mockSource{}, render.DefaultOptions(), 1)

	results := renderer.RenderAll(context.Background(), view.Selection{}, []string{"a"}, []string{"gif"}, t.TempDir())
	if len(results) != 1 || !errors.Is(results[0].Error, render.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format error, got %+v", results)
	}
}

func TestBatchRenderer_RenderAll_Empty(t *testing.T) {
	renderer := NewBatchRenderer(&mockSource{}, render.DefaultOptions(), 2)

	results := renderer.RenderAll(context.Background(), view.Selection{}, nil, []string{"svg"}, t.TempDir())
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchRenderer_RenderAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	renderer := NewBatchRenderer(&mockSource{}, render.DefaultOptions(), 2)
	results := renderer.RenderAll(ctx, view.Selection{}, []string{"a", "b"}, []string{"json"}, t.TempDir())
	if len(results) != 2 {
		t.Fatalf("expected a result per job, got %d", len(results))
	}
	for _, res := range results {
		if res.Error == nil {
			t.Errorf("expected error for %s after cancel", res.Output)
		}
	}
}

func TestRenderResult_GetError(t *testing.T) {
	r1 := &RenderResult{Output: "a"}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("render failed")
	r2 := &RenderResult{Output: "a", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "queries.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadQueriesFromFile(t *testing.T) {
	path := writeTemp(t, `year-selector=2007
# comment
?dropdown-selection=Canada&dropdown-selection=Korea%2C+Rep.

year-selector=2007
`)

	queries, err := ReadQueriesFromFile(path)
	if err != nil {
		t.Fatalf("ReadQueriesFromFile failed: %v", err)
	}
	if len(queries) != 2 {
		t.Fatalf("expected 2 queries after deduplication, got %d", len(queries))
	}
	if queries[0].Get("year-selector") != "2007" {
		t.Errorf("expected year 2007, got %q", queries[0].Get("year-selector"))
	}
	countries := queries[1]["dropdown-selection"]
	if len(countries) != 2 || countries[1] != "Korea, Rep." {
		t.Errorf("unexpected countries %v", countries)
	}
}

func TestReadQueriesFromFile_BadLine(t *testing.T) {
	path := writeTemp(t, "year-selector=2007\nbad=%zz\n")
	if _, err := ReadQueriesFromFile(path); err == nil {
		t.Error("expected error for malformed query")
	}
}

func TestReadQueriesFromFile_NonExistent(t *testing.T) {
	_, err := ReadQueriesFromFile("non_existent_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

package worker

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/gapdash/internal/chart"
	"github.com/ppiankov/gapdash/internal/render"
	"github.com/ppiankov/gapdash/internal/view"
)

// SpecSource computes the chart spec of one output for a selection
type SpecSource interface {
	Render(sel view.Selection, output string) (*chart.Spec, error)
}

// RenderJob renders one output in one format to a file
type RenderJob struct {
	Index     int
	Output    string
	Format    string
	Path      string
	Selection view.Selection
	Source    SpecSource
	Options   render.Options
}

// Execute executes the render job
func (j *RenderJob) Execute(ctx context.Context) Result {
	res := &RenderResult{Index: j.Index, Output: j.Output, Format: j.Format, Path: j.Path}
	if err := ctx.Err(); err != nil {
		res.Error = err
		return res
	}

	spec, err := j.Source.Render(j.Selection, j.Output)
	if err != nil {
		res.Error = fmt.Errorf("render %s: %w", j.Output, err)
		return res
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, spec, j.Format, j.Options); err != nil {
		res.Error = fmt.Errorf("encode %s as %s: %w", j.Output, j.Format, err)
		return res
	}
	if err := os.MkdirAll(filepath.Dir(j.Path), 0755); err != nil {
		res.Error = fmt.Errorf("create output dir: %w", err)
		return res
	}
	if err := os.WriteFile(j.Path, buf.Bytes(), 0644); err != nil {
		res.Error = fmt.Errorf("write %s: %w", j.Path, err)
		return res
	}
	res.Bytes = buf.Len()
	return res
}

// RenderResult represents the result of a render job
type RenderResult struct {
	Index  int
	Output string
	Format string
	Path   string
	Bytes  int
	Error  error
}

// GetError returns the error from the render result
func (r *RenderResult) GetError() error {
	return r.Error
}

// BatchRenderer renders many output/format pairs concurrently
type BatchRenderer struct {
	source      SpecSource
	options     render.Options
	concurrency int
}

// NewBatchRenderer creates a new batch renderer
func NewBatchRenderer(source SpecSource, options render.Options, concurrency int) *BatchRenderer {
	return &BatchRenderer{
		source:      source,
		options:     options,
		concurrency: concurrency,
	}
}

// RenderAll writes every output in every format under dir as <output>.<format>.
// Results come back in output-major order regardless of completion order.
func (b *BatchRenderer) RenderAll(ctx context.Context, sel view.Selection, outputs, formats []string, dir string) []*RenderResult {
	if len(outputs) == 0 || len(formats) == 0 {
		return []*RenderResult{}
	}

	var jobs []*RenderJob
	for _, output := range outputs {
		for _, format := range formats {
			jobs = append(jobs, &RenderJob{
				Index:     len(jobs),
				Output:    output,
				Format:    format,
				Path:      filepath.Join(dir, output+"."+format),
				Selection: sel.Clone(),
				Source:    b.source,
				Options:   b.options,
			})
		}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		for _, job := range jobs {
			if !pool.Submit(job) {
				break
			}
		}
		pool.Close()
	}()

	results := make([]*RenderResult, 0, len(jobs))
	done := make([]bool, len(jobs))
	for r := range pool.Results() {
		res := r.(*RenderResult)
		done[res.Index] = true
		results = append(results, res)
	}

	// jobs dropped by cancellation still get a result
	for i, job := range jobs {
		if done[i] {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		results = append(results, &RenderResult{Index: job.Index, Output: job.Output, Format: job.Format, Path: job.Path, Error: err})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}

// ReadQueriesFromFile reads one selection per line, written as a URL query
// (e.g. "year-selector=2007&dropdown-selection=Canada"). Blank lines and
// # comments are skipped; duplicate lines are read once.
func ReadQueriesFromFile(filePath string) ([]url.Values, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var queries []url.Values
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true

		q, err := url.ParseQuery(strings.TrimPrefix(line, "?"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		queries = append(queries, q)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return queries, nil
}

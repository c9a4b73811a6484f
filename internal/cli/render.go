package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/gapdash/internal/app"
	"github.com/ppiankov/gapdash/internal/render"
	"github.com/ppiankov/gapdash/internal/view"
	"github.com/ppiankov/gapdash/internal/worker"
)

var (
	renderFormats   []string
	renderOutDir    string
	renderWorkers   int
	renderTimeout   time.Duration
	renderBatchFile string
	renderCountries []string
	renderMetric    string
	renderX         string
	renderY         string
	renderSize      string
	renderYear      int
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render <graph...|all>",
	Short: "Render charts to files without starting a server",
	Long: `Render one or more dashboard graphs for a selection and write them to disk.

Graphs: graph-content, bubble-graph, top15-graph, continent-pop-graph, or "all".
Formats: svg, png, xlsx, json. Unset selectors keep their dashboard defaults.

With --batch, each line of the file is a selection written as a URL query
(e.g. "year-selector=2007&dropdown-selection=Canada"); output for line N goes
to <out-dir>/NNN/.

Example:
  gapdash render all
  gapdash render top15-graph --year 2007 --format svg,png
  gapdash render graph-content --country Canada --country "Korea, Rep." --metric lifeExp
  gapdash render all --batch selections.txt --workers 8`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	f := renderCmd.Flags()
	f.StringSliceVar(&renderFormats, "format", []string{render.FormatSVG}, "output formats ("+strings.Join(render.Formats(), ", ")+")")
	f.StringVar(&renderOutDir, "out-dir", "./gapdash-charts", "output directory")
	f.IntVar(&renderWorkers, "workers", 0, "concurrent render workers (default: render.workers from config)")
	f.DurationVar(&renderTimeout, "timeout", 5*time.Minute, "total timeout for rendering")
	f.StringVar(&renderBatchFile, "batch", "", "file with one selection query per line")

	// country names may contain commas, so each --country is one value
	f.StringArrayVar(&renderCountries, "country", nil, "country for the line chart (repeatable)")
	f.StringVar(&renderMetric, "metric", "", "line chart metric")
	f.StringVar(&renderX, "x", "", "bubble chart X metric")
	f.StringVar(&renderY, "y", "", "bubble chart Y metric")
	f.StringVar(&renderSize, "size", "", "bubble size metric")
	f.IntVar(&renderYear, "year", 0, "year for the bubble, top-15 and continent charts")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
	defer cancel()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}

	outputs, err := resolveOutputs(a, args)
	if err != nil {
		return err
	}
	formats, err := resolveFormats(renderFormats)
	if err != nil {
		return err
	}

	base := selectionFromFlags(cmd, a.Layout.Defaults())
	selections := []view.Selection{base}
	dirs := []string{renderOutDir}
	if renderBatchFile != "" {
		queries, err := worker.ReadQueriesFromFile(renderBatchFile)
		if err != nil {
			return fmt.Errorf("read batch file: %w", err)
		}
		selections, dirs = selections[:0], dirs[:0]
		for i, q := range queries {
			selections = append(selections, base.Merge(q))
			dirs = append(dirs, filepath.Join(renderOutDir, fmt.Sprintf("%03d", i+1)))
		}
	}

	workers := renderWorkers
	if workers <= 0 {
		workers = cfg.Render.Workers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Graphs:       %v\n", outputs)
	fmt.Fprintf(os.Stderr, "  Formats:      %v\n", formats)
	fmt.Fprintf(os.Stderr, "  Selections:   %d\n", len(selections))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", renderOutDir)
	fmt.Fprintf(os.Stderr, "\n")

	renderer := worker.NewBatchRenderer(a.Table, a.RenderOptions(), workers)

	start := time.Now()
	total, failed := 0, 0
	for i, sel := range selections {
		for _, res := range renderer.RenderAll(ctx, sel, outputs, formats, dirs[i]) {
			total++
			if res.Error != nil {
				failed++
				fmt.Fprintf(os.Stderr, "✗ %s.%s: %v\n", res.Output, res.Format, res.Error)
				continue
			}
			fmt.Fprintf(os.Stderr, "✓ %s (%d bytes)\n", res.Path, res.Bytes)
		}
	}

	fmt.Fprintf(os.Stderr, "\nRendered %d/%d files in %v\n", total-failed, total, time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		return fmt.Errorf("%d of %d renders failed", failed, total)
	}
	return nil
}

// resolveOutputs expands "all", rejects unknown graph ids and drops repeats
func resolveOutputs(a *app.App, args []string) ([]string, error) {
	known := a.Table.Outputs()
	if len(args) == 1 && args[0] == "all" {
		return known, nil
	}
	var outputs []string
	for _, arg := range args {
		if !contains(known, arg) {
			return nil, fmt.Errorf("unknown graph %q (want one of %v or all)", arg, known)
		}
		if !contains(outputs, arg) {
			outputs = append(outputs, arg)
		}
	}
	return outputs, nil
}

// resolveFormats lowercases formats, checks them against render.Formats and
// drops repeats, so every output path is written by one job
func resolveFormats(values []string) ([]string, error) {
	supported := render.Formats()
	var formats []string
	for _, v := range values {
		f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(v), "."))
		if !contains(supported, f) {
			return nil, fmt.Errorf("unsupported format %q (want %s)", v, strings.Join(supported, ", "))
		}
		if !contains(formats, f) {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no format given (want %s)", strings.Join(supported, ", "))
	}
	return formats, nil
}

// selectionFromFlags overrides the defaults with the selector flags that were set
func selectionFromFlags(cmd *cobra.Command, sel view.Selection) view.Selection {
	sel = sel.Clone()
	flags := cmd.Flags()
	if flags.Changed("country") {
		sel.Set(view.InputCountries, renderCountries...)
	}
	if flags.Changed("metric") {
		sel.Set(view.InputMetric, renderMetric)
	}
	if flags.Changed("x") {
		sel.Set(view.InputScatterX, renderX)
	}
	if flags.Changed("y") {
		sel.Set(view.InputScatterY, renderY)
	}
	if flags.Changed("size") {
		sel.Set(view.InputSize, renderSize)
	}
	if flags.Changed("year") {
		sel.Set(view.InputYear, strconv.Itoa(renderYear))
	}
	return sel
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

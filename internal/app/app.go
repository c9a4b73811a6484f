package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/gapdash/internal/chart"
	"github.com/ppiankov/gapdash/internal/dataset"
	"github.com/ppiankov/gapdash/internal/dispatch"
	"github.com/ppiankov/gapdash/internal/model"
	"github.com/ppiankov/gapdash/internal/pipeline"
	"github.com/ppiankov/gapdash/internal/render"
	"github.com/ppiankov/gapdash/internal/view"
)

// App is the loaded dashboard: dataset, derived options, view model and
// dispatch table. Everything in it is read-only once New returns.
type App struct {
	Config  *model.Config
	Info    *model.DatasetInfo
	Dataset *dataset.Dataset
	Options dataset.Options
	Builder *chart.Builder
	Layout  *view.Layout
	Table   *dispatch.Table
	Log     logrus.FieldLogger
}

// New loads the dataset and builds the dashboard around it
func New(ctx context.Context, cfg *model.Config, log logrus.FieldLogger) (*App, error) {
	ds, info, err := pipeline.NewLoader(cfg, log).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return FromDataset(cfg, ds, info, log)
}

// FromDataset builds the dashboard around an already loaded dataset
func FromDataset(cfg *model.Config, ds *dataset.Dataset, info *model.DatasetInfo, log logrus.FieldLogger) (*App, error) {
	labels, err := chart.LabelsFor(cfg.UI.Locale)
	if err != nil {
		return nil, err
	}

	opts := dataset.DeriveOptions(ds)
	builder := chart.NewBuilder(ds, labels)
	layout := view.Build(opts, labels, cfg.UI.Title)

	table, err := dispatch.NewTable(layout, dispatch.DefaultBindings(builder)...)
	if err != nil {
		return nil, fmt.Errorf("build dispatch table: %w", err)
	}

	log.WithFields(logrus.Fields{
		"countries": len(opts.Countries),
		"years":     len(opts.Years),
		"metrics":   len(opts.NumericColumns),
		"locale":    labels.Locale,
	}).Debug("dashboard ready")

	return &App{
		Config:  cfg,
		Info:    info,
		Dataset: ds,
		Options: opts,
		Builder: builder,
		Layout:  layout,
		Table:   table,
		Log:     log,
	}, nil
}

// RenderOptions returns the configured image size
func (a *App) RenderOptions() render.Options {
	return render.OptionsFromInches(a.Config.Render.WidthInches, a.Config.Render.HeightInches)
}

// Page computes every chart for sel. Per-chart failures are reported in
// Page.Errors so one bad input does not blank the whole page.
func (a *App) Page(sel view.Selection) view.Page {
	page := view.Page{
		Layout:    a.Layout,
		Selection: sel,
		Charts:    make(map[string]*chart.Spec),
		Errors:    make(map[string]string),
	}
	for _, output := range a.Table.Outputs() {
		spec, err := a.Table.Render(sel, output)
		if err != nil {
			page.Errors[output] = err.Error()
			continue
		}
		page.Charts[output] = spec
	}
	return page
}

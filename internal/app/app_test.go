package app

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/gapdash/internal/model"
	"github.com/ppiankov/gapdash/internal/view"
)

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Dataset.URL = ""
	cfg.Dataset.Path = "../dataset/testdata/gapminder_sample.csv"
	return cfg
}

func TestNew(t *testing.T) {
	logger, _ := test.NewNullLogger()
	a, err := New(context.Background(), testConfig(), logger)
	require.NoError(t, err)

	assert.Equal(t, 11, a.Dataset.Len())
	assert.Equal(t, 11, a.Info.Rows)
	assert.Equal(t, "Title of Dash App", a.Layout.Title)
	assert.Equal(t, []string{view.OutputLine, view.OutputBubble, view.OutputTop, view.OutputContinent}, a.Table.Outputs())
	assert.Equal(t, "ru", a.Builder.Labels().Locale)
}

func TestNew_BadLocale(t *testing.T) {
	cfg := testConfig()
	cfg.UI.Locale = "fr"
	logger, _ := test.NewNullLogger()

	_, err := New(context.Background(), cfg, logger)
	assert.Error(t, err)
}

func TestNew_LoadFailure(t *testing.T) {
	cfg := testConfig()
	cfg.Dataset.Path = "does-not-exist.csv"
	logger, _ := test.NewNullLogger()

	_, err := New(context.Background(), cfg, logger)
	assert.ErrorContains(t, err, "load dataset")
}

func TestPage(t *testing.T) {
	logger, _ := test.NewNullLogger()
	a, err := New(context.Background(), testConfig(), logger)
	require.NoError(t, err)

	page := a.Page(a.Layout.Defaults())
	assert.Len(t, page.Charts, 4)
	assert.Empty(t, page.Errors)

	sel := a.Layout.Defaults()
	sel.Set(view.InputYear, "1800")
	page = a.Page(sel)
	assert.Len(t, page.Charts, 1, "only the line chart ignores the year")
	assert.Len(t, page.Errors, 3)
	assert.Contains(t, page.Charts, view.OutputLine)
}

func TestRenderOptions(t *testing.T) {
	cfg := testConfig()
	cfg.Render.WidthInches = 4
	logger, _ := test.NewNullLogger()
	a, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)

	opts := a.RenderOptions()
	assert.InDelta(t, 4*72, float64(opts.Width), 1e-9)
	assert.InDelta(t, 5*72, float64(opts.Height), 1e-9)
}

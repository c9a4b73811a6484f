package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/gapdash/internal/app"
	"github.com/ppiankov/gapdash/internal/model"
	"github.com/ppiankov/gapdash/internal/view"
)

// layoutCmd represents the layout command
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the dashboard view model as YAML",
	Long: `Load the dataset and print the page description every renderer consumes:
headings, dropdowns with their options and defaults, and graph placeholders,
together with the dataset source and the graph wiring.`,
	Args: cobra.NoArgs,
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
}

type layoutDump struct {
	Dataset  *model.DatasetInfo  `yaml:"dataset"`
	Layout   *view.Layout        `yaml:"layout"`
	Defaults view.Selection      `yaml:"defaults"`
	Wiring   map[string][]string `yaml:"wiring"`
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		return err
	}

	wiring := make(map[string][]string)
	for _, n := range a.Layout.Nodes {
		if n.Kind == view.NodeDropdown {
			wiring[n.ID] = a.Table.Affected(n.ID)
		}
	}

	data, err := yaml.Marshal(layoutDump{
		Dataset:  a.Info,
		Layout:   a.Layout,
		Defaults: a.Layout.Defaults(),
		Wiring:   wiring,
	})
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

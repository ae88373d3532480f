package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/infinitty-dev/skillflow/pkg/diagram"
	"github.com/infinitty-dev/skillflow/pkg/export"
	"github.com/infinitty-dev/skillflow/pkg/presenter"
	"github.com/spf13/cobra"
)

type ExportConfig struct {
	OutputDir    string
	Placeholders bool
}

func NewExportConfig() *ExportConfig {
	return &ExportConfig{
		OutputDir:    "",
		Placeholders: false,
	}
}

var exportCmd = &cobra.Command{
	Use:   "export <diagram.json>",
	Short: "Export a diagram back into skill document form",
	Long: `Read a diagram envelope produced by 'skillflow diagram --json' and
reconstruct the skill document(s). Exports prefer the original parsed
record captured at diagram time; when only the graph structure is
available the export is approximate and principle content is lost.

Examples:
  skillflow export code-review.diagram.json
  skillflow export skills.diagram.json -o ./exported
  skillflow export edited.diagram.json --placeholders`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getExportConfigFromFlags(cmd)
		runExportCmd(args[0], config)
	},
}

func init() {
	defaults := NewExportConfig()
	exportCmd.Flags().StringP("output-dir", "o", defaults.OutputDir, "Write one <name>.md file per exported skill into this directory")
	exportCmd.Flags().Bool("placeholders", defaults.Placeholders, "Substitute a placeholder comment for unrecoverable principle content")
	rootCmd.AddCommand(exportCmd)
}

func getExportConfigFromFlags(cmd *cobra.Command) *ExportConfig {
	config := NewExportConfig()
	if outputDir, err := cmd.Flags().GetString("output-dir"); err == nil {
		config.OutputDir = outputDir
	}
	if placeholders, err := cmd.Flags().GetBool("placeholders"); err == nil {
		config.Placeholders = placeholders
	}
	return config
}

func runExportCmd(path string, config *ExportConfig) {
	data, err := os.ReadFile(path)
	if err != nil {
		presenter.Error(err, "Failed to read diagram file")
		os.Exit(1)
	}

	var d diagram.Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		presenter.Error(err, "Failed to decode diagram file")
		os.Exit(1)
	}

	docs, fidelity, err := export.AutoExport(&d, export.Options{Placeholders: config.Placeholders})
	if err != nil {
		presenter.Error(err, "Failed to export diagram")
		os.Exit(1)
	}

	if fidelity == export.FidelityApproximate {
		presenter.Warning("Export reconstructed from graph structure; principle content is not preserved")
	}

	if config.OutputDir == "" {
		for _, doc := range docs {
			if len(docs) > 1 {
				presenter.Section(doc.Name)
			}
			fmt.Print(doc.Content)
		}
		return
	}

	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		presenter.Error(err, "Failed to create output directory")
		os.Exit(1)
	}

	for _, doc := range docs {
		outPath := filepath.Join(config.OutputDir, doc.Name+".md")
		if err := os.WriteFile(outPath, []byte(doc.Content), 0o644); err != nil {
			presenter.Error(err, fmt.Sprintf("Failed to write %s", outPath))
			os.Exit(1)
		}
		presenter.Success(fmt.Sprintf("Exported %s", outPath))
	}
}

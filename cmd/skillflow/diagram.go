package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/infinitty-dev/skillflow/pkg/diagram"
	"github.com/infinitty-dev/skillflow/pkg/presenter"
	"github.com/spf13/cobra"
)

type DiagramConfig struct {
	Directory bool
	Output    string
	JSON      bool
}

func NewDiagramConfig() *DiagramConfig {
	return &DiagramConfig{
		Directory: false,
		Output:    "",
		JSON:      false,
	}
}

var diagramCmd = &cobra.Command{
	Use:   "diagram <path>",
	Short: "Project a skill document as a Mermaid flowchart",
	Long: `Parse a skill (or with --directory, a directory of skills) and render
it as a Mermaid flowchart. By default only the diagram source is
printed; --json emits the full diagram envelope including the metadata
needed for a lossless export later.

Examples:
  skillflow diagram ./skills/code-review
  skillflow diagram ./skills/code-review --json -o code-review.diagram.json
  skillflow diagram --directory ./skills -o skills.mmd`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getDiagramConfigFromFlags(cmd)
		runDiagramCmd(cmd, args[0], config)
	},
}

func init() {
	defaults := NewDiagramConfig()
	diagramCmd.Flags().BoolP("directory", "d", defaults.Directory, "Project a directory of skills instead of a single document")
	diagramCmd.Flags().StringP("output", "o", defaults.Output, "Write output to a file instead of stdout")
	diagramCmd.Flags().Bool("json", defaults.JSON, "Emit the full diagram envelope as JSON")
	rootCmd.AddCommand(diagramCmd)
}

func getDiagramConfigFromFlags(cmd *cobra.Command) *DiagramConfig {
	config := NewDiagramConfig()
	if directory, err := cmd.Flags().GetBool("directory"); err == nil {
		config.Directory = directory
	}
	if output, err := cmd.Flags().GetString("output"); err == nil {
		config.Output = output
	}
	if jsonOut, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSON = jsonOut
	}
	return config
}

func runDiagramCmd(cmd *cobra.Command, path string, config *DiagramConfig) {
	sourceType := diagram.SourceSkill
	if config.Directory {
		sourceType = diagram.SourceSkillsDirectory
	}

	d, err := diagram.Generate(cmd.Context(), path, sourceType)
	if err != nil {
		presenter.Error(err, "Failed to generate diagram")
		os.Exit(1)
	}

	output := d.Source
	if config.JSON {
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			presenter.Error(err, "Failed to encode diagram")
			os.Exit(1)
		}
		output = string(data) + "\n"
	}

	if config.Output == "" {
		fmt.Print(output)
		return
	}

	if err := os.WriteFile(config.Output, []byte(output), 0o644); err != nil {
		presenter.Error(err, "Failed to write diagram")
		os.Exit(1)
	}
	presenter.Success(fmt.Sprintf("Wrote diagram to %s", config.Output))
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/infinitty-dev/skillflow/pkg/presenter"
	"github.com/infinitty-dev/skillflow/pkg/skill"
	"github.com/spf13/cobra"
)

type ParseConfig struct {
	Directory bool
}

func NewParseConfig() *ParseConfig {
	return &ParseConfig{
		Directory: false,
	}
}

var parseCmd = &cobra.Command{
	Use:   "parse <path>",
	Short: "Parse a skill document into its intermediate record",
	Long: `Parse a SKILL.md document (or a skill directory containing one) and
print the intermediate record as JSON. With --directory the path is
treated as a directory of skills; entries that fail to parse are
reported as warnings and skipped.

Examples:
  skillflow parse ./skills/code-review
  skillflow parse ./skills/code-review/SKILL.md
  skillflow parse --directory ./skills`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getParseConfigFromFlags(cmd)
		runParseCmd(cmd, args[0], config)
	},
}

func init() {
	defaults := NewParseConfig()
	parseCmd.Flags().BoolP("directory", "d", defaults.Directory, "Parse a directory of skills instead of a single document")
	rootCmd.AddCommand(parseCmd)
}

func getParseConfigFromFlags(cmd *cobra.Command) *ParseConfig {
	config := NewParseConfig()
	if directory, err := cmd.Flags().GetBool("directory"); err == nil {
		config.Directory = directory
	}
	return config
}

func runParseCmd(cmd *cobra.Command, path string, config *ParseConfig) {
	ctx := cmd.Context()

	if config.Directory {
		result, err := skill.ParseDirectory(ctx, path)
		if err != nil {
			presenter.Error(err, "Failed to parse skills directory")
			os.Exit(1)
		}
		for _, skipped := range result.Skipped {
			presenter.Warning(fmt.Sprintf("Skipped %s: %v", skipped.Path, skipped.Reason))
		}
		printJSON(result.Skills)
		return
	}

	parsed, err := skill.Parse(ctx, path)
	if err != nil {
		presenter.Error(err, "Failed to parse skill")
		os.Exit(1)
	}
	printJSON(parsed)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		presenter.Error(err, "Failed to encode result")
		os.Exit(1)
	}
	fmt.Println(string(data))
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/infinitty-dev/skillflow/pkg/presenter"
	"github.com/infinitty-dev/skillflow/pkg/workflows"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Manage persisted visual workflows",
	Long:  `List, show, and delete workflow documents stored as {id}.workflow.json files.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var workflowListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored workflows",
	Long:  `List all stored workflows sorted by last update, newest first.`,
	Run: func(cmd *cobra.Command, _ []string) {
		store := openWorkflowStore()

		summaries, err := store.List(cmd.Context())
		if err != nil {
			presenter.Error(err, "Failed to list workflows")
			os.Exit(1)
		}

		if len(summaries) == 0 {
			presenter.Info("No workflows stored")
			return
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tVERSION\tNODES\tUPDATED")
		fmt.Fprintln(tw, "--\t----\t-------\t-----\t-------")
		for _, s := range summaries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
				s.ID, s.Name, s.Version, s.NodeCount, s.UpdatedAt.Format(time.RFC3339))
		}
		tw.Flush()
	},
}

var workflowShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored workflow as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := openWorkflowStore()

		record, err := store.Load(args[0])
		if err != nil {
			presenter.Error(err, "Failed to load workflow")
			os.Exit(1)
		}

		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			presenter.Error(err, "Failed to encode workflow")
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

var workflowDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored workflow",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := openWorkflowStore()

		if err := store.Delete(args[0]); err != nil {
			presenter.Error(err, "Failed to delete workflow")
			os.Exit(1)
		}
		presenter.Success(fmt.Sprintf("Deleted workflow %s", args[0]))
	},
}

func init() {
	workflowCmd.PersistentFlags().String("dir", "", "Workflow storage directory (defaults to $SKILLFLOW_WORKFLOWS_DIR or ~/.skillflow/workflows)")
	viper.BindPFlag("workflows_dir", workflowCmd.PersistentFlags().Lookup("dir"))

	workflowCmd.AddCommand(workflowListCmd)
	workflowCmd.AddCommand(workflowShowCmd)
	workflowCmd.AddCommand(workflowDeleteCmd)
	rootCmd.AddCommand(workflowCmd)
}

func openWorkflowStore() *workflows.Store {
	store, err := workflows.NewStore(viper.GetString("workflows_dir"))
	if err != nil {
		presenter.Error(err, "Failed to open workflow store")
		os.Exit(1)
	}
	return store
}

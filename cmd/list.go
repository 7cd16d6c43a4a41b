package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered models",
	Long:    "List all models registered in the local model registry.",
	RunE:    runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	mgr, err := newModelManager()
	if err != nil {
		return err
	}

	models, err := mgr.ListModels()
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}

	if len(models) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No models registered. Use 'isvc add <name> <path>' to register one.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tSIZE\tADDED")
	for _, m := range models {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Name, m.Kind, humanize.Bytes(uint64(m.Size)), humanize.Time(m.AddedAt))
	}
	return w.Flush()
}

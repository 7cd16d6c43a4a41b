package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <model>",
	Short: "Show model information",
	Long:  "Display the manifest of a registered model.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	name := args[0]

	mgr, err := newModelManager()
	if err != nil {
		return err
	}

	m, err := mgr.GetModel(name)
	if err != nil {
		return fmt.Errorf("model '%s' not found: %w", name, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:   %s\n", m.Name)
	fmt.Fprintf(out, "Kind:   %s\n", m.Kind)
	fmt.Fprintf(out, "Path:   %s\n", m.Path)
	fmt.Fprintf(out, "Size:   %s (%s bytes)\n", humanize.Bytes(uint64(m.Size)), humanize.Comma(m.Size))
	fmt.Fprintf(out, "Added:  %s\n", m.AddedAt.Format("2006-01-02 15:04:05"))
	return nil
}

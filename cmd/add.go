package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cloudchase/inference-services/registry"
)

var addKind string

var addCmd = &cobra.Command{
	Use:   "add <name> <path>",
	Short: "Register a model file",
	Long: `Register a model artifact under a name so that generator.model,
spam.model_path and 'run --model' can refer to it by name.`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

var rmCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove"},
	Short:   "Unregister a model",
	Long:    "Remove a model's manifest from the registry. The model file itself is left in place.",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func init() {
	addCmd.Flags().StringVarP(&addKind, "kind", "k", string(registry.KindGenerator), "Model kind (generator or spam)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	kind, err := registry.ParseKind(addKind)
	if err != nil {
		return err
	}

	mgr, err := newModelManager()
	if err != nil {
		return err
	}

	m, err := mgr.AddLocalModel(args[0], args[1], kind)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s model '%s' (%s)\n", m.Kind, m.Name, humanize.Bytes(uint64(m.Size)))
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	mgr, err := newModelManager()
	if err != nil {
		return err
	}
	if err := mgr.RemoveModel(args[0]); err != nil {
		return fmt.Errorf("remove model '%s': %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed '%s'\n", args[0])
	return nil
}

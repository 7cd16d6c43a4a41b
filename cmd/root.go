package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cloudchase/inference-services/config"
	"github.com/cloudchase/inference-services/logging"
)

var (
	cfgFile string
	debug   bool

	cfg *config.Config
	log = logging.GetLogger()
)

var rootCmd = &cobra.Command{
	Use:   "isvc",
	Short: "Inference services - text generation and spam detection APIs",
	Long: `HTTP services wrapping pretrained models: a causal language model for
short text continuation and a binary classifier for spam detection.

Configuration is read from an optional YAML file, a .env file in the working
directory and the environment (MAX_INPUT_LENGTH, PORT, GENERATOR_BACKEND, ...).`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(serveSpamCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(rmCmd)
}

func setup(_ *cobra.Command, _ []string) error {
	c, err := config.Load(cfgFile, ".env")
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if debug {
		level = logrus.DebugLevel
	}
	logging.InitLogger(level)

	cfg = c
	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cloudchase/inference-services/service"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <text>",
	Short: "Classify a message as spam or not spam",
	Long:  "Load the spam classifier from spam.model_path and classify a single message.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return errors.New("no input text provided")
	}

	model, _, err := loadClassifier()
	if err != nil {
		return err
	}

	spam, err := service.NewSpam(model).Detect(text)
	if err != nil {
		return err
	}
	if spam {
		fmt.Fprintln(cmd.OutOrStdout(), "spam")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "not spam")
	}
	return nil
}

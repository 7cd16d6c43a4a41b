package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/cloudchase/inference-services/service"
)

var (
	runModel        string
	runMaxNewTokens int
)

var runCmd = &cobra.Command{
	Use:   "run [prompt]",
	Short: "Continue text with the generation model",
	Long: `Continue a prompt with the configured generation model. If a prompt is
provided as an argument, print the continuation and exit. Otherwise, start an
interactive REPL.

--model accepts a registered model name or a path to a model file and
overrides generator.model for the local backend.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runModel, "model", "m", "", "Model name or path (local backend)")
	runCmd.Flags().IntVarP(&runMaxNewTokens, "max-new-tokens", "n", 3, "Number of tokens to generate")
}

func runRun(cmd *cobra.Command, args []string) error {
	eng, err := loadEngine(runModel)
	if err != nil {
		return err
	}
	defer eng.Close()

	svc := service.NewGeneration(eng)

	if prompt := strings.Join(args, " "); prompt != "" {
		return continueAndPrint(cmd.OutOrStdout(), svc, prompt)
	}
	return repl(cmd.InOrStdin(), cmd.OutOrStdout(), svc)
}

func continueAndPrint(w io.Writer, svc *service.Generation, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if n := utf8.RuneCountInString(prompt); n > cfg.MaxInputLength {
		return fmt.Errorf("input exceeds max length of %d", cfg.MaxInputLength)
	}
	out, err := svc.Predict(prompt, runMaxNewTokens)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}

func repl(in io.Reader, out io.Writer, svc *service.Generation) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, ">>> ")

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(out, ">>> ")
			continue
		}

		switch strings.ToLower(line) {
		case "/exit", "/quit", "/bye":
			fmt.Fprintln(out, "Goodbye.")
			return nil
		case "/help":
			fmt.Fprintln(out, "Commands:")
			fmt.Fprintln(out, "  /exit, /quit, /bye  - Exit the REPL")
			fmt.Fprintln(out, "  /help               - Show this help")
			fmt.Fprintln(out, "  <text>              - Continue the text")
			fmt.Fprint(out, ">>> ")
			continue
		}

		if err := continueAndPrint(out, svc, line); err != nil {
			fmt.Fprintf(os.Stderr, "Generation error: %v\n", err)
		}
		fmt.Fprint(out, ">>> ")
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cloudchase/inference-services/api"
	"github.com/cloudchase/inference-services/service"
)

var (
	serveAddr     string
	serveSpamAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the text generation API",
	Long:  "Load the configured language model and serve POST /predict (default port $PORT, 5000).",
	RunE:  runServe,
}

var serveSpamCmd = &cobra.Command{
	Use:   "serve-spam",
	Short: "Start the spam detection API",
	Long:  "Load the spam classifier from spam.model_path and serve POST /detect-spam (default port 5002).",
	RunE:  runServeSpam,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default \":$PORT\")")
	serveSpamCmd.Flags().StringVar(&serveSpamAddr, "addr", "", "Address to listen on (default \":<spam.port>\")")
}

func runServe(cmd *cobra.Command, _ []string) error {
	eng, err := loadEngine("")
	if err != nil {
		return err
	}
	defer eng.Close()

	srv := api.NewPredictServer(service.NewGeneration(eng), cfg.MaxInputLength, api.ModelStatus{
		Name:   eng.ModelName(),
		Path:   eng.ModelPath(),
		Device: string(eng.Device()),
		Loaded: eng.IsLoaded(),
	})

	addr := serveAddr
	if addr == "" {
		addr = fmt.Sprintf(":%d", cfg.Port)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return api.ListenAndServe(ctx, addr, srv.Handler())
}

func runServeSpam(cmd *cobra.Command, _ []string) error {
	model, path, err := loadClassifier()
	if err != nil {
		return err
	}

	srv := api.NewSpamServer(service.NewSpam(model), api.ModelStatus{
		Name:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:   path,
		Loaded: true,
	})

	addr := serveSpamAddr
	if addr == "" {
		addr = fmt.Sprintf(":%d", cfg.Spam.Port)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return api.ListenAndServe(ctx, addr, srv.Handler())
}

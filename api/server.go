package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// Predictor continues text. Implementations serialize access to the model.
type Predictor interface {
	Predict(text string, maxNewTokens int) (string, error)
}

// SpamDetector classifies a single text. Implementations serialize access
// to the model.
type SpamDetector interface {
	Detect(text string) (bool, error)
}

// PredictServer is the HTTP API of the text generation service.
type PredictServer struct {
	predictor      Predictor
	maxInputLength int
	model          ModelStatus
}

// NewPredictServer creates the generation API. Inputs longer than
// maxInputLength characters after trimming are rejected.
func NewPredictServer(p Predictor, maxInputLength int, model ModelStatus) *PredictServer {
	return &PredictServer{
		predictor:      p,
		maxInputLength: maxInputLength,
		model:          model,
	}
}

// SpamServer is the HTTP API of the spam detection service.
type SpamServer struct {
	detector SpamDetector
	model    ModelStatus
}

// NewSpamServer creates the spam detection API.
func NewSpamServer(d SpamDetector, model ModelStatus) *SpamServer {
	return &SpamServer{detector: d, model: model}
}

const shutdownTimeout = 10 * time.Second

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down
// gracefully, letting in-flight requests finish.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return Serve(ctx, ln, h)
}

// Serve is ListenAndServe on an existing listener, which it closes.
func Serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/cloudchase/inference-services/engine"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("failed to write JSON response: %v", err)
	}
}

// writeError writes an error response with the given status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// predictFailure maps a /predict error to its status and client message.
// Internal details never reach the client.
func predictFailure(err error) (int, string) {
	var rej *rejection
	switch {
	case errors.As(err, &rej):
		return http.StatusBadRequest, rej.reason
	case errors.Is(err, engine.ErrInvalidInput):
		return http.StatusBadRequest, msgInvalidFormat
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// spamFailure maps a /detect-spam error to its status and client message.
// Unlike /predict, the error text is passed through.
func spamFailure(err error) (int, string) {
	var rej *rejection
	if errors.As(err, &rej) {
		return http.StatusBadRequest, rej.reason
	}
	return http.StatusInternalServerError, err.Error()
}

func logFailure(r *http.Request, status int, err error) {
	entry := requestLog(r).WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error("unexpected error")
		return
	}
	entry.Warn("rejected request")
}

// handlePredict handles POST /predict.
func (s *PredictServer) handlePredict(w http.ResponseWriter, r *http.Request) {
	in, err := parsePredictRequest(r.Body, s.maxInputLength)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	prediction, err := s.predictor.Predict(in.text, in.maxNewTokens)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	requestLog(r).WithFields(logrus.Fields{
		"input_bytes":    len(in.text),
		"max_new_tokens": in.maxNewTokens,
	}).Info("generated text")
	writeJSON(w, http.StatusOK, PredictResponse{Prediction: prediction})
}

func (s *PredictServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := predictFailure(err)
	logFailure(r, status, err)
	writeError(w, status, msg)
}

// handleDetectSpam handles POST /detect-spam.
func (s *SpamServer) handleDetectSpam(w http.ResponseWriter, r *http.Request) {
	text, err := parseSpamRequest(r.Body)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	isSpam, err := s.detector.Detect(text)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SpamResponse{IsSpam: isSpam})
}

func (s *SpamServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := spamFailure(err)
	logFailure(r, status, err)
	writeError(w, status, msg)
}

// handleHealth handles GET /health.
func (s *PredictServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", ModelStatus: s.model})
}

// handleHealth handles GET /health.
func (s *SpamServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", ModelStatus: s.model})
}

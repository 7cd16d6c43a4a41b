package api

// PredictResponse is the JSON response for POST /predict.
type PredictResponse struct {
	Prediction string `json:"prediction"`
}

// SpamResponse is the JSON response for POST /detect-spam.
type SpamResponse struct {
	IsSpam bool `json:"is_spam"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ModelStatus describes the model a service was started with.
type ModelStatus struct {
	Name   string `json:"model"`
	Path   string `json:"model_path,omitempty"`
	Device string `json:"device,omitempty"`
	Loaded bool   `json:"model_loaded"`
}

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	ModelStatus
}

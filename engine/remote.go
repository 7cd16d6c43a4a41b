package engine

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Remote delegates generation to a text-generation inference server
// speaking the Hugging Face `/generate` protocol.
type Remote struct {
	client  *resty.Client
	baseURL string
}

type remoteParameters struct {
	MaxNewTokens      int     `json:"max_new_tokens"`
	Temperature       float64 `json:"temperature"`
	TopK              int     `json:"top_k"`
	TopP              float64 `json:"top_p"`
	NoRepeatNGramSize int     `json:"no_repeat_ngram_size"`
	DoSample          bool    `json:"do_sample"`
	Truncate          int     `json:"truncate,omitempty"`
	ReturnFullText    bool    `json:"return_full_text"`
}

type remoteRequest struct {
	Inputs     string           `json:"inputs"`
	Parameters remoteParameters `json:"parameters"`
}

type remoteResponse struct {
	GeneratedText string `json:"generated_text"`
}

type remoteError struct {
	Error     string `json:"error"`
	ErrorType string `json:"error_type,omitempty"`
}

// NewRemote creates a client for the server at baseURL. A zero timeout
// leaves requests unbounded.
func NewRemote(baseURL string, timeout time.Duration) *Remote {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &Remote{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Generate sends one generation request. Client errors reported by the
// server (4xx) wrap ErrInvalidInput.
func (r *Remote) Generate(prompt string, opts GenerateOptions) (string, error) {
	var (
		out    remoteResponse
		apiErr remoteError
	)
	resp, err := r.client.R().
		SetBody(remoteRequest{
			Inputs: prompt,
			Parameters: remoteParameters{
				MaxNewTokens:      opts.MaxNewTokens,
				Temperature:       opts.Temperature,
				TopK:              opts.TopK,
				TopP:              opts.TopP,
				NoRepeatNGramSize: opts.NoRepeatNGramSize,
				DoSample:          opts.DoSample,
				Truncate:          opts.MaxInputTokens,
				ReturnFullText:    true,
			},
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post(r.baseURL + "/generate")
	if err != nil {
		return "", fmt.Errorf("remote generate: %w", err)
	}

	status := resp.StatusCode()
	switch {
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		return "", fmt.Errorf("%w: remote rejected request (%d): %s", ErrInvalidInput, status, apiErr.Error)
	case resp.IsError():
		return "", fmt.Errorf("remote generate: status %d: %s", status, apiErr.Error)
	}
	return out.GeneratedText, nil
}

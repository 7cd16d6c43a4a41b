package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	msgMissingText    = "Invalid input. Provide a 'text' field."
	msgEmptyText      = "Input text cannot be empty."
	msgTooLongFormat  = "Input exceeds max length of %d."
	msgInvalidFormat  = "Invalid input format"
	msgInternal       = "Internal server error"
	msgNoSpamText     = "No input text provided"
	defaultMaxNewToks = 3
)

// rejection is a validation failure whose reason is returned to the client
// verbatim with a 400.
type rejection struct {
	reason string
}

func (r *rejection) Error() string { return r.reason }

func reject(reason string) error { return &rejection{reason: reason} }

type predictInput struct {
	text         string
	maxNewTokens int
}

// decodeFields reads a JSON object body. ok is false for anything that is
// not a JSON object.
func decodeFields(body io.Reader) (fields map[string]json.RawMessage, ok bool) {
	if err := json.NewDecoder(body).Decode(&fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// parsePredictRequest validates a /predict body. Fields of the wrong type
// are internal errors; every other failure is a rejection.
func parsePredictRequest(body io.Reader, maxInputLength int) (predictInput, error) {
	fields, ok := decodeFields(body)
	if !ok {
		return predictInput{}, reject(msgMissingText)
	}
	raw, ok := fields["text"]
	if !ok {
		return predictInput{}, reject(msgMissingText)
	}

	var text string
	if isNull(raw) || json.Unmarshal(raw, &text) != nil {
		return predictInput{}, errors.New("text must be a string")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return predictInput{}, reject(msgEmptyText)
	}
	if utf8.RuneCountInString(text) > maxInputLength {
		return predictInput{}, reject(fmt.Sprintf(msgTooLongFormat, maxInputLength))
	}

	in := predictInput{text: text, maxNewTokens: defaultMaxNewToks}
	if raw, ok := fields["max_new_tokens"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &in.maxNewTokens); err != nil {
			return predictInput{}, fmt.Errorf("max_new_tokens must be an integer: %w", err)
		}
	}
	return in, nil
}

// parseSpamRequest validates a /detect-spam body. There is no length limit.
func parseSpamRequest(body io.Reader) (string, error) {
	fields, ok := decodeFields(body)
	if !ok {
		return "", reject(msgNoSpamText)
	}
	raw, ok := fields["text"]
	if !ok {
		return "", reject(msgNoSpamText)
	}

	var text string
	if isNull(raw) || json.Unmarshal(raw, &text) != nil {
		return "", errors.New("text must be a string")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", reject(msgNoSpamText)
	}
	return text, nil
}

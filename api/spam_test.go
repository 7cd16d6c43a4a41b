package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudchase/inference-services/classifier"
	"github.com/cloudchase/inference-services/service"
)

type mockDetector struct {
	mockDetect func(text string) (bool, error)
}

func (m *mockDetector) Detect(text string) (bool, error) {
	return m.mockDetect(text)
}

func TestDetectSpam_Success(t *testing.T) {
	var got string
	d := &mockDetector{mockDetect: func(text string) (bool, error) {
		got = text
		return true, nil
	}}
	h := NewSpamServer(d, ModelStatus{}).Handler()

	w, body := doJSON(t, h, http.MethodPost, "/detect-spam", `{"text": "  Buy now!!!  "}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"is_spam": true}, body)
	assert.Equal(t, "Buy now!!!", got)
}

func TestDetectSpam_NoLengthLimit(t *testing.T) {
	d := &mockDetector{mockDetect: func(string) (bool, error) { return false, nil }}
	h := NewSpamServer(d, ModelStatus{}).Handler()

	w, body := doJSON(t, h, http.MethodPost, "/detect-spam", `{"text": "`+strings.Repeat("hello ", 5000)+`"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"is_spam": false}, body)
}

func TestDetectSpam_Rejections(t *testing.T) {
	for name, body := range map[string]string{
		"empty object": `{}`,
		"not json":     `text=hi`,
		"empty body":   ``,
		"empty text":   `{"text": ""}`,
		"blank text":   `{"text": "   "}`,
	} {
		t.Run(name, func(t *testing.T) {
			d := &mockDetector{mockDetect: func(string) (bool, error) {
				t.Fatal("classifier should not be called for an invalid request")
				return false, nil
			}}
			h := NewSpamServer(d, ModelStatus{}).Handler()

			w, out := doJSON(t, h, http.MethodPost, "/detect-spam", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, map[string]any{"error": msgNoSpamText}, out)
		})
	}
}

func TestDetectSpam_ErrorsExposeMessage(t *testing.T) {
	d := &mockDetector{mockDetect: func(string) (bool, error) {
		return false, errors.New("vectorizer not fitted")
	}}
	h := NewSpamServer(d, ModelStatus{}).Handler()

	w, body := doJSON(t, h, http.MethodPost, "/detect-spam", `{"text": "hello"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{"error": "vectorizer not fitted"}, body)

	w, body = doJSON(t, h, http.MethodPost, "/detect-spam", `{"text": ["hello"]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{"error": "text must be a string"}, body)
}

func TestDetectSpam_PanicExposesMessage(t *testing.T) {
	d := &mockDetector{mockDetect: func(string) (bool, error) { panic("index out of range") }}
	h := NewSpamServer(d, ModelStatus{}).Handler()

	w, body := doJSON(t, h, http.MethodPost, "/detect-spam", `{"text": "hello"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{"error": "index out of range"}, body)
}

func TestDetectSpam_EndToEndConcurrent(t *testing.T) {
	ln := math.Log
	model, err := classifier.New(classifier.Artifact{
		Classes:       []int{0, 1},
		ClassLogPrior: []float64{ln(0.5), ln(0.5)},
		Vocabulary:    map[string]int{"buy": 0, "now": 1, "lunch": 2},
		FeatureLogProb: [][]float64{
			{ln(0.1), ln(0.2), ln(0.7)},
			{ln(0.5), ln(0.45), ln(0.05)},
		},
		Lowercase: true,
	})
	require.NoError(t, err)
	h := NewSpamServer(service.NewSpam(model), ModelStatus{Name: "spam"}).Handler()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text, want := "Buy now!!!", true
			if i%2 == 0 {
				text, want = "lunch at noon?", false
			}
			// No require here: FailNow must run on the test goroutine.
			r := httptest.NewRequest(http.MethodPost, "/detect-spam", strings.NewReader(`{"text": "`+text+`"}`))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			var body SpamResponse
			assert.Equal(t, http.StatusOK, w.Code)
			if assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)) {
				assert.Equal(t, want, body.IsSpam)
			}
		}(i)
	}
	wg.Wait()
}

func TestDetectSpam_Health(t *testing.T) {
	d := &mockDetector{mockDetect: func(string) (bool, error) { return false, nil }}
	h := NewSpamServer(d, ModelStatus{Name: "models/spam_detector.json", Loaded: true}).Handler()

	w, body := doJSON(t, h, http.MethodGet, "/health", ``)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "models/spam_detector.json", body["model"])
	assert.Equal(t, true, body["model_loaded"])
}

package service_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudchase/inference-services/engine"
	"github.com/cloudchase/inference-services/service"
)

// overlapDetector records the highest number of callers seen inside the
// model at once.
type overlapDetector struct {
	active  atomic.Int32
	maxSeen atomic.Int32
	delay   time.Duration
}

func (d *overlapDetector) enter() {
	n := d.active.Add(1)
	for {
		m := d.maxSeen.Load()
		if n <= m || d.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(d.delay)
	d.active.Add(-1)
}

type fakeGenerator struct {
	overlapDetector
	mockGenerate func(prompt string, opts engine.GenerateOptions) (string, error)
}

func (f *fakeGenerator) Generate(prompt string, opts engine.GenerateOptions) (string, error) {
	f.enter()
	return f.mockGenerate(prompt, opts)
}

type fakePredictor struct {
	overlapDetector
	mockPredict func(texts []string) ([]int, error)
}

func (f *fakePredictor) Predict(texts []string) ([]int, error) {
	f.enter()
	return f.mockPredict(texts)
}

func TestGeneration_PassesFixedSamplingOptions(t *testing.T) {
	gen := &fakeGenerator{
		mockGenerate: func(prompt string, opts engine.GenerateOptions) (string, error) {
			assert.Equal(t, "Hello world", prompt)
			assert.Equal(t, 7, opts.MaxNewTokens)
			assert.Equal(t, 50, opts.TopK)
			assert.Equal(t, 0.95, opts.TopP)
			assert.Equal(t, 0.7, opts.Temperature)
			assert.Equal(t, 2, opts.NoRepeatNGramSize)
			assert.True(t, opts.DoSample)
			return prompt + "!", nil
		},
	}

	out, err := service.NewGeneration(gen).Predict("Hello world", 7)
	require.NoError(t, err)
	assert.Equal(t, "Hello world!", out)
}

func TestGeneration_ReturnsModelError(t *testing.T) {
	gen := &fakeGenerator{
		mockGenerate: func(string, engine.GenerateOptions) (string, error) {
			return "", engine.ErrInvalidInput
		},
	}

	_, err := service.NewGeneration(gen).Predict("Hello", 3)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestGeneration_SerializesConcurrentCalls(t *testing.T) {
	const n = 8
	gen := &fakeGenerator{
		overlapDetector: overlapDetector{delay: 10 * time.Millisecond},
		mockGenerate: func(prompt string, _ engine.GenerateOptions) (string, error) {
			return prompt, nil
		},
	}
	svc := service.NewGeneration(gen)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Predict("Hello", 3)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), gen.maxSeen.Load())
	assert.GreaterOrEqual(t, time.Since(start), n*gen.delay)
}

func TestGeneration_PanicReleasesLock(t *testing.T) {
	calls := 0
	gen := &fakeGenerator{
		mockGenerate: func(string, engine.GenerateOptions) (string, error) {
			calls++
			if calls == 1 {
				panic("model blew up")
			}
			return "ok", nil
		},
	}
	svc := service.NewGeneration(gen)

	assert.Panics(t, func() { _, _ = svc.Predict("Hello", 3) })

	done := make(chan struct{})
	go func() {
		defer close(done)
		out, err := svc.Predict("Hello", 3)
		assert.NoError(t, err)
		assert.Equal(t, "ok", out)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock was not released after panic")
	}
}

func TestSpam_Detect(t *testing.T) {
	pred := &fakePredictor{
		mockPredict: func(texts []string) ([]int, error) {
			require.Len(t, texts, 1)
			if texts[0] == "Buy now!!!" {
				return []int{1}, nil
			}
			return []int{0}, nil
		},
	}
	svc := service.NewSpam(pred)

	spam, err := svc.Detect("Buy now!!!")
	require.NoError(t, err)
	assert.True(t, spam)

	spam, err = svc.Detect("See you at lunch")
	require.NoError(t, err)
	assert.False(t, spam)
}

func TestSpam_Errors(t *testing.T) {
	svc := service.NewSpam(&fakePredictor{
		mockPredict: func([]string) ([]int, error) { return nil, errors.New("boom") },
	})
	_, err := svc.Detect("hi")
	assert.EqualError(t, err, "boom")

	svc = service.NewSpam(&fakePredictor{
		mockPredict: func([]string) ([]int, error) { return []int{}, nil },
	})
	_, err = svc.Detect("hi")
	assert.Error(t, err)
}

func TestSpam_SerializesConcurrentCalls(t *testing.T) {
	pred := &fakePredictor{
		overlapDetector: overlapDetector{delay: 5 * time.Millisecond},
		mockPredict:     func([]string) ([]int, error) { return []int{1}, nil },
	}
	svc := service.NewSpam(pred)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Detect("free money")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), pred.maxSeen.Load())
}

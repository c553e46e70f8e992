package motivation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	motivation string
	activity   string
	err        error
	block      bool
}

func (s stubProvider) StudyMotivation(ctx context.Context, _ int, _ string) (string, error) {
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.motivation, s.err
}

func (s stubProvider) BreakActivity(ctx context.Context) (string, error) {
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.activity, s.err
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		msg := Fetch(ctx, stubProvider{motivation: "Purr, nice work!", activity: "Roll your shoulders."}, time.Second, 25, "Mochi")
		assert.Equal(t, Message{Motivation: "Purr, nice work!", Activity: "Roll your shoulders."}, msg)
	})

	t.Run("empty answers", func(t *testing.T) {
		msg := Fetch(ctx, stubProvider{}, time.Second, 25, "Mochi")
		assert.Equal(t, EmptyMotivation, msg.Motivation)
		assert.Equal(t, EmptyActivity, msg.Activity)
	})

	t.Run("provider error", func(t *testing.T) {
		msg := Fetch(ctx, Offline{}, time.Second, 25, "Mochi")
		assert.Equal(t, "Meow! (Translation: Great job focusing for 25 minutes!)", msg.Motivation)
		assert.Equal(t, FailedActivity, msg.Activity)
	})

	t.Run("timeout", func(t *testing.T) {
		start := time.Now()
		msg := Fetch(ctx, stubProvider{block: true}, 20*time.Millisecond, 5, "Mochi")
		assert.Less(t, time.Since(start), 2*time.Second)
		assert.Equal(t, FailedMotivation(5), msg.Motivation)
		assert.Equal(t, FailedActivity, msg.Activity)
	})
}

func TestGeminiProvider(t *testing.T) {
	var gotPath, gotKey, gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			gotPrompt = req.Contents[0].Parts[0].Text
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"  Meow, you did it!\n"}]}}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("secret", "").WithBaseURL(srv.URL + "/")
	text, err := p.StudyMotivation(context.Background(), 25, "Buster")
	require.NoError(t, err)
	assert.Equal(t, "Meow, you did it!", text)
	assert.Equal(t, "/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Contains(t, gotPrompt, "25 minute focus session")
	assert.Contains(t, gotPrompt, `named "Buster"`)

	_, err = p.BreakActivity(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotPrompt, "Suggest one simple"))
}

func TestGeminiProviderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewGeminiProvider("secret", "custom-model").WithBaseURL(srv.URL).BreakActivity(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProviderUnavailable))
	assert.Contains(t, err.Error(), "429")

	_, err = NewGeminiProvider("", "").StudyMotivation(context.Background(), 25, "Mochi")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestGeminiProviderEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("secret", "").WithBaseURL(srv.URL)
	msg := Fetch(context.Background(), p, time.Second, 25, "Mochi")
	assert.Equal(t, EmptyMotivation, msg.Motivation)
	assert.Equal(t, EmptyActivity, msg.Activity)
}

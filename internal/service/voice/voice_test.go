package voice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/mindwell_backend/config"
)

func newTestService(t *testing.T, h http.HandlerFunc) Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.VoiceConfig{MLServerURL: srv.URL + "/", TimeoutSeconds: 5}, nil)
}

func TestPredict_FillsMentalHealthFromLabel(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		var body PredictRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "student-1", body.UserID)
		assert.Equal(t, "UklGRg==", body.AudioData)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"emotion":"Sadness","confidence":0.82,"modelVersion":"v3"}`))
	})

	p, err := svc.Predict(context.Background(), PredictRequest{UserID: "student-1", AudioData: "UklGRg=="})
	require.NoError(t, err)

	assert.Equal(t, EmotionSadness, p.Emotion)
	assert.InDelta(t, 0.82, p.Confidence, 1e-9)
	assert.True(t, p.RequiresConfirmation)
	assert.Equal(t, defaultModelType, p.ModelType)
	require.NotNil(t, p.MentalHealth)
	assert.Equal(t, "low_mood_indicators", p.MentalHealth.Status)
	assert.False(t, p.Timestamp.IsZero())
}

func TestPredict_KeepsModelMentalHealth(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"emotion":"Fear","confidence":0.5,"mentalHealth":{"status":"custom","severity":"mild","suggestion":"s"},"modelType":"cnn2"}`))
	})

	p, err := svc.Predict(context.Background(), PredictRequest{UserID: "u", AudioData: "a"})
	require.NoError(t, err)
	assert.Equal(t, "custom", p.MentalHealth.Status)
	assert.Equal(t, "cnn2", p.ModelType)
}

func TestPredict_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{"server error status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not loaded", http.StatusInternalServerError)
		}, ErrModelUnavailable},
		{"error field", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"audio too short"}`))
		}, ErrPredictionFailed},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}, ErrPredictionFailed},
		{"no emotion", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"confidence":0.1}`))
		}, ErrPredictionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.handler)
			_, err := svc.Predict(context.Background(), PredictRequest{UserID: "u", AudioData: "a"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPredict_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	svc := New(config.VoiceConfig{MLServerURL: url, TimeoutSeconds: 1}, nil)
	_, err := svc.Predict(context.Background(), PredictRequest{UserID: "u", AudioData: "a"})
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestPredict_MissingFields(t *testing.T) {
	svc := New(config.VoiceConfig{MLServerURL: "http://127.0.0.1:1"}, nil)
	for _, req := range []PredictRequest{{UserID: "u"}, {AudioData: "a"}, {UserID: " ", AudioData: "a"}} {
		_, err := svc.Predict(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	}
}

func TestMentalHealthFor(t *testing.T) {
	labels := []string{EmotionAnger, EmotionDisgust, EmotionFear, EmotionHappiness, EmotionNeutral, EmotionSadness, EmotionSurprise}
	for _, l := range labels {
		mh, ok := MentalHealthFor(l)
		assert.True(t, ok, l)
		assert.NotEmpty(t, mh.Suggestion, l)
	}
	_, ok := MentalHealthFor("Contempt")
	assert.False(t, ok)
}

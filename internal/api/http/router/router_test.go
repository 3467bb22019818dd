package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	paseto "aidanwoods.dev/go-paseto"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/mindwell_backend/config"
	"github.com/Alijeyrad/mindwell_backend/internal/repo"
	"github.com/Alijeyrad/mindwell_backend/internal/service/analytics"
	"github.com/Alijeyrad/mindwell_backend/internal/service/assessment"
	"github.com/Alijeyrad/mindwell_backend/internal/service/chat"
	"github.com/Alijeyrad/mindwell_backend/internal/service/genai"
	"github.com/Alijeyrad/mindwell_backend/internal/service/safety"
	"github.com/Alijeyrad/mindwell_backend/internal/service/stress"
	"github.com/Alijeyrad/mindwell_backend/internal/service/voice"
	"github.com/Alijeyrad/mindwell_backend/pkg/authorize"
	pasetotoken "github.com/Alijeyrad/mindwell_backend/pkg/paseto"
)

type fakeChat struct {
	sendErr error
	sumErr  error
}

func (f *fakeChat) Send(_ context.Context, req chat.SendRequest) (chat.Reply, error) {
	if f.sendErr != nil {
		return chat.Reply{}, f.sendErr
	}
	if req.UserID == "" || req.Message == "" {
		return chat.Reply{}, chat.ErrInvalidRequest
	}
	v := safety.Classify(req.Message)
	if v.Flagged {
		return chat.Reply{Reply: safety.CrisisReply, Flagged: true}, nil
	}
	return chat.Reply{Reply: "I hear you."}, nil
}

func (f *fakeChat) Summarize(_ context.Context, userID string) (chat.Summary, error) {
	if f.sumErr != nil {
		return chat.Summary{}, f.sumErr
	}
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return chat.Summary{Text: "summary for " + userID, StartDate: at, EndDate: at}, nil
}

func (f *fakeChat) History(_ context.Context, userID string) ([]*repo.ChatTurn, error) {
	return []*repo.ChatTurn{{ID: 1, UserID: userID, Role: repo.RoleUser, Content: "hi"}}, nil
}

type fakeAssessments struct{}

func (fakeAssessments) Submit(_ context.Context, req assessment.SubmitRequest) (*assessment.Submission, error) {
	form, err := assessment.Lookup(req.AssessmentType)
	if err != nil {
		return nil, err
	}
	if err := form.Validate(req.Responses); err != nil {
		return nil, err
	}
	return &assessment.Submission{Result: assessment.Score(form, req.Responses)}, nil
}

func (fakeAssessments) ListByUser(context.Context, string) ([]*repo.Assessment, error) {
	return []*repo.Assessment{}, nil
}

func (fakeAssessments) ListFlagged(context.Context, int) ([]*repo.Assessment, error) {
	return []*repo.Assessment{}, nil
}

type fakeVoice struct{ err error }

func (f fakeVoice) Predict(context.Context, voice.PredictRequest) (*voice.Prediction, error) {
	return nil, f.err
}

type fakeStress struct{}

func (fakeStress) Submit(_ context.Context, req stress.Request) (*stress.Result, error) {
	return &stress.Result{Tips: stress.Tips(req.StressLevel, req.ConfidenceLevel)}, nil
}

type fakeAnalytics struct{}

func (fakeAnalytics) Dashboard(context.Context) (*analytics.Dashboard, error) {
	d := analytics.BuildDashboard(nil, time.Now())
	return &d, nil
}

func (fakeAnalytics) StudentProfiles(context.Context) ([]analytics.StudentProfile, error) {
	return analytics.BuildStudentProfiles([]*repo.Assessment{
		{UserID: "s-0042", TotalScore: 18, CreatedAt: time.Now()},
	}), nil
}

type fixture struct {
	app    *fiber.App
	tokens *pasetotoken.Manager
}

func newFixture(t *testing.T, c *fakeChat, v fakeVoice) *fixture {
	t.Helper()

	sym := paseto.NewV4SymmetricKey()
	keys := pasetotoken.Keys{Mode: pasetotoken.ModeLocal, Symmetric: &sym}
	mgr, err := pasetotoken.New(pasetotoken.Config{Mode: keys.Mode, Issuer: "iss", Audience: "aud"}, keys)
	require.NoError(t, err)

	authz, err := authorize.NewFromCentral(context.Background(), config.AuthorizationConfig{}, nil)
	require.NoError(t, err)

	r := NewRouter(Params{
		Cfg:           &config.Config{},
		Auth:          authz,
		PasetoMgr:     mgr,
		AssessmentSvc: fakeAssessments{},
		ChatSvc:       c,
		VoiceSvc:      v,
		StressSvc:     fakeStress{},
		AnalyticsSvc:  fakeAnalytics{},
	})
	app := fiber.New()
	r.Register(app)
	return &fixture{app: app, tokens: mgr}
}

func (f *fixture) do(t *testing.T, method, path, body, token string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestChat_CrisisReply(t *testing.T) {
	f := newFixture(t, &fakeChat{}, fakeVoice{})

	status, body := f.do(t, http.MethodPost, "/chat", `{"userId":"u1","message":"I want to die"}`, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, safety.CrisisReply, body["reply"])
	assert.Equal(t, true, body["flagged"])
}

func TestChat_MissingFields(t *testing.T) {
	f := newFixture(t, &fakeChat{}, fakeVoice{})

	status, body := f.do(t, http.MethodPost, "/chat", `{"userId":"u1"}`, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["error"])
}

func TestChat_FallbackOnFailure(t *testing.T) {
	f := newFixture(t, &fakeChat{sendErr: &chat.FallbackError{
		Kind:   chat.ErrGenerationFailed,
		Reason: genai.ReasonUnavailable,
		Reply:  genai.FallbackReply(genai.ReasonUnavailable),
	}}, fakeVoice{})

	status, body := f.do(t, http.MethodPost, "/chat", `{"userId":"u1","message":"hello"}`, "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, genai.ErrorMessage(genai.ReasonUnavailable), body["error"])
	assert.Equal(t, genai.FallbackReply(genai.ReasonUnavailable), body["reply"])
}

func TestSummarize(t *testing.T) {
	f := newFixture(t, &fakeChat{}, fakeVoice{})
	status, body := f.do(t, http.MethodPost, "/summarize/u1", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "summary for u1", body["summary"])
	assert.Equal(t, "2026-01-02T03:04:05Z", body["startDate"])

	f = newFixture(t, &fakeChat{sumErr: chat.ErrNoHistory}, fakeVoice{})
	status, _ = f.do(t, http.MethodPost, "/summarize/u1", "", "")
	assert.Equal(t, http.StatusNotFound, status)

	f = newFixture(t, &fakeChat{sumErr: &chat.FallbackError{Kind: chat.ErrSummaryFailed, Err: errors.New("x")}}, fakeVoice{})
	status, body = f.do(t, http.MethodPost, "/summarize/u1", "", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotContains(t, body, "reply")
}

func TestAssessments(t *testing.T) {
	f := newFixture(t, &fakeChat{}, fakeVoice{})

	status, _ := f.do(t, http.MethodGet, "/api/v1/assessments/forms/phq9", "", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = f.do(t, http.MethodGet, "/api/v1/assessments/forms/bdi", "", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body := f.do(t, http.MethodPost, "/api/v1/assessments", `{"userId":"u","assessmentType":"gad7","responses":{"gad7_1":9}}`, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "gad7_1")
}

func TestVoice_Unavailable(t *testing.T) {
	f := newFixture(t, &fakeChat{}, fakeVoice{err: voice.ErrModelUnavailable})
	status, _ := f.do(t, http.MethodPost, "/api/v1/voice-emotion", `{"userId":"u","audioData":"a"}`, "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestStress_Created(t *testing.T) {
	f := newFixture(t, &fakeChat{}, fakeVoice{})
	status, body := f.do(t, http.MethodPost, "/api/v1/stress-checkins",
		`{"userId":"u","academicEventId":"6f1c2a34-1d2e-4f50-9a6b-7c8d9e0f1a2b","stressLevel":5,"confidenceLevel":1}`, "")
	assert.Equal(t, http.StatusCreated, status)
	data := body["data"].(map[string]any)
	assert.Len(t, data["tips"], 6)
}

func TestStaffRoutes_RBAC(t *testing.T) {
	f := newFixture(t, &fakeChat{}, fakeVoice{})

	student, err := f.tokens.Issue("s1", "student")
	require.NoError(t, err)
	counselor, err := f.tokens.Issue("c1", "counselor")
	require.NoError(t, err)
	admin, err := f.tokens.Issue("a1", "admin")
	require.NoError(t, err)

	paths := []string{
		"/api/v1/admin/dashboard",
		"/api/v1/admin/students",
		"/api/v1/admin/flagged",
		"/api/v1/users/s1/assessments",
		"/api/v1/users/s1/chat",
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			status, _ := f.do(t, http.MethodGet, p, "", "")
			assert.Equal(t, http.StatusUnauthorized, status)

			status, _ = f.do(t, http.MethodGet, p, "", "garbage")
			assert.Equal(t, http.StatusUnauthorized, status)

			status, _ = f.do(t, http.MethodGet, p, "", student)
			assert.Equal(t, http.StatusForbidden, status)

			status, _ = f.do(t, http.MethodGet, p, "", counselor)
			assert.Equal(t, http.StatusOK, status)

			status, _ = f.do(t, http.MethodGet, p, "", admin)
			assert.Equal(t, http.StatusOK, status)
		})
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t, &fakeChat{}, fakeVoice{})
	for _, p := range []string{"/livez", "/readyz", "/startupz"} {
		status, _ := f.do(t, http.MethodGet, p, "", "")
		assert.Equal(t, http.StatusOK, status, p)
	}
}

func TestStudentProfilesRoute(t *testing.T) {
	f := newFixture(t, &fakeChat{}, fakeVoice{})
	counselor, err := f.tokens.Issue("c1", "counselor")
	require.NoError(t, err)

	status, body := f.do(t, http.MethodGet, "/api/v1/admin/students", "", counselor)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	first := data[0].(map[string]any)
	assert.Equal(t, "Student0042", first["displayName"])
	assert.Equal(t, "high", first["riskLevel"])
	assert.Equal(t, float64(40), first["wellnessScore"])
}

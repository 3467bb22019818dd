package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/mindwell_backend/internal/repo"
	"github.com/Alijeyrad/mindwell_backend/internal/service/alerts"
)

type recordingPublisher struct {
	subjects []string
	payloads [][]byte
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}

func newService(t *testing.T) (Service, sqlmock.Sqlmock, *recordingPublisher) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pub := &recordingPublisher{}
	return New(repo.NewClient(db), pub, nil, nil), mock, pub
}

func TestSubmit_SevereIsFlaggedAndPublished(t *testing.T) {
	svc, mock, pub := newService(t)
	form, _ := Lookup(FormPHQ9)

	mock.ExpectExec(`INSERT INTO mental_health_assessments`).
		WithArgs(sqlmock.AnyArg(), "student-1", FormPHQ9, sqlmock.AnyArg(), 27,
			"severe", RecommendUrgentContact, true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sub, err := svc.Submit(context.Background(), SubmitRequest{
		UserID:         " student-1 ",
		AssessmentType: FormPHQ9,
		Responses:      fill(form, 3),
	})
	require.NoError(t, err)
	assert.True(t, sub.Result.Flagged)
	assert.True(t, sub.Assessment.FlaggedForIntervention)
	assert.Equal(t, RecommendationText(RecommendUrgentContact), sub.Message)
	assert.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, pub.subjects, 1)
	assert.Equal(t, "mindwell.assessment.flagged", pub.subjects[0])
	var ev alerts.FlagEvent
	require.NoError(t, json.Unmarshal(pub.payloads[0], &ev))
	assert.Equal(t, "severe", ev.Severity)
}

func TestSubmit_MildIsNotPublished(t *testing.T) {
	svc, mock, pub := newService(t)
	form, _ := Lookup(FormGAD7)

	mock.ExpectExec(`INSERT INTO mental_health_assessments`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sub, err := svc.Submit(context.Background(), SubmitRequest{
		UserID: "student-2", AssessmentType: FormGAD7, Responses: fill(form, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, SeverityMild, sub.Result.Severity)
	assert.Empty(t, pub.subjects)
}

func TestSubmit_ValidationHasNoSideEffects(t *testing.T) {
	svc, mock, pub := newService(t)
	form, _ := Lookup(FormGAD7)
	partial := fill(form, 1)
	delete(partial, "gad7_1")

	tests := []struct {
		name string
		req  SubmitRequest
		want error
	}{
		{"missing user", SubmitRequest{AssessmentType: FormGAD7, Responses: fill(form, 1)}, ErrMissingUser},
		{"unknown form", SubmitRequest{UserID: "u", AssessmentType: "bdi"}, ErrUnknownForm},
		{"partial", SubmitRequest{UserID: "u", AssessmentType: FormGAD7, Responses: partial}, ErrInvalidResponses},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidation(err))
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, pub.subjects)
}

func TestSubmit_StorageFailure(t *testing.T) {
	svc, mock, pub := newService(t)
	form, _ := Lookup(FormPHQ9)

	mock.ExpectExec(`INSERT INTO mental_health_assessments`).
		WillReturnError(errors.New("connection refused"))

	_, err := svc.Submit(context.Background(), SubmitRequest{
		UserID: "u", AssessmentType: FormPHQ9, Responses: fill(form, 3),
	})
	assert.ErrorIs(t, err, ErrAssessmentStorage)
	assert.False(t, IsValidation(err))
	assert.Empty(t, pub.subjects, "nothing is published when the row was not stored")
}

func TestListByUser_RequiresUser(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.ListByUser(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrMissingUser)
}

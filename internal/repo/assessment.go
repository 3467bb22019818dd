package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Assessment is one stored questionnaire submission with its derived score.
type Assessment struct {
	ID                     uuid.UUID      `json:"id"`
	UserID                 string         `json:"userId"`
	AssessmentType         string         `json:"assessmentType"`
	Responses              map[string]int `json:"responses"`
	TotalScore             int            `json:"totalScore"`
	SeverityLevel          string         `json:"severityLevel"`
	Recommendations        string         `json:"recommendations"`
	FlaggedForIntervention bool           `json:"flaggedForIntervention"`
	CreatedAt              time.Time      `json:"createdAt"`
}

type AssessmentRepo struct {
	db  *sql.DB
	now func() time.Time
}

const assessmentColumns = `id, user_id, assessment_type, responses, total_score,
	severity_level, recommendations, flagged_for_intervention, created_at`

// Create fills in ID and CreatedAt when they are zero.
func (r *AssessmentRepo) Create(ctx context.Context, a *Assessment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.now()
	}

	responses, err := json.Marshal(a.Responses)
	if err != nil {
		return fmt.Errorf("encode responses: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO mental_health_assessments (`+assessmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.UserID, a.AssessmentType, responses, a.TotalScore,
		a.SeverityLevel, a.Recommendations, a.FlaggedForIntervention, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

// ListByUser returns a user's assessments oldest first.
func (r *AssessmentRepo) ListByUser(ctx context.Context, userID string) ([]*Assessment, error) {
	return r.query(ctx, `
		SELECT `+assessmentColumns+`
		FROM mental_health_assessments
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC`, userID)
}

// ListSince returns assessments created after since, newest first.
func (r *AssessmentRepo) ListSince(ctx context.Context, since time.Time) ([]*Assessment, error) {
	return r.query(ctx, `
		SELECT `+assessmentColumns+`
		FROM mental_health_assessments
		WHERE created_at > $1
		ORDER BY created_at DESC`, since)
}

// ListLatestPerUser returns up to n most recent assessments for every user,
// each user's rows newest first.
func (r *AssessmentRepo) ListLatestPerUser(ctx context.Context, n int) ([]*Assessment, error) {
	if n <= 0 {
		n = 1
	}
	return r.query(ctx, `
		SELECT `+assessmentColumns+`
		FROM (
			SELECT *, ROW_NUMBER() OVER (PARTITION BY user_id ORDER BY created_at DESC, id DESC) AS rn
			FROM mental_health_assessments
		) ranked
		WHERE rn <= $1
		ORDER BY user_id ASC, created_at DESC`, n)
}

// AssessmentTotals are table-wide aggregates.
type AssessmentTotals struct {
	Assessments int
	Students    int
	Flagged     int
	ScoreSum    int
	// Severity counts rows per tier. Rows without a tier count as minimal.
	Severity map[string]int
}

func (r *AssessmentRepo) Totals(ctx context.Context) (AssessmentTotals, error) {
	t := AssessmentTotals{Severity: make(map[string]int)}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(DISTINCT user_id),
		       COUNT(*) FILTER (WHERE flagged_for_intervention),
		       COALESCE(SUM(total_score), 0)
		FROM mental_health_assessments`,
	).Scan(&t.Assessments, &t.Students, &t.Flagged, &t.ScoreSum)
	if err != nil {
		return AssessmentTotals{}, fmt.Errorf("assessment totals: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT COALESCE(NULLIF(severity_level, ''), 'minimal'), COUNT(*)
		FROM mental_health_assessments
		GROUP BY 1`)
	if err != nil {
		return AssessmentTotals{}, fmt.Errorf("severity totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			sev string
			n   int
		)
		if err := rows.Scan(&sev, &n); err != nil {
			return AssessmentTotals{}, fmt.Errorf("scan severity total: %w", err)
		}
		t.Severity[sev] = n
	}
	if err := rows.Err(); err != nil {
		return AssessmentTotals{}, fmt.Errorf("iterate severity totals: %w", err)
	}
	return t, nil
}

// UserAssessmentStats summarises one user's whole assessment history.
type UserAssessmentStats struct {
	UserID      string
	Count       int
	EverFlagged bool
	LastAt      time.Time
}

// UserStats returns one row per user that has at least one assessment.
func (r *AssessmentRepo) UserStats(ctx context.Context) ([]UserAssessmentStats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, COUNT(*), BOOL_OR(flagged_for_intervention), MAX(created_at)
		FROM mental_health_assessments
		GROUP BY user_id
		ORDER BY user_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query user stats: %w", err)
	}
	defer rows.Close()

	var out []UserAssessmentStats
	for rows.Next() {
		var s UserAssessmentStats
		if err := rows.Scan(&s.UserID, &s.Count, &s.EverFlagged, &s.LastAt); err != nil {
			return nil, fmt.Errorf("scan user stats: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user stats: %w", err)
	}
	return out, nil
}

// ListFlagged returns the most recent flagged assessments.
func (r *AssessmentRepo) ListFlagged(ctx context.Context, limit int) ([]*Assessment, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return r.query(ctx, `
		SELECT `+assessmentColumns+`
		FROM mental_health_assessments
		WHERE flagged_for_intervention
		ORDER BY created_at DESC
		LIMIT $1`, limit)
}

func (r *AssessmentRepo) query(ctx context.Context, q string, args ...any) ([]*Assessment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var out []*Assessment
	for rows.Next() {
		var (
			a         Assessment
			responses []byte
		)
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.AssessmentType, &responses, &a.TotalScore,
			&a.SeverityLevel, &a.Recommendations, &a.FlaggedForIntervention, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		if len(responses) > 0 {
			if err := json.Unmarshal(responses, &a.Responses); err != nil {
				return nil, fmt.Errorf("decode responses for %s: %w", a.ID, err)
			}
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessments: %w", err)
	}
	return out, nil
}

package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/mindwell_backend/pkg/crypto"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSummary   Role = "summary"
)

// ChatTurn is one entry of a user's append-only chat log.
type ChatTurn struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Flagged   bool      `json:"flagged"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatTurnRepo struct {
	db     *sql.DB
	cipher *crypto.Cipher
}

// Append stores a turn and sets its ID and CreatedAt. Both come from
// Postgres so turns from different instances keep submission order.
func (r *ChatTurnRepo) Append(ctx context.Context, t *ChatTurn) error {
	content, err := r.cipher.Seal(t.Content)
	if err != nil {
		return fmt.Errorf("seal chat turn: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO chat_turns (user_id, role, content, flagged)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		t.UserID, string(t.Role), content, t.Flagged,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert chat turn: %w", err)
	}
	return nil
}

// ListByUser returns the full log in insertion order.
func (r *ChatTurnRepo) ListByUser(ctx context.Context, userID string) ([]*ChatTurn, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, role, content, flagged, created_at
		FROM chat_turns
		WHERE user_id = $1
		ORDER BY id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query chat turns: %w", err)
	}
	defer rows.Close()

	var out []*ChatTurn
	for rows.Next() {
		var (
			t    ChatTurn
			role string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &role, &t.Content, &t.Flagged, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat turn: %w", err)
		}
		t.Role = Role(role)
		if t.Content, err = r.cipher.Open(t.Content); err != nil {
			return nil, fmt.Errorf("open chat turn %d: %w", t.ID, err)
		}
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat turns: %w", err)
	}
	return out, nil
}

// ChatSummary is a generated digest covering StartDate..EndDate of a chat log.
type ChatSummary struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatSummaryRepo struct {
	db     *sql.DB
	cipher *crypto.Cipher
	now    func() time.Time
}

func (r *ChatSummaryRepo) Create(ctx context.Context, s *ChatSummary) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = r.now()
	}

	text, err := r.cipher.Seal(s.Text)
	if err != nil {
		return fmt.Errorf("seal summary: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO chat_summaries (id, user_id, start_date, end_date, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.UserID, s.StartDate, s.EndDate, text, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}
	return nil
}

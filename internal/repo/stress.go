package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/mindwell_backend/pkg/crypto"
)

// StressCheckin records how a student feels about an upcoming academic event.
type StressCheckin struct {
	ID                 uuid.UUID `json:"id"`
	UserID             string    `json:"userId"`
	AcademicEventID    uuid.UUID `json:"academicEventId"`
	StressLevel        int       `json:"stressLevel"`
	ConfidenceLevel    int       `json:"confidenceLevel"`
	AdditionalConcerns *string   `json:"additionalConcerns,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

type StressRepo struct {
	db     *sql.DB
	cipher *crypto.Cipher
	now    func() time.Time
}

// Create seals AdditionalConcerns before it is written. s keeps the plain text.

func (r *StressRepo) Create(ctx context.Context, s *StressCheckin) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = r.now()
	}

	var concerns *string
	if s.AdditionalConcerns != nil {
		sealed, err := r.cipher.Seal(*s.AdditionalConcerns)
		if err != nil {
			return fmt.Errorf("seal stress concerns: %w", err)
		}
		concerns = &sealed
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stress_assessments
			(id, user_id, academic_event_id, stress_level, confidence_level, additional_concerns, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.UserID, s.AcademicEventID, s.StressLevel, s.ConfidenceLevel, concerns, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stress check-in: %w", err)
	}
	return nil
}

// Package repo persists assessments, chat turns, summaries and stress
// check-ins in Postgres.
package repo

import (
	"database/sql"
	"errors"
	"time"

	"github.com/Alijeyrad/mindwell_backend/pkg/crypto"
)

var ErrNotFound = errors.New("not found")

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}

// Client groups the table repositories over one connection pool.
type Client struct {
	db *sql.DB

	Assessment  *AssessmentRepo
	ChatTurn    *ChatTurnRepo
	ChatSummary *ChatSummaryRepo
	Stress      *StressRepo
}

type Option func(*options)

type options struct {
	cipher *crypto.Cipher
	now    func() time.Time
}

// WithCipher seals chat turn and summary text before it is written.
func WithCipher(c *crypto.Cipher) Option {
	return func(o *options) { o.cipher = c }
}

// WithClock overrides the timestamp source used for created_at.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func NewClient(db *sql.DB, opts ...Option) *Client {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		db:          db,
		Assessment:  &AssessmentRepo{db: db, now: o.now},
		ChatTurn:    &ChatTurnRepo{db: db, cipher: o.cipher},
		ChatSummary: &ChatSummaryRepo{db: db, cipher: o.cipher, now: o.now},
		Stress:      &StressRepo{db: db, cipher: o.cipher, now: o.now},
	}
}

func (c *Client) DB() *sql.DB { return c.db }

func (c *Client) Close() error { return c.db.Close() }

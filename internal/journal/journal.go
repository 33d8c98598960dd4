// Package journal records what happens during a game: accepted commands,
// phase transitions, order effects and failed actions. Entries go to a
// file, Redis or Postgres.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Kind classifies a journal entry.
type Kind string

const (
	KindCommand    Kind = "command"
	KindTransition Kind = "transition"
	KindOrder      Kind = "order"
	KindAction     Kind = "action"
)

// Entry is one journaled event.
type Entry struct {
	Session string    `json:"session"`
	Seq     int64     `json:"seq"`
	Kind    Kind      `json:"kind"`
	Phase   string    `json:"phase"`
	Player  string    `json:"player,omitempty"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Journal stores entries.
type Journal interface {
	Record(ctx context.Context, e Entry) error
	Close() error
}

// Nop discards every entry.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }
func (Nop) Close() error                        { return nil }

// Multi fans entries out to several journals.
type Multi []Journal

func (m Multi) Record(ctx context.Context, e Entry) error {
	var errs []error
	for _, j := range m {
		if err := j.Record(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, j := range m {
		if err := j.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder stamps entries with a session id, a sequence number and a time
// before handing them to a Journal. Journal failures are logged, not
// returned, so a broken backend never stops a game.
type Recorder struct {
	j       Journal
	session string
	seq     int64
	now     func() time.Time
}

// NewRecorder starts a new session on j. A nil j records nothing.
func NewRecorder(j Journal) *Recorder {
	if j == nil {
		j = Nop{}
	}
	return &Recorder{j: j, session: uuid.NewString(), now: func() time.Time { return time.Now().UTC() }}
}

// Session returns the current session id.
func (r *Recorder) Session() string { return r.session }

// NewSession starts a fresh session, used when a game is replayed.
func (r *Recorder) NewSession() string {
	r.session = uuid.NewString()
	r.seq = 0
	return r.session
}

// Record journals one event.
func (r *Recorder) Record(ctx context.Context, kind Kind, phase, player, message string) {
	r.seq++
	e := Entry{
		Session: r.session,
		Seq:     r.seq,
		Kind:    kind,
		Phase:   phase,
		Player:  player,
		Message: message,
		At:      r.now(),
	}
	if err := r.j.Record(ctx, e); err != nil {
		log.Warn().Err(err).Str("session", r.session).Int64("seq", r.seq).Msg("Failed to journal entry")
	}
}

// Close closes the underlying journal.
func (r *Recorder) Close() error {
	return r.j.Close()
}

package journal

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// FileJournal appends entries to a file as JSON lines.
type FileJournal struct {
	f   *os.File
	w   *errWriter
	log zerolog.Logger
}

// errWriter keeps the last write error, which zerolog does not return.
type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if err != nil {
		w.err = err
	}
	return n, err
}

// OpenFile opens path for appending, creating it if needed.
func OpenFile(path string) (*FileJournal, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	w := &errWriter{w: f}
	return &FileJournal{f: f, w: w, log: zerolog.New(w)}, nil
}

func (j *FileJournal) Record(_ context.Context, e Entry) error {
	j.w.err = nil
	ev := j.log.Log().
		Str("session", e.Session).
		Int64("seq", e.Seq).
		Str("kind", string(e.Kind)).
		Str("phase", e.Phase).
		Str("at", e.At.UTC().Format(time.RFC3339Nano))
	if e.Player != "" {
		ev = ev.Str("player", e.Player)
	}
	ev.Msg(e.Message)
	if j.w.err != nil {
		return fmt.Errorf("write journal entry %d: %w", e.Seq, j.w.err)
	}
	return nil
}

func (j *FileJournal) Close() error {
	return j.f.Close()
}

// ReadFile parses a journal file written by FileJournal.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read journal %s: %w", path, err)
	}
	return entries, nil
}

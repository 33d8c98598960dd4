package engine

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lucasadilla/COMP345---RISK/internal/command"
)

func TestAutoSignals(t *testing.T) {
	a := AutoSignals{MaxRounds: 3}
	ctx := context.Background()
	tests := []struct {
		round   Round
		wantWin bool
	}{
		{Round{Number: 1, Players: []string{"A", "B"}}, false},
		{Round{Number: 3, Players: []string{"A", "B"}}, true},
		{Round{Number: 1, Players: []string{"A"}}, true},
		{Round{Number: 1}, true},
	}
	for _, tt := range tests {
		if err := a.EndIssuing(ctx, tt.round); err != nil {
			t.Errorf("EndIssuing: %v", err)
		}
		win, err := a.EndExecution(ctx, tt.round)
		if err != nil || win != tt.wantWin {
			t.Errorf("round %d with %v: got %v, %v; want %v", tt.round.Number, tt.round.Players, win, err, tt.wantWin)
		}
	}

	unlimited := AutoSignals{}
	if win, _ := unlimited.EndExecution(ctx, Round{Number: 1000, Players: []string{"A", "B"}}); win {
		t.Error("MaxRounds 0 should never stop the game")
	}
}

func TestRoundLeader(t *testing.T) {
	r := Round{Players: []string{"A", "B", "C"}, Owned: map[string]int{"A": 2, "B": 5, "C": 1}}
	if got := r.Leader(); got != "B" {
		t.Errorf("leader: got %q, want B", got)
	}
	r.Owned["C"] = 5
	if got := r.Leader(); got != "" {
		t.Errorf("tie: got %q, want empty", got)
	}
	if got := (Round{Players: []string{"Solo"}}).Leader(); got != "Solo" {
		t.Errorf("sole survivor: got %q", got)
	}
}

func TestConsoleSignals(t *testing.T) {
	var out bytes.Buffer
	r := &lineReader{lines: []string{
		"win",            // not an edge out of issue orders
		"endissueorders", // ends issuing
		"endissueorders", // not an edge out of execute orders
		"execorder",      // an edge, but not an end signal
		"endexecorders",  // next round
		"WIN",            // game over
	}}
	c := NewConsoleSignals(r, &out)
	ctx := context.Background()
	round := Round{Number: 1, Players: []string{"A", "B"}}

	if err := c.EndIssuing(ctx, round); err != nil {
		t.Fatalf("EndIssuing: %v", err)
	}
	win, err := c.EndExecution(ctx, round)
	if err != nil || win {
		t.Errorf("first execution: got %v, %v; want false", win, err)
	}
	win, err = c.EndExecution(ctx, Round{Number: 2, Players: []string{"A"}})
	if err != nil || !win {
		t.Errorf("second execution: got %v, %v; want true", win, err)
	}
	if !strings.Contains(out.String(), "only A remains") {
		t.Errorf("output:\n%s", out.String())
	}
	if strings.Count(out.String(), "is not valid now") != 3 {
		t.Errorf("rejections:\n%s", out.String())
	}

	if err := c.EndIssuing(ctx, round); !errors.Is(err, command.ErrStreamExhausted) {
		t.Errorf("exhausted: got %v", err)
	}
}

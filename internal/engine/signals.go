package engine

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/lucasadilla/COMP345---RISK/internal/command"
	"github.com/lucasadilla/COMP345---RISK/pkg/warzone"
)

// Round summarizes the game at the end of an issuing or execution round.
type Round struct {
	Number  int
	Players []string       // active players in play order
	Owned   map[string]int // territories held per active player
}

// Leader returns the active player holding the most territories, or "" on a tie.
func (r Round) Leader() string {
	best, most, tie := "", -1, false
	for _, p := range r.Players {
		switch n := r.Owned[p]; {
		case n > most:
			best, most, tie = p, n, false
		case n == most:
			tie = true
		}
	}
	if tie {
		return ""
	}
	return best
}

// Signals decides when an issuing round ends and whether an execution round
// ends the game.
type Signals interface {
	EndIssuing(ctx context.Context, r Round) error
	EndExecution(ctx context.Context, r Round) (win bool, err error)
}

// AutoSignals ends every round immediately. The game is won when one player
// remains or after MaxRounds rounds; zero means no limit.
type AutoSignals struct {
	MaxRounds int
}

func (AutoSignals) EndIssuing(context.Context, Round) error { return nil }

func (a AutoSignals) EndExecution(_ context.Context, r Round) (bool, error) {
	if len(r.Players) <= 1 {
		return true, nil
	}
	return a.MaxRounds > 0 && r.Number >= a.MaxRounds, nil
}

// ConsoleSignals waits for the end-of-round keywords to be typed.
type ConsoleSignals struct {
	reader command.RawReader
	out    io.Writer
	table  *warzone.TransitionTable
}

// NewConsoleSignals reads keywords from reader and prompts on out.
func NewConsoleSignals(reader command.RawReader, out io.Writer) *ConsoleSignals {
	if out == nil {
		out = io.Discard
	}
	return &ConsoleSignals{reader: reader, out: out, table: warzone.DefaultTransitionTable()}
}

func (c *ConsoleSignals) EndIssuing(ctx context.Context, r Round) error {
	fmt.Fprintf(c.out, "Round %d: all orders issued.\n", r.Number)
	_, err := c.wait(ctx, warzone.PhaseIssueOrders, warzone.KeywordEndIssueOrders)
	return err
}

func (c *ConsoleSignals) EndExecution(ctx context.Context, r Round) (bool, error) {
	if len(r.Players) <= 1 {
		fmt.Fprintf(c.out, "Round %d: only %s remains.\n", r.Number, strings.Join(r.Players, ""))
	} else {
		fmt.Fprintf(c.out, "Round %d: all orders executed.\n", r.Number)
	}
	kw, err := c.wait(ctx, warzone.PhaseExecuteOrders, warzone.KeywordEndExecOrders, warzone.KeywordWin)
	return kw == warzone.KeywordWin, err
}

// wait reads until one of accepted is typed. Every accepted keyword must be
// an edge out of from.
func (c *ConsoleSignals) wait(ctx context.Context, from warzone.Phase, accepted ...string) (string, error) {
	for {
		fmt.Fprintf(c.out, "Type %s to continue.\n", strings.Join(accepted, " or "))
		kw, _, err := c.reader.ReadRaw(ctx)
		if err != nil {
			return "", err
		}
		if _, ok := c.table.Next(from, kw); ok && slices.Contains(accepted, kw) {
			return kw, nil
		}
		fmt.Fprintf(c.out, "%q is not valid now (phase: %s).\n", kw, from)
	}
}

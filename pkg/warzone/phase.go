package warzone

import (
	"fmt"
	"slices"
)

// Phase is one stage of game progression, from setup through play to termination.
type Phase int

const (
	PhaseStart               Phase = iota // No map loaded yet
	PhaseMapLoaded                        // A map file has been parsed
	PhaseMapValidated                     // The loaded map passed validation
	PhasePlayersAdded                     // At least one player registered
	PhaseAssignReinforcement              // Reinforcement pools are granted
	PhaseIssueOrders                      // Players queue orders
	PhaseExecuteOrders                    // Queued orders are carried out
	PhaseWin                              // A winner has been determined
	PhaseFinished                         // Terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMapLoaded:
		return "map loaded"
	case PhaseMapValidated:
		return "map validated"
	case PhasePlayersAdded:
		return "players added"
	case PhaseAssignReinforcement:
		return "assign reinforcement"
	case PhaseIssueOrders:
		return "issue orders"
	case PhaseExecuteOrders:
		return "execute orders"
	case PhaseWin:
		return "win"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Engine keywords. These are the wire format between the command pipeline
// and the phase machine.
const (
	KeywordLoadMap         = "loadmap"
	KeywordValidateMap     = "validatemap"
	KeywordAddPlayer       = "addplayer"
	KeywordAssignCountries = "assigncountries"
	KeywordIssueOrder      = "issueorder"
	KeywordEndIssueOrders  = "endissueorders"
	KeywordExecOrder       = "execorder"
	KeywordEndExecOrders   = "endexecorders"
	KeywordWin             = "win"
	KeywordPlay            = "play"
	KeywordEnd             = "end"
)

// Transition is a single allowed edge of the phase machine.
type Transition struct {
	From    Phase
	Keyword string
	To      Phase
}

// DefaultTransitions is the reference phase machine.
var DefaultTransitions = []Transition{
	// Startup
	{From: PhaseStart, Keyword: KeywordLoadMap, To: PhaseMapLoaded},
	{From: PhaseMapLoaded, Keyword: KeywordLoadMap, To: PhaseMapLoaded},
	{From: PhaseMapLoaded, Keyword: KeywordValidateMap, To: PhaseMapValidated},
	{From: PhaseMapValidated, Keyword: KeywordAddPlayer, To: PhasePlayersAdded},
	{From: PhasePlayersAdded, Keyword: KeywordAddPlayer, To: PhasePlayersAdded},

	// Play
	{From: PhasePlayersAdded, Keyword: KeywordAssignCountries, To: PhaseAssignReinforcement},
	{From: PhaseAssignReinforcement, Keyword: KeywordIssueOrder, To: PhaseIssueOrders},
	{From: PhaseIssueOrders, Keyword: KeywordIssueOrder, To: PhaseIssueOrders},
	{From: PhaseIssueOrders, Keyword: KeywordEndIssueOrders, To: PhaseExecuteOrders},
	{From: PhaseExecuteOrders, Keyword: KeywordExecOrder, To: PhaseExecuteOrders},
	{From: PhaseExecuteOrders, Keyword: KeywordEndExecOrders, To: PhaseAssignReinforcement},
	{From: PhaseExecuteOrders, Keyword: KeywordWin, To: PhaseWin},

	// Terminal / replay
	{From: PhaseWin, Keyword: KeywordPlay, To: PhaseStart},
	{From: PhaseWin, Keyword: KeywordEnd, To: PhaseFinished},
}

type transitionKey struct {
	from    Phase
	keyword string
}

// TransitionTable maps (phase, keyword) to the next phase.
type TransitionTable struct {
	edges map[transitionKey]Phase
}

// NewTransitionTable builds a table from the given edges. Two edges with the
// same (From, Keyword) pair and different destinations are rejected.
func NewTransitionTable(transitions []Transition) (*TransitionTable, error) {
	t := &TransitionTable{edges: make(map[transitionKey]Phase, len(transitions))}
	for _, tr := range transitions {
		k := transitionKey{from: tr.From, keyword: tr.Keyword}
		if to, ok := t.edges[k]; ok && to != tr.To {
			return nil, fmt.Errorf("conflicting transition from %s on %q: %s and %s", tr.From, tr.Keyword, to, tr.To)
		}
		t.edges[k] = tr.To
	}
	return t, nil
}

// DefaultTransitionTable returns a table built from DefaultTransitions.
func DefaultTransitionTable() *TransitionTable {
	t, err := NewTransitionTable(DefaultTransitions)
	if err != nil {
		panic(err)
	}
	return t
}

// Next returns the destination of keyword from phase, if the edge exists.
func (t *TransitionTable) Next(from Phase, keyword string) (Phase, bool) {
	to, ok := t.edges[transitionKey{from: from, keyword: keyword}]
	return to, ok
}

// Keywords returns the keywords accepted from the given phase, sorted.
func (t *TransitionTable) Keywords(from Phase) []string {
	var kws []string
	for k := range t.edges {
		if k.from == from {
			kws = append(kws, k.keyword)
		}
	}
	slices.Sort(kws)
	return kws
}

// Len returns the number of edges in the table.
func (t *TransitionTable) Len() int {
	return len(t.edges)
}

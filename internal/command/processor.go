package command

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/lucasadilla/COMP345---RISK/pkg/warzone"
)

// PhaseChecker answers phase-legality questions from the engine's
// transition table.
type PhaseChecker interface {
	Phase() warzone.Phase
	CanApply(keyword string) bool
	Destination(keyword string) (warzone.Phase, bool)
	// Keywords lists the transition keywords legal in the current phase.
	Keywords() []string
}

// Rejection reasons reported to the user before re-reading.
const (
	msgUnknownCommand   = "Invalid command entered."
	msgIllegalInPhase   = "Command not valid in the current phase."
	msgMissingParameter = "Command requires a parameter."
	msgIgnoredParameter = "Command does not take a parameter. Ignoring."
)

// Processor turns raw reader input into commands that are legal in the
// engine's current phase. It keeps reading until one is.
type Processor struct {
	reader RawReader
	engine PhaseChecker
	out    io.Writer
}

// NewProcessor creates a Processor. Rejections are explained on out, which
// may be nil.
func NewProcessor(reader RawReader, engine PhaseChecker, out io.Writer) *Processor {
	if out == nil {
		out = io.Discard
	}
	return &Processor{reader: reader, engine: engine, out: out}
}

// Next returns the next valid command. Reader errors, including
// ErrStreamExhausted, are returned as-is so the caller can stop.
func (p *Processor) Next(ctx context.Context) (Command, error) {
	for {
		word, param, err := p.reader.ReadRaw(ctx)
		if err != nil {
			return Command{}, err
		}

		kind, ok := ParseKind(word)
		if !ok {
			p.reject(word, msgUnknownCommand)
			continue
		}

		if !p.engine.CanApply(kind.Transition()) {
			reason := fmt.Sprintf("%s (phase: %s)", msgIllegalInPhase, p.engine.Phase())
			if words := p.validWords(); len(words) > 0 {
				reason += " Valid: " + strings.Join(words, ", ") + "."
			}
			p.reject(word, reason)
			continue
		}

		if kind.NeedsParameter() {
			if param == "" {
				p.reject(word, msgMissingParameter)
				continue
			}
		} else if param != "" {
			fmt.Fprintln(p.out, msgIgnoredParameter)
			log.Debug().Str("command", word).Str("parameter", param).Msg("Ignoring parameter")
			param = ""
		}

		effect, ok := p.engine.Destination(kind.Transition())
		if !ok {
			// CanApply and Destination read the same table.
			p.reject(word, msgIllegalInPhase)
			continue
		}

		cmd := Command{kind: kind, parameter: param, effect: effect}
		log.Debug().Str("command", cmd.String()).Msg("Command accepted")
		return cmd, nil
	}
}

// validWords returns the command words the current phase accepts.
func (p *Processor) validWords() []string {
	var words []string
	for _, kw := range p.engine.Keywords() {
		for _, k := range Kinds {
			if k.Transition() == kw {
				words = append(words, k.Word())
			}
		}
	}
	return words
}

func (p *Processor) reject(word, reason string) {
	fmt.Fprintln(p.out, reason)
	log.Debug().Str("command", word).Str("reason", reason).Msg("Command rejected")
}

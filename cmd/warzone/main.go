// Command warzone plays Warzone games from the console or a command file.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/lucasadilla/COMP345---RISK/internal/command"
	"github.com/lucasadilla/COMP345---RISK/internal/config"
	"github.com/lucasadilla/COMP345---RISK/internal/engine"
	"github.com/lucasadilla/COMP345---RISK/internal/journal"
	"github.com/lucasadilla/COMP345---RISK/internal/logger"
	"github.com/lucasadilla/COMP345---RISK/internal/player"
	"github.com/lucasadilla/COMP345---RISK/internal/strategy"
	"github.com/lucasadilla/COMP345---RISK/pkg/warzone"
)

func main() {
	console := flag.Bool("console", false, "read commands from the console (default when -file is not set)")
	file := flag.String("file", "", "replay commands from a file")
	step := flag.Bool("step", false, "wait for endissueorders, endexecorders or win to be typed each round")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	_ = godotenv.Load()
	logger.Init(*debug)

	if *console && *file != "" {
		log.Fatal().Msg("-console and -file are mutually exclusive")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if cfg.RNGSeed != 0 {
		warzone.SeedRng(cfg.RNGSeed)
	}
	log.Info().Str("journal", cfg.Journal).Str("mapDir", cfg.MapDir).Int("maxRounds", cfg.MaxRounds).Msg("Config loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("Received shutdown signal")
		cancel()
		// A blocked console read never observes ctx.
		os.Stdin.Close()
	}()

	j, err := openJournal(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("journal", cfg.Journal).Msg("Journal unavailable")
	}
	rec := journal.NewRecorder(j)
	defer func() {
		if err := rec.Close(); err != nil {
			log.Warn().Err(err).Msg("Closing journal")
		}
	}()
	sessionLog := logger.ForSession(rec.Session())
	sessionLog.Info().Msg("Session started")

	stdin := bufio.NewReader(os.Stdin)
	var reader command.RawReader
	if *file != "" {
		fr, err := command.OpenFileReader(*file, os.Stdout)
		if err != nil {
			log.Fatal().Err(err).Msg("Command file unavailable")
		}
		defer fr.Close()
		reader = fr
	} else {
		reader = command.NewConsoleReader(stdin, os.Stdout)
	}

	var signals engine.Signals = engine.AutoSignals{MaxRounds: cfg.MaxRounds}
	if *step {
		signals = engine.NewConsoleSignals(command.NewConsoleReader(stdin, os.Stdout), os.Stdout)
	}

	humanConsole := &strategy.Console{In: stdin, Out: os.Stdout}
	eng := engine.New(cfg,
		engine.WithSignals(signals),
		engine.WithJournal(rec),
		engine.WithOutput(os.Stdout),
		engine.WithStrategies(func(name string) (player.Strategy, error) {
			return strategy.ForName(name, humanConsole)
		}),
	)
	proc := command.NewProcessor(reader, eng, os.Stdout)

	err = eng.Run(ctx, proc)
	switch {
	case err == nil:
		log.Info().Str("winner", eng.Winner()).Int("rounds", eng.Round()).Msg("Run completed")
	case errors.Is(err, command.ErrStreamExhausted):
		fmt.Println("No more commands.")
		log.Info().Str("phase", eng.Phase().String()).Msg("Command stream exhausted")
	case ctx.Err() != nil:
		log.Info().Str("phase", eng.Phase().String()).Msg("Interrupted")
	default:
		log.Error().Err(err).Str("phase", eng.Phase().String()).Msg("Game aborted")
		rec.Close()
		os.Exit(1)
	}
}

// openJournal returns the backend selected by cfg.Journal.
func openJournal(ctx context.Context, cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal {
	case config.JournalFile:
		return journal.OpenFile(cfg.JournalPath)
	case config.JournalRedis:
		return journal.NewRedisJournal(cfg.RedisURL)
	case config.JournalPostgres:
		return journal.OpenPostgres(ctx, cfg.DatabaseURL)
	case config.JournalNone:
		return journal.Nop{}, nil
	}
	return nil, fmt.Errorf("unknown journal backend %q", cfg.Journal)
}

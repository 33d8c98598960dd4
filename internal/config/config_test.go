package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"MIN_PLAYERS", "MAX_PLAYERS", "INITIAL_ARMIES", "JOURNAL", "DEFAULT_STRATEGY", "RNG_SEED", "CONTINENT_BONUS"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.MinPlayers != 2 || c.MaxPlayers != 6 || c.InitialArmies != 50 {
		t.Errorf("players/armies: got %d-%d/%d", c.MinPlayers, c.MaxPlayers, c.InitialArmies)
	}
	if c.Journal != JournalFile || c.JournalPath != "gamelog.txt" {
		t.Errorf("journal: got %s %s", c.Journal, c.JournalPath)
	}
	if c.ContinentBonus {
		t.Error("continent bonus should be off by default")
	}
	if c.DefaultStrategy != "human" || c.RNGSeed != 0 {
		t.Errorf("strategy/seed: got %s/%d", c.DefaultStrategy, c.RNGSeed)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MAX_PLAYERS", "4")
	t.Setenv("RNG_SEED", "42")
	t.Setenv("JOURNAL", "Redis")
	t.Setenv("DEFAULT_STRATEGY", "Aggressive")
	t.Setenv("INITIAL_ARMIES", "lots")
	t.Setenv("CONTINENT_BONUS", "true")
	c := Load()
	if !c.ContinentBonus {
		t.Error("CONTINENT_BONUS=true not applied")
	}
	if c.MaxPlayers != 4 || c.RNGSeed != 42 {
		t.Errorf("got max %d seed %d", c.MaxPlayers, c.RNGSeed)
	}
	if c.Journal != JournalRedis || c.DefaultStrategy != "aggressive" {
		t.Errorf("case folding: got %s %s", c.Journal, c.DefaultStrategy)
	}
	if c.InitialArmies != 50 {
		t.Errorf("bad number should fall back, got %d", c.InitialArmies)
	}
}

func TestLoadFromDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("MAX_ROUNDS=12\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("MAX_ROUNDS", "")
	os.Unsetenv("MAX_ROUNDS")
	if err := godotenv.Load(path); err != nil {
		t.Fatalf("load .env: %v", err)
	}
	if got := Load().MaxRounds; got != 12 {
		t.Errorf("MaxRounds: got %d, want 12", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"one player", func(c *Config) { c.MinPlayers = 1 }, false},
		{"max below min", func(c *Config) { c.MaxPlayers = 1 }, false},
		{"negative armies", func(c *Config) { c.InitialArmies = -1 }, false},
		{"zero rounds", func(c *Config) { c.MaxRounds = 0 }, false},
		{"bad journal", func(c *Config) { c.Journal = "kafka" }, false},
		{"postgres journal", func(c *Config) { c.Journal = JournalPostgres }, true},
	}
	for _, tt := range tests {
		c := Default()
		tt.mutate(c)
		if err := c.Validate(); (err == nil) != tt.ok {
			t.Errorf("%s: got %v, want ok=%v", tt.name, err, tt.ok)
		}
	}
}

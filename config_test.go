package margingame

import (
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	invalid := map[string]func(*Config){
		"zero margins":         func(c *Config) { c.MarginCount = 0 },
		"zero probabilities":   func(c *Config) { c.ProbCount = 0 },
		"zero spreads":         func(c *Config) { c.SpreadCount = 0 },
		"negative margin":      func(c *Config) { c.MarginLimit = -1 },
		"zero spread limit":    func(c *Config) { c.SpreadLimit = 0 },
		"NaN payoff":           func(c *Config) { c.DefenderNaivePayoffs.Detain = math.NaN() },
		"infinite payoff":      func(c *Config) { c.AttackerNaivePayoffs.Breach = math.Inf(1) },
		"negative coefficient": func(c *Config) { c.Costs.Spread = -0.1 },
	}

	for name, modify := range invalid {
		cfg := DefaultConfig()
		modify(&cfg)
		if err := cfg.Validate(); errors.Cause(err) != ErrConfig {
			t.Errorf("%s: expected config error, got %v", name, err)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "margingame")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.yaml")
	yamlConfig := `
margin_count: 3
margin_limit: 1.5
defender_naive_payoffs:
  quench: 5
  detain: 10
  breach: -50
costs:
  margin: 0.5
`
	if err := ioutil.WriteFile(path, []byte(yamlConfig), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MARGINGAME_SPREAD_COUNT", "2")
	t.Setenv("MARGINGAME_ATTACKER_BREACH", "25")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.MarginCount != 3 || cfg.MarginLimit != 1.5 {
		t.Errorf("margin axis not loaded from file: %+v", cfg)
	}
	if cfg.DefenderNaivePayoffs != (NaivePayoffs{Quench: 5, Detain: 10, Breach: -50}) {
		t.Errorf("got defender payoffs %+v", cfg.DefenderNaivePayoffs)
	}
	if cfg.Costs.Margin != 0.5 || cfg.Costs.Prob != 5 {
		t.Errorf("got costs %+v", cfg.Costs)
	}
	if cfg.SpreadCount != 2 || cfg.AttackerNaivePayoffs.Breach != 25 {
		t.Errorf("environment not applied: %+v", cfg)
	}
	if cfg.ProbCount != DefaultConfig().ProbCount {
		t.Errorf("default probability count not kept: %+v", cfg)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("MARGINGAME_MARGIN_COUNT", "0")
	if _, err := LoadConfig(""); errors.Cause(err) != ErrConfig {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestLoadConfig_BadEnv(t *testing.T) {
	t.Setenv("MARGINGAME_PROB_COUNT", "many")
	if _, err := LoadConfig(""); errors.Cause(err) != ErrConfig {
		t.Errorf("expected config error, got %v", err)
	}
}

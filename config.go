package margingame

import (
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// NaivePayoffs is a player's raw payoff for each outcome, before costs.
type NaivePayoffs struct {
	Quench float64 `yaml:"quench" env:"QUENCH"`
	Detain float64 `yaml:"detain" env:"DETAIN"`
	Breach float64 `yaml:"breach" env:"BREACH"`
}

// Dot returns the expected naive payoff under the given outcome probabilities.
func (np NaivePayoffs) Dot(p Outcomes) float64 {
	return np.Quench*p.Quench + np.Detain*p.Detain + np.Breach*p.Breach
}

func (np NaivePayoffs) isFinite() bool {
	return isFinite(np.Quench) && isFinite(np.Detain) && isFinite(np.Breach)
}

// CostCoefficients scale the cost of moving each parameter away from its baseline.
type CostCoefficients struct {
	Margin float64 `yaml:"margin" env:"MARGIN_COST_COEFF"`
	Prob   float64 `yaml:"prob" env:"PROB_COST_COEFF"`
	Spread float64 `yaml:"spread" env:"SPREAD_COST_COEFF"`
}

// Config describes the discretized margin game to build.
type Config struct {
	// Number of margins evaluated in the open interval (0, MarginLimit).
	MarginCount int     `yaml:"margin_count" env:"MARGIN_COUNT"`
	MarginLimit float64 `yaml:"margin_limit" env:"MARGIN_LIMIT"`
	// Number of target probabilities evaluated in (0, 1).
	ProbCount int `yaml:"prob_count" env:"PROB_COUNT"`
	// Number of spreads evaluated in the open interval (0, SpreadLimit).
	SpreadCount int     `yaml:"spread_count" env:"SPREAD_COUNT"`
	SpreadLimit float64 `yaml:"spread_limit" env:"SPREAD_LIMIT"`

	DefenderNaivePayoffs NaivePayoffs     `yaml:"defender_naive_payoffs" envPrefix:"DEFENDER_"`
	AttackerNaivePayoffs NaivePayoffs     `yaml:"attacker_naive_payoffs" envPrefix:"ATTACKER_"`
	Costs                CostCoefficients `yaml:"costs"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		MarginCount:          10,
		MarginLimit:          2,
		ProbCount:            4,
		SpreadCount:          4,
		SpreadLimit:          2,
		DefenderNaivePayoffs: NaivePayoffs{Quench: 0, Detain: 50, Breach: -150},
		AttackerNaivePayoffs: NaivePayoffs{Quench: 0, Detain: -150, Breach: 50},
		Costs:                CostCoefficients{Margin: 5, Prob: 5, Spread: 1},
	}
}

// LoadConfig starts from DefaultConfig, applies the YAML file at path (if
// path is non-empty), then any MARGINGAME_* environment variables, and
// validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}

		if err := yaml.Unmarshal(buf, &cfg); err != nil {
			return cfg, errors.Wrapf(ErrConfig, "parse %s: %v", path, err)
		}
	}

	opts := env.Options{Prefix: "MARGINGAME_"}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, errors.Wrapf(ErrConfig, "parse env: %v", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks that the configuration describes a non-empty grid with
// finite payoffs and non-negative cost coefficients.
func (c Config) Validate() error {
	if c.MarginCount < 1 {
		return errors.Wrapf(ErrConfig, "margin count %d must be at least 1", c.MarginCount)
	}
	if c.ProbCount < 1 {
		return errors.Wrapf(ErrConfig, "probability count %d must be at least 1", c.ProbCount)
	}
	if c.SpreadCount < 1 {
		return errors.Wrapf(ErrConfig, "spread count %d must be at least 1", c.SpreadCount)
	}
	if !(c.MarginLimit > 0) || math.IsInf(c.MarginLimit, 0) {
		return errors.Wrapf(ErrConfig, "margin limit %v must be positive", c.MarginLimit)
	}
	if !(c.SpreadLimit > 0) || math.IsInf(c.SpreadLimit, 0) {
		return errors.Wrapf(ErrConfig, "spread limit %v must be positive", c.SpreadLimit)
	}
	if !c.DefenderNaivePayoffs.isFinite() {
		return errors.Wrapf(ErrConfig, "defender naive payoffs %+v must be finite", c.DefenderNaivePayoffs)
	}
	if !c.AttackerNaivePayoffs.isFinite() {
		return errors.Wrapf(ErrConfig, "attacker naive payoffs %+v must be finite", c.AttackerNaivePayoffs)
	}
	for _, k := range []float64{c.Costs.Margin, c.Costs.Prob, c.Costs.Spread} {
		if !(k >= 0) || math.IsInf(k, 0) {
			return errors.Wrapf(ErrConfig, "cost coefficients %+v must be finite and non-negative", c.Costs)
		}
	}

	return nil
}

// NaivePayoffs returns the naive payoffs of the given player.
func (c Config) NaivePayoffs(player Player) NaivePayoffs {
	if player == Defender {
		return c.DefenderNaivePayoffs
	}
	return c.AttackerNaivePayoffs
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

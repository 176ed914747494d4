package cpfolio

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

// Config is the full configuration surface: the holdings to evaluate and
// every constant the engine applies to them. Nothing in the engine is
// hardcoded; synthetic values can be injected for testing.
//
// Decimal fields are TOML strings ("0.0018") so rates survive parsing exactly.
type Config struct {
	Currency   string       `toml:"currency"`
	Holdings   []Holding    `toml:"holdings"`
	Fees       FeeSchedule  `toml:"fees"`
	CPF        CPFSchedule  `toml:"cpf"`
	Thresholds Thresholds   `toml:"thresholds"`
	Dividends  []Dividend   `toml:"dividends"`
	Signals    SignalConfig `toml:"signals"`
	Risk       RiskConfig   `toml:"risk"`
	Push       PushConfig   `toml:"push"`
	Assist     AssistConfig `toml:"assist"`

	News         NewsConfig         `toml:"news"`
	Fundamentals FundamentalsConfig `toml:"fundamentals"`
}

// Dividend records cash received from a position, kept outside net P&L so the
// sale economics stay comparable across holdings.
type Dividend struct {
	Name   string          `toml:"name"`
	Amount decimal.Decimal `toml:"amount"`
}

// AssistConfig selects the model used by the assist command.
type AssistConfig struct {
	Model string `toml:"model"`
}

// NewDefaultConfig returns a Config loaded with the DBS Vickers cash-upfront
// fee schedule, the CPF OA rate, and the standard suggestion thresholds. The
// holding list is empty; it only ever comes from a config file.
func NewDefaultConfig() *Config {
	return &Config{
		Currency: "SGD",
		Fees: FeeSchedule{
			CommissionRate: dec("0.0018"),
			MinCommission:  dec("27.25"),
			ClearingRate:   dec("0.000325"),
			TradingRate:    dec("0.000075"),
			SettlementFee:  dec("0.35"),
		},
		CPF: CPFSchedule{
			AnnualRate: dec("0.035"),
		},
		Thresholds: Thresholds{
			StopLoss:     dec("0.05"),
			NearTarget:   dec("0.005"),
			TargetReturn: dec("0.10"),
		},
		Signals: SignalConfig{
			Bars: 60,
			Weights: SignalWeights{
				RSIStrong:  5,
				RSIWeak:    -5,
				MACDGolden: 15,
				MACDDeath:  -15,
				Histogram:  5,
				MABull:     15,
				MABear:     -15,
				BBUpper:    -5,
				BBLower:    5,
				VolumeUp:   10,
			},
		},
		Risk: RiskConfig{
			RiskFreeRate: 0.032,
			TradingDays:  252,
			Bars:         120,
		},
		Assist: AssistConfig{
			Model: "gemini-2.5-pro",
		},
		News: NewsConfig{
			MaxPerHolding: 3,
			Queries: map[string]string{
				"D05.SI":  "DBS Group Holdings SGX",
				"C38U.SI": "CapitaLand Integrated Commercial Trust",
				"ES3.SI":  "Straits Times Index ETF Singapore",
			},
		},
		Fundamentals: FundamentalsConfig{
			Sectors: map[string]string{
				"D05.SI":  "bank",
				"C38U.SI": "reit",
				"ES3.SI":  "etf",
			},
			Benchmarks: map[string]Benchmark{
				"bank": {PE: 11.0, PB: 1.4, DivYield: 4.5, ROE: 12.0},
				"reit": {PE: 18.0, PB: 0.9, DivYield: 5.5, ROE: 8.0},
				"etf":  {PE: 14.0, PB: 1.2, DivYield: 3.5, ROE: 10.0},
			},
		},
	}
}

// LoadConfig reads TOML files over the defaults, later files overriding
// earlier ones, then applies environment overrides. Missing files are
// skipped so a bare `cpfr fees` works without any config at all.
func LoadConfig(paths ...string) (*Config, error) {
	cfg := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CPFOLIO_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("CPFOLIO_SENDKEY"); v != "" {
		cfg.Push.SendKey = v
	}
	if v := os.Getenv("CPFOLIO_ASSIST_MODEL"); v != "" {
		cfg.Assist.Model = v
	}
}

// Validate checks the schedules and every configured holding. An empty
// holding list is legal here; commands that need positions report that
// themselves.
func (c *Config) Validate() error {
	if c.Currency == "" {
		return fmt.Errorf("config: %w: currency must be set", ErrInvalidInput)
	}
	if err := c.Fees.Validate(); err != nil {
		return err
	}
	if err := c.CPF.Validate(); err != nil {
		return err
	}
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	for i := range c.Holdings {
		if err := c.Holdings[i].Validate(); err != nil {
			return fmt.Errorf("holding %d: %w", i+1, err)
		}
	}
	for _, d := range c.Dividends {
		if d.Amount.IsNegative() {
			return fmt.Errorf("config: %w: dividend for %q must not be negative", ErrInvalidInput, d.Name)
		}
	}
	return nil
}

// Symbols returns the configured tickers in holding order.
func (c *Config) Symbols() []string {
	s := make([]string, 0, len(c.Holdings))
	for _, h := range c.Holdings {
		s = append(s, h.Symbol)
	}
	return s
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

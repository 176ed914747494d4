package cpfolio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/cpfolio/date"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cpfolio.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
currency = "SGD"

[[holdings]]
symbol = "D05.SI"
name = "DBS"
shares = 100
cost = "54.59"
buy_date = "2025-10-28"

[cpf]
annual_rate = "0.025"

[thresholds]
stop_loss = "0.08"

[push]
send_key = "SCT000TEST"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if len(cfg.Holdings) != 1 {
		t.Fatalf("len(Holdings) = %d, want 1", len(cfg.Holdings))
	}
	h := cfg.Holdings[0]
	if h.Symbol != "D05.SI" || h.Shares != 100 {
		t.Errorf("holding = %+v, want D05.SI × 100", h)
	}
	if !h.Cost.Equal(dec("54.59")) {
		t.Errorf("Cost = %v, want 54.59", h.Cost)
	}
	if h.BuyDate != date.New(2025, time.October, 28) {
		t.Errorf("BuyDate = %v, want 2025-10-28", h.BuyDate)
	}

	// Overridden values take, untouched defaults survive.
	if !cfg.CPF.AnnualRate.Equal(dec("0.025")) {
		t.Errorf("CPF.AnnualRate = %v, want the overridden 0.025", cfg.CPF.AnnualRate)
	}
	if !cfg.Thresholds.StopLoss.Equal(dec("0.08")) {
		t.Errorf("Thresholds.StopLoss = %v, want the overridden 0.08", cfg.Thresholds.StopLoss)
	}
	if !cfg.Fees.MinCommission.Equal(dec("27.25")) {
		t.Errorf("Fees.MinCommission = %v, want the default 27.25", cfg.Fees.MinCommission)
	}
	if cfg.Push.SendKey != "SCT000TEST" {
		t.Errorf("Push.SendKey = %q, want SCT000TEST", cfg.Push.SendKey)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Currency != "SGD" {
		t.Errorf("Currency = %q, want the default SGD", cfg.Currency)
	}
	if !cfg.Fees.CommissionRate.Equal(dec("0.0018")) {
		t.Errorf("CommissionRate = %v, want the default 0.0018", cfg.Fees.CommissionRate)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CPFOLIO_SENDKEY", "SCT111ENV")
	t.Setenv("CPFOLIO_ASSIST_MODEL", "gemini-test")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Push.SendKey != "SCT111ENV" {
		t.Errorf("Push.SendKey = %q, want the environment override", cfg.Push.SendKey)
	}
	if cfg.Assist.Model != "gemini-test" {
		t.Errorf("Assist.Model = %q, want the environment override", cfg.Assist.Model)
	}
}

func TestLoadConfig_InvalidHolding(t *testing.T) {
	path := writeConfig(t, `
[[holdings]]
symbol = "D05.SI"
shares = 0
cost = "54.59"
buy_date = "2025-10-28"
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() = nil error, want a validation failure for zero shares")
	}
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name  string
		mutate func(*Config)
	}{
		{"no currency", func(c *Config) { c.Currency = "" }},
		{"zero commission rate", func(c *Config) { c.Fees.CommissionRate = dec("0") }},
		{"negative settlement", func(c *Config) { c.Fees.SettlementFee = dec("-1") }},
		{"rate above one", func(c *Config) { c.CPF.AnnualRate = dec("1.5") }},
		{"stop loss at one", func(c *Config) { c.Thresholds.StopLoss = dec("1") }},
		{"negative dividend", func(c *Config) { c.Dividends = []Dividend{{Name: "DBS", Amount: dec("-5")}} }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want an error")
			}
		})
	}
}

func TestConfig_Symbols(t *testing.T) {
	got := testConfig().Symbols()
	want := []string{"D05.SI", "C38U.SI", "ES3.SI"}
	if len(got) != len(want) {
		t.Fatalf("Symbols() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Symbols()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

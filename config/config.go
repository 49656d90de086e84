package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/venantvr/go-trading-objects/internal/quotes"
)

// Config describes one portfolio to evaluate: its trading pair, display
// precisions and where position snapshots are persisted.
type Config struct {
	Pair           string  `yaml:"pair"`
	BasePrecision  int32   `yaml:"base_precision,omitempty"`
	QuotePrecision int32   `yaml:"quote_precision,omitempty"`
	WalDir         string  `yaml:"wal_dir,omitempty"`
	TrailPercent   float64 `yaml:"trail_percent,omitempty"`
	WebAddr        string  `yaml:"web_addr,omitempty"`
}

// Flags holds the command-line surface of the portfolio tool.
type Flags struct {
	ConfigPath string
	Setup      bool
	Price      float64
	Trail      bool
}

// Get parses the command line and loads the YAML config when one is given,
// falling back to pure CLI flags otherwise.
func Get() (Config, Flags, error) {
	configPath := flag.String("config", "", "path to yaml config")
	setup := flag.Bool("setup", false, "run the interactive config wizard")
	price := flag.Float64("price", 0, "current market price in quote currency")
	trail := flag.Bool("trail", false, "apply the configured trailing stop at the given price")
	pairFlag := flag.String("pair", "BTC/USDT", "trading pair, example: BTC/USDT")
	walDir := flag.String("waldir", "", "directory for position snapshots")
	trailPct := flag.Float64("trailpercent", 0.02, "trailing stop fraction, example: 0.02 for 2%")
	webAddr := flag.String("webaddr", "", "address for the web dashboard, example: :8080 (empty disables)")
	flag.Parse()

	flags := Flags{
		ConfigPath: *configPath,
		Setup:      *setup,
		Price:      *price,
		Trail:      *trail,
	}

	if *configPath != "" {
		cfg, err := getYaml(*configPath)
		return cfg, flags, err
	}

	cfg := Config{
		Pair:         *pairFlag,
		WalDir:       *walDir,
		TrailPercent: *trailPct,
		WebAddr:      *webAddr,
	}
	if err := cfg.validate(); err != nil {
		return Config{}, Flags{}, err
	}
	return cfg, flags, nil
}

func getYaml(path string) (Config, error) {
	var cfg Config

	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(f, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse yaml config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := quotes.NewPair(c.Pair); err != nil {
		return fmt.Errorf("incorrect 'pair' param (correct format is BASE/QUOTE): %w", err)
	}
	if c.TrailPercent < 0 || c.TrailPercent >= 1 {
		return fmt.Errorf("incorrect 'trail_percent' param %v, want a fraction in [0, 1)", c.TrailPercent)
	}
	return nil
}

// NewPair builds the pair factory configured by this config.
func (c Config) NewPair() (*quotes.Pair, error) {
	var opts []quotes.Option
	if c.BasePrecision > 0 {
		opts = append(opts, quotes.WithBasePrecision(c.BasePrecision))
	}
	if c.QuotePrecision > 0 {
		opts = append(opts, quotes.WithQuotePrecision(c.QuotePrecision))
	}
	return quotes.NewPair(c.Pair, opts...)
}

// Write stores the config as YAML at the given path.
func (c Config) Write(path string) error {
	if err := c.validate(); err != nil {
		return err
	}
	payload, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml config: %w", err)
	}
	return os.WriteFile(path, payload, 0o644)
}

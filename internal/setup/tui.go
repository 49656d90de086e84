package setup

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/venantvr/go-trading-objects/config"
	"github.com/venantvr/go-trading-objects/internal/quotes"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard and writes the
// resulting config to the given path.
func RunTUI(path string) error {
	var (
		pair           string
		basePrecision  string
		quotePrecision string
		walDir         string
		trailPercent   string
		confirm        bool
	)

	// defaults
	basePrecision = strconv.Itoa(int(quotes.DefaultBasePrecision))
	quotePrecision = strconv.Itoa(int(quotes.DefaultQuotePrecision))
	walDir = "./wal/positions"
	trailPercent = "0.02"

	// step 1: pair
	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("PORTFOLIO CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Let's describe your trading pair.\n"))

	fmt.Println(stepStyle.Render("STEP 1: PAIR"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Trading Pair").
				Description("Format BASE/QUOTE (e.g. BTC/USD)").
				Value(&pair).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("pair cannot be empty")
					}
					if _, err := quotes.NewPair(s); err != nil {
						return fmt.Errorf("invalid format: must be BASE/QUOTE (e.g. BTC/USD)")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	// step 2: precisions
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("PORTFOLIO CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: PRECISION"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Base Asset Precision").
				Description("Decimal places for token amounts (e.g. 8)").
				Value(&basePrecision).
				Validate(validatePrecision),
			huh.NewInput().
				Title("Quote Asset Precision").
				Description("Decimal places for cash amounts (e.g. 2)").
				Value(&quotePrecision).
				Validate(validatePrecision),
		),
	).Run()
	if err != nil {
		return err
	}

	// step 3: storage and trailing stop
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("PORTFOLIO CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: STORAGE & TRAILING"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Position Log Directory").
				Description("Where position snapshots are persisted").
				Value(&walDir).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("directory cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Trailing Stop Fraction").
				Description("Fraction below market for sale targets, 0 disables (e.g. 0.02)").
				Value(&trailPercent).
				Validate(validateTrail),
		),
	).Run()
	if err != nil {
		return err
	}

	// confirmation
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("PORTFOLIO CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Pair: %s\nBase precision: %s\nQuote precision: %s\nLog dir: %s\nTrailing: %s\n",
		strings.ToUpper(pair), basePrecision, quotePrecision, walDir, trailPercent,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	basePrec, _ := strconv.Atoi(basePrecision)
	quotePrec, _ := strconv.Atoi(quotePrecision)
	trail, _ := strconv.ParseFloat(trailPercent, 64)

	cfg := config.Config{
		Pair:           strings.ToUpper(pair),
		BasePrecision:  int32(basePrec),
		QuotePrecision: int32(quotePrec),
		WalDir:         walDir,
		TrailPercent:   trail,
	}

	if err := cfg.Write(path); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\nConfiguration saved to %s", path)))
	time.Sleep(1500 * time.Millisecond) // small pause to read success message
	return nil
}

func validatePrecision(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a whole number")
	}
	if n < 0 || n > 18 {
		return fmt.Errorf("must be between 0 and 18")
	}
	return nil
}

func validateTrail(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.IsNegative() || d.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("must be at least 0 and below 1")
	}
	return nil
}

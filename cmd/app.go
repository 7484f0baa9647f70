// Package cmd implements the wcalc command line calculators.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/wealth"
	"github.com/etnz/wealth/numeric"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// Commands lists the calculators, in the order they are listed by help.
var Commands = []subcommands.Command{
	&cagrCmd{},
	&swrCmd{},
	&emergencyCmd{},
	&riskCmd{},
	&costBasisCmd{},
	&gainsCmd{},
	&fmtCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	for _, cmd := range Commands[:3] {
		c.Register(cmd, "planning")
	}
	for _, cmd := range Commands[3:6] {
		c.Register(cmd, "portfolio")
	}
	for _, cmd := range Commands[6:] {
		c.Register(cmd, "transactions")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	settingsFile = flag.String("settings", os.Getenv(EnvSettingsFile), "Path to a TOML or YAML settings file.")
	logLevel     = flag.String("log-level", envOr(EnvLogLevel, "warn"), "Log level (debug, info, warn, error).")
	currency     = flag.String("currency", os.Getenv(EnvCurrency), "Currency used to format amounts. Overrides the settings.")
	jsonOutput   = flag.Bool("json", false, "Print results as JSON instead of markdown.")
)

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// Setup installs the console logger. It must be called after the flags are parsed.
func Setup() {
	wealth.SetLogger(wealth.NewLogger(wealth.LogConfig{Level: *logLevel, Pretty: true}))
}

// LoadSettings reads the settings from the -settings file, if any, and
// configures the numeric layer accordingly.
func LoadSettings() (wealth.Settings, error) {
	s, err := loadSettings(*settingsFile)
	if err != nil {
		return s, err
	}
	if *currency != "" {
		s.Currency = strings.ToUpper(*currency)
	}
	numeric.Default = s.Arithmetic.Arithmetic()
	return s, nil
}

// loadSettings decodes a settings file on top of the defaults and normalizes
// it. An empty name returns the defaults.
func loadSettings(name string) (wealth.Settings, error) {
	s := wealth.DefaultSettings()
	if name != "" {
		format, err := wealth.FormatOf(name)
		if err != nil {
			return s, err
		}
		data, err := os.ReadFile(name)
		if err != nil {
			return s, fmt.Errorf("reading settings: %w", err)
		}
		if s, err = wealth.ParseSettings(data, format); err != nil {
			return s, fmt.Errorf("settings %q: %w", name, err)
		}
	}
	for _, w := range s.Normalize() {
		log.Warn().Str("settings", name).Msg(w)
	}
	return s, nil
}

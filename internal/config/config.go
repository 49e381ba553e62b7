// Package config resolves runtime settings. Every setting has a default,
// so both binaries run with no configuration: defaults, then a .env file,
// then the environment, then flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"

	"github.com/DoyleJ11/vote-reveal/internal/view"
)

const (
	DefaultAddr           = ":8080"
	DefaultVotesFile      = "votes.json"
	DefaultBackgroundFile = "background2.png"
	DefaultHeaderImage    = "Voterastics.png"
	DefaultThemeFile      = "theme.yaml"
	DefaultTimezone       = "Asia/Jakarta"
	DefaultLanguage       = "id"
	DefaultLogLevel       = "info"
	DefaultSessionTTL     = 2 * time.Hour
)

type Config struct {
	Addr            string
	VotesFile       string
	BackgroundFile  string
	HeaderImage     string
	ThemeFile       string
	Timezone        string
	TimestampFormat string
	Language        string
	Locale          string
	LogLevel        string
	LogFile         string
	Dev             bool
	SessionTTL      time.Duration
}

func Defaults() Config {
	return Config{
		Addr:            DefaultAddr,
		VotesFile:       DefaultVotesFile,
		BackgroundFile:  DefaultBackgroundFile,
		HeaderImage:     DefaultHeaderImage,
		ThemeFile:       DefaultThemeFile,
		Timezone:        DefaultTimezone,
		TimestampFormat: view.DefaultTimestampFormat,
		Locale:          DefaultLanguage,
		LogLevel:        DefaultLogLevel,
		SessionTTL:      DefaultSessionTTL,
	}
}

// Load builds a Config for the named binary. envFile may be empty to skip
// the .env lookup; a missing .env file is not an error.
func Load(name string, args []string, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg := Defaults()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	cfg.AddFlags(flagSet)
	if err := flagSet.Parse(args); err != nil {
		return Config{}, err
	}
	if flagSet.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	return cfg, cfg.Validate()
}

func (c *Config) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&c.Addr, "addr", "a", c.Addr, "listen address for the web display")
	flagSet.StringVarP(&c.VotesFile, "votes", "f", c.VotesFile, "path to the vote JSON file")
	flagSet.StringVar(&c.BackgroundFile, "background", c.BackgroundFile, "background image (optional)")
	flagSet.StringVar(&c.HeaderImage, "header-image", c.HeaderImage, "header image (optional)")
	flagSet.StringVar(&c.ThemeFile, "theme", c.ThemeFile, "theme YAML file (optional)")
	flagSet.StringVar(&c.Timezone, "timezone", c.Timezone, "IANA zone used to read and show timestamps")
	flagSet.StringVar(&c.TimestampFormat, "timestamp-format", c.TimestampFormat, "strftime layout for vote timestamps")
	flagSet.StringVar(&c.Language, "lang", c.Language, "label language, id or en (default: theme file, else id)")
	flagSet.StringVar(&c.Locale, "locale", c.Locale, "BCP 47 locale for numbers in the tally")
	flagSet.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	flagSet.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file instead of stderr")
	flagSet.BoolVar(&c.Dev, "dev", c.Dev, "human readable logs")
	flagSet.DurationVar(&c.SessionTTL, "session-ttl", c.SessionTTL, "drop web sessions idle for this long")
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("ADDR", &c.Addr)
	if port, ok := lookup("PORT"); ok && port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return errors.New("invalid PORT env variable")
		}
		c.Addr = ":" + port
	}
	str("VOTES_FILE", &c.VotesFile)
	str("BACKGROUND_FILE", &c.BackgroundFile)
	str("HEADER_IMAGE", &c.HeaderImage)
	str("THEME_FILE", &c.ThemeFile)
	str("TIMEZONE", &c.Timezone)
	str("TIMESTAMP_FORMAT", &c.TimestampFormat)
	str("LANGUAGE", &c.Language)
	str("LOCALE", &c.Locale)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FILE", &c.LogFile)

	if v, ok := lookup("DEV"); ok && v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("invalid DEV env variable")
		}
		c.Dev = dev
	}
	if v, ok := lookup("SESSION_TTL"); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return errors.New("invalid SESSION_TTL env variable")
		}
		c.SessionTTL = ttl
	}
	return nil
}

func (c Config) Validate() error {
	if c.VotesFile == "" {
		return errors.New("votes file path must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	if c.SessionTTL <= 0 {
		return errors.New("session TTL must be positive")
	}
	return nil
}

func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// LocaleTag is only meaningful after Validate succeeded.
func (c Config) LocaleTag() language.Tag {
	return language.Make(c.Locale)
}

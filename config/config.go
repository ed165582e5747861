package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the client binary needs to know.
type Config struct {
	Server      string
	Name        string
	Team        string
	StatusAddr  string
	LogLevel    string
	LogFile     string
	HistoryFile string
	Reconnect   time.Duration
	Colour      bool
}

func defaults() Config {
	return Config{
		Server:      "ws://localhost:5000/ws",
		LogLevel:    "info",
		HistoryFile: "hist.txt",
		Reconnect:   3 * time.Second,
		Colour:      true,
	}
}

// Load reads .env from the working directory, then the environment, then
// flags. Later sources win.
func Load(args []string) (Config, error) {
	return LoadFrom(".env", os.LookupEnv, args)
}

// LoadFrom is Load with the pieces passed in.
func LoadFrom(envFile string, lookup func(string) (string, bool), args []string) (Config, error) {
	cfg := defaults()

	file := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("reading %s: %w", envFile, err)
		}
		if m != nil {
			file = m
		}
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok && v != "" {
			return v, true
		}
		v, ok := file[key]
		return v, ok && v != ""
	}

	if v, ok := get("TICHU_SERVER"); ok {
		cfg.Server = v
	}
	if v, ok := get("TICHU_NAME"); ok {
		cfg.Name = v
	}
	if v, ok := get("TICHU_TEAM"); ok {
		cfg.Team = v
	}
	if v, ok := get("TICHU_STATUS_ADDR"); ok {
		cfg.StatusAddr = v
	}
	if v, ok := get("TICHU_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := get("TICHU_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := get("TICHU_HISTORY_FILE"); ok {
		cfg.HistoryFile = v
	}
	if v, ok := get("TICHU_RECONNECT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("TICHU_RECONNECT: %w", err)
		}
		cfg.Reconnect = d
	}
	if v, ok := get("NO_COLOR"); ok && v != "" {
		cfg.Colour = false
	}

	fs := flag.NewFlagSet("tichu", flag.ContinueOnError)
	fs.StringVar(&cfg.Server, "server", cfg.Server, "game server, ws://, wss:// or tcp://")
	fs.StringVar(&cfg.Name, "name", cfg.Name, "player name, joins automatically if set")
	fs.StringVar(&cfg.Team, "team", cfg.Team, "team, A or B")
	fs.StringVar(&cfg.StatusAddr, "status", cfg.StatusAddr, "address for the status gateway, off if empty")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log to a file instead of stderr")
	fs.StringVar(&cfg.HistoryFile, "history", cfg.HistoryFile, "readline history file")
	fs.DurationVar(&cfg.Reconnect, "reconnect", cfg.Reconnect, "delay before reconnecting")
	fs.BoolVar(&cfg.Colour, "colour", cfg.Colour, "colour output")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.Server == "" {
		return cfg, errors.New("no server")
	}
	if !hasScheme(cfg.Server, "ws://", "wss://", "tcp://") {
		return cfg, fmt.Errorf("server %q: need ws://, wss:// or tcp://", cfg.Server)
	}
	if cfg.Reconnect <= 0 {
		return cfg, errors.New("reconnect delay must be positive")
	}

	return cfg, nil
}

func hasScheme(url string, schemes ...string) bool {
	for _, s := range schemes {
		if strings.HasPrefix(url, s) {
			return true
		}
	}
	return false
}

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultTools is the tool set enabled when settings.toml does not name one.
var DefaultTools = []string{
	"get_crypto_price",
	"get_crypto_stats",
	"get_microsoft_stock",
	"get_microsoft_product_details",
	"get_book_stock",
}

type ProviderConfig struct {
	Type       string `toml:"type"` // "openai", "anthropic", "ollama"
	Model      string `toml:"model"`
	BaseURL    string `toml:"base_url,omitempty"`
	OllamaHost string `toml:"ollama_host,omitempty"`
}

type ToolsConfig struct {
	Enabled []string `toml:"enabled"`
}

type RealtimeConfig struct {
	Endpoint    string `toml:"endpoint"`
	WaitSeconds int    `toml:"wait_seconds"`
}

type UserConfig struct {
	DataDirectory string         `toml:"data_directory,omitempty"`
	Provider      ProviderConfig `toml:"provider"`
	Tools         ToolsConfig    `toml:"tools"`
	Realtime      RealtimeConfig `toml:"realtime"`
}

// Config is the resolved runtime configuration: settings file values with
// environment overrides applied.
type Config struct {
	DataDirectory string
	ProviderType  string
	Model         string
	BaseURL       string
	OllamaHost    string
	EnabledTools  []string
	RealtimeURL   string
	RealtimeWait  time.Duration
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("QUOTEBOT_DATA_DIR"); v != "" {
		c.DataDirectory = v
	}
	if v := os.Getenv("QUOTEBOT_PROVIDER"); v != "" {
		c.ProviderType = v
	}
	if v := os.Getenv("QUOTEBOT_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("QUOTEBOT_OLLAMA_HOST"); v != "" {
		c.OllamaHost = v
	}
	if v := os.Getenv("QUOTEBOT_REALTIME_URL"); v != "" {
		c.RealtimeURL = v
	}
	if v := os.Getenv("QUOTEBOT_TOOLS"); v != "" {
		c.EnabledTools = splitList(v)
	}
	if v := os.Getenv("QUOTEBOT_REALTIME_WAIT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.RealtimeWait = time.Duration(secs) * time.Second
		}
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func CheckDebug() bool {
	debug := os.Getenv("QUOTEBOT_DEBUG")
	return debug == "true" || debug == "1"
}

// InitDebugLog opens the rotated debug log under the data directory when
// QUOTEBOT_DEBUG is set. The log may contain transcripts, so rotation keeps
// it bounded and file creation uses the data dir's 0700 permissions.
func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	writer := &lumberjack.Logger{
		Filename:   filepath.Join(dataDir, "debug.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
	}

	DebugLog = log.New(writer, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (QUOTEBOT_DEBUG=%s) ===", os.Getenv("QUOTEBOT_DEBUG"))
}

// Load resolves the runtime configuration: .env (best effort), then
// settings.toml if present, then QUOTEBOT_* environment overrides. The data
// directory is created on the way out.
func Load() (*Config, error) {
	// Not an error when absent; credentials usually come from the
	// environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		DataDirectory: GetDefaultDataDir(),
		ProviderType:  "openai",
		Model:         "gpt-4o",
		OllamaHost:    "http://localhost:11434",
		EnabledTools:  DefaultTools,
		RealtimeURL:   "wss://api.ai12z.net/socket",
		RealtimeWait:  3 * time.Second,
	}

	settingsPath := GetSettingsFilePath()
	if FileExists(settingsPath) {
		var userCfg UserConfig
		if _, err := toml.DecodeFile(settingsPath, &userCfg); err != nil {
			return nil, fmt.Errorf("failed to load settings file: %w", err)
		}
		if userCfg.DataDirectory != "" {
			cfg.DataDirectory = userCfg.DataDirectory
		}
		if userCfg.Provider.Type != "" {
			cfg.ProviderType = userCfg.Provider.Type
		}
		if userCfg.Provider.Model != "" {
			cfg.Model = userCfg.Provider.Model
		}
		if userCfg.Provider.BaseURL != "" {
			cfg.BaseURL = userCfg.Provider.BaseURL
		}
		if userCfg.Provider.OllamaHost != "" {
			cfg.OllamaHost = userCfg.Provider.OllamaHost
		}
		if len(userCfg.Tools.Enabled) > 0 {
			cfg.EnabledTools = userCfg.Tools.Enabled
		}
		if userCfg.Realtime.Endpoint != "" {
			cfg.RealtimeURL = userCfg.Realtime.Endpoint
		}
		if userCfg.Realtime.WaitSeconds > 0 {
			cfg.RealtimeWait = time.Duration(userCfg.Realtime.WaitSeconds) * time.Second
		}
	}

	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// ToolEnabled reports whether a tool name is in the enabled set.
func (c *Config) ToolEnabled(name string) bool {
	for _, t := range c.EnabledTools {
		if t == name {
			return true
		}
	}
	return false
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Log      LogConfig
	Editor   Editor
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// ServerConfig points at the workspace channel.
type ServerConfig struct {
	URL   string
	Token string
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string
	Dir   string
}

// Editor holds the user-facing editor settings. These are the settings the
// workspace saves back through Save when the user changes them.
type Editor struct {
	FontSize int    `mapstructure:"font_size"`
	Theme    string `mapstructure:"theme"`
	VimMode  bool   `mapstructure:"vim_mode"`
}

// Themes lists the accepted values for Editor.Theme.
var Themes = []string{"dark", "light"}

// DefaultEditor returns the settings used when nothing is configured.
func DefaultEditor() Editor {
	return Editor{FontSize: 14, Theme: "dark", VimMode: false}
}

// Path returns the config file location. CODEPAD_CONFIG wins over the
// default under ~/.config/codepad.
func Path() string {
	if p := os.Getenv("CODEPAD_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "codepad", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix CODEPAD_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	def := DefaultEditor()
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "codepad", "codepad.db"))
	v.SetDefault("server.url", "ws://localhost:4000/workspace")
	v.SetDefault("server.token", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "")
	v.SetDefault("editor.font_size", def.FontSize)
	v.SetDefault("editor.theme", def.Theme)
	v.SetDefault("editor.vim_mode", def.VimMode)

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("CODEPAD_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "codepad"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CODEPAD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Editor = c.Editor.Normalize()
	return c, nil
}

// Normalize clamps out-of-range values back into something the editor can render.
func (e Editor) Normalize() Editor {
	if e.FontSize < 8 {
		e.FontSize = 8
	}
	if e.FontSize > 32 {
		e.FontSize = 32
	}
	known := false
	for _, t := range Themes {
		if strings.EqualFold(e.Theme, t) {
			e.Theme = t
			known = true
			break
		}
	}
	if !known {
		e.Theme = DefaultEditor().Theme
	}
	return e
}

// Save writes the provided config to disk, creating the config directory if needed.
// The workspace calls this whenever the editor settings change.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.token", cfg.Server.Token)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.dir", cfg.Log.Dir)
	v.Set("editor.font_size", cfg.Editor.FontSize)
	v.Set("editor.theme", cfg.Editor.Theme)
	v.Set("editor.vim_mode", cfg.Editor.VimMode)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

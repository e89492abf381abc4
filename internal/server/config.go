package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultPort  = 8000
	DefaultRoot  = "."
	DefaultEntry = "tts_app.html"
)

// Config holds the server settings gathered from the command line
type Config struct {
	Port     int
	Root     string
	Entry    string
	AccessDB string
}

// DefaultConfig returns the settings used when no flags are given
func DefaultConfig() Config {
	return Config{
		Port:  DefaultPort,
		Root:  DefaultRoot,
		Entry: DefaultEntry,
	}
}

// Addr returns the listen address on all interfaces
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Validate checks the port range and resolves Root to an absolute directory
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	absRoot, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve directory: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", absRoot)
	}

	c.Root = absRoot
	return nil
}

// EntryExists reports whether the entry page is present under Root
func (c Config) EntryExists() bool {
	info, err := os.Stat(filepath.Join(c.Root, filepath.FromSlash(c.Entry)))
	return err == nil && !info.IsDir()
}

package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	PlayerID   string
	PlayerName string
	PlayerFile string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("DOTSBOXES_SERVER", "http://localhost:8080"),
		PlayerID:   os.Getenv("DOTSBOXES_PLAYER"),
		PlayerName: os.Getenv("DOTSBOXES_NAME"),
		PlayerFile: getEnvOrDefault("DOTSBOXES_PLAYER_FILE", defaultPlayerFile()),
		Output:     "text",
		Verbose:    false,
	}
}

// LoadPlayer resolves the player identity. An identity is generated and
// persisted on first use so subsequent commands act as the same player.
func (c *Config) LoadPlayer() error {
	if c.PlayerID != "" {
		return nil
	}

	data, err := os.ReadFile(c.PlayerFile)
	if err == nil {
		c.PlayerID = strings.TrimSpace(string(data))
		if c.PlayerID != "" {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	c.PlayerID = uuid.NewString()
	return c.SavePlayer(c.PlayerID)
}

// SavePlayer persists the player identity to the player file
func (c *Config) SavePlayer(playerID string) error {
	c.PlayerID = playerID

	dir := filepath.Dir(c.PlayerFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.PlayerFile, []byte(playerID), 0600)
}

func defaultPlayerFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dotsboxes/player"
	}
	return filepath.Join(home, ".dotsboxes", "player")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

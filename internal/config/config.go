// Package config loads client settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything the client needs to join a room.
type Config struct {
	ServerURL    string
	WSURL        string
	RoomID       string
	SessionToken string
	MetricsAddr  string
	LogLevel     logrus.Level
}

// Load reads .env (if present) and then the environment. SERVER_URL, WS_URL,
// ROOM_ID and SESSION_TOKEN are required.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg := &Config{
		ServerURL:    os.Getenv("SERVER_URL"),
		WSURL:        os.Getenv("WS_URL"),
		RoomID:       os.Getenv("ROOM_ID"),
		SessionToken: os.Getenv("SESSION_TOKEN"),
		MetricsAddr:  getenvDefault("METRICS_ADDR", ""),
	}

	for name, val := range map[string]string{
		"SERVER_URL":    cfg.ServerURL,
		"WS_URL":        cfg.WSURL,
		"ROOM_ID":       cfg.RoomID,
		"SESSION_TOKEN": cfg.SessionToken,
	} {
		if val == "" {
			return nil, fmt.Errorf("missing required environment variable %s", name)
		}
	}

	level, err := logrus.ParseLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("bad LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

func getenvDefault(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// Package config reads the server settings from the environment. Values
// from a .env file are loaded by godotenv before FromEnv runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port    string
	GinMode string

	SMTP SMTP

	AdminUsername string
	AdminPassword string

	DBPath     string
	SkillsFile string
	FrameHz    int
}

type SMTP struct {
	Host string // e.g. "smtp.gmail.com"
	Port string // e.g. "587"
	User string
	Pass string
	To   string // where contact messages are delivered
}

func (s SMTP) Configured() bool {
	return s.User != "" && s.Pass != ""
}

func (s SMTP) Addr() string {
	return s.Host + ":" + s.Port
}

// FromEnv reads the environment, applying development defaults for
// anything unset.
func FromEnv() (Config, error) {
	c := Config{
		Port:    getenv("PORT", "8080"),
		GinMode: os.Getenv("GIN_MODE"),
		SMTP: SMTP{
			Host: getenv("SMTP_HOST", "smtp.gmail.com"),
			Port: getenv("SMTP_PORT", "587"),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			To:   getenv("TO_EMAIL", "zachkordaspotter@gmail.com"),
		},
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		DBPath:        getenv("DB_PATH", "data/portfolio.db"),
		SkillsFile:    os.Getenv("SKILLS_FILE"),
		FrameHz:       60,
	}

	if v := strings.TrimSpace(os.Getenv("FRAME_HZ")); v != "" {
		hz, err := strconv.Atoi(v)
		if err != nil || hz <= 0 || hz > 240 {
			return c, fmt.Errorf("FRAME_HZ must be an integer in 1..240, got %q", v)
		}
		c.FrameHz = hz
	}
	return c, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

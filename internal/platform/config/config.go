package config

import (
	"fmt"
	"path/filepath"
)

type Config struct {
	DataDir       string
	DBPath        string
	TasksPath     string
	RewardsPath   string
	ActivePath    string
	NotifiersPath string
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data directory is required")
	}
	return Config{
		DataDir:       dataDir,
		DBPath:        filepath.Join(dataDir, "questlog.db"),
		TasksPath:     filepath.Join(dataDir, "tasks.yaml"),
		RewardsPath:   filepath.Join(dataDir, "rewards.yaml"),
		ActivePath:    filepath.Join(dataDir, "active-session.json"),
		NotifiersPath: filepath.Join(dataDir, "notifiers.json"),
	}, nil
}

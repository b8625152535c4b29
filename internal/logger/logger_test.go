package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(configDir, "logs")); os.IsNotExist(err) {
		t.Errorf("log directory was not created")
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}
	if Logger.GetLevel() != log.WarnLevel {
		t.Errorf("expected warn level, got %v", Logger.GetLevel())
	}

	Debug("debug line")
	Info("info line")
	Warn("warn line")
	Error("error line")
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}
	if Logger.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", Logger.GetLevel())
	}
}

func TestHelpersBeforeInit(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	// Must not panic when Init has not run.
	Debug("d")
	Info("i")
	Warn("w")
	Error("e")
}

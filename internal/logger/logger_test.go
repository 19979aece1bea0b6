package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	err := Init(Config{
		Debug:     false,
		ConfigDir: configDir,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message in debug mode", "key", "value")
	Info("Test info message in debug mode")
}

func TestWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")

	child := With("component", "test")
	if child == nil {
		t.Fatal("With() returned nil without Init")
	}
	child.Info("discarded")
}

func TestWithCarriesPrefixFields(t *testing.T) {
	if err := Init(Config{ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	child := With("component", "server")
	if child == Logger {
		t.Error("With() should return a child logger, not the global one")
	}
}

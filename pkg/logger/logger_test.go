package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInit_LevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")
	Init()

	if Log.GetLevel() != logrus.WarnLevel {
		t.Errorf("Expected warn level, got %s", Log.GetLevel())
	}
	if _, ok := Log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("Expected JSON formatter, got %T", Log.Formatter)
	}
}

func TestInit_InvalidLevelFallsBackToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("LOG_FORMAT", "")
	Init()

	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected info level, got %s", Log.GetLevel())
	}
	if _, ok := Log.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("Expected text formatter, got %T", Log.Formatter)
	}
}

func TestSetDebug(t *testing.T) {
	SetDebug()
	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", Log.GetLevel())
	}
	Log.SetLevel(logrus.InfoLevel)
}

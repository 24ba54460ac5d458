//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

package log

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{LevelDebug, zapcore.DebugLevel},
		{LevelInfo, zapcore.InfoLevel},
		{LevelWarn, zapcore.WarnLevel},
		{LevelError, zapcore.ErrorLevel},
		{LevelFatal, zapcore.FatalLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		SetLevel(tt.level)
		if got := zapLevel.Level(); got != tt.want {
			t.Errorf("SetLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
	// Restore default for other tests.
	SetLevel(LevelInfo)
}

func TestDefaultLogger(t *testing.T) {
	if Default == nil {
		t.Fatal("Default logger should not be nil")
	}
	// Package-level helpers must not panic.
	Debug("debug message")
	Debugf("debug %s", "message")
	Info("info message")
	Infof("info %s", "message")
	Warn("warn message")
	Warnf("warn %s", "message")
	Error("error message")
	Errorf("error %s", "message")
}

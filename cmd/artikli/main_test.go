package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelRouter(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := slog.New(&levelRouter{
		stdout: slog.NewTextHandler(&out, nil),
		stderr: slog.NewTextHandler(&errOut, nil),
	}).With("component", "test")

	logger.Debug("hidden")
	logger.Info("hello")
	logger.Warn("careful")
	logger.Error("broken")

	if strings.Contains(out.String(), "hidden") {
		t.Error("expected debug records to be dropped")
	}
	if !strings.Contains(out.String(), "hello") || !strings.Contains(out.String(), "careful") {
		t.Errorf("expected info and warn on stdout, got %q", out.String())
	}
	if strings.Contains(out.String(), "broken") {
		t.Error("expected error records to stay off stdout")
	}
	if !strings.Contains(errOut.String(), "broken") || !strings.Contains(errOut.String(), "component=test") {
		t.Errorf("expected error with attrs on stderr, got %q", errOut.String())
	}
}

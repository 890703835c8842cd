package main

import (
	"testing"
)

func TestGetEnv(t *testing.T) {
	logger := testLogger()

	t.Setenv("WEATHERCHAT_TEST_SET", "value")
	if got := getEnv("WEATHERCHAT_TEST_SET", "fallback", logger); got != "value" {
		t.Errorf("got %q, want value", got)
	}
	if got := getEnv("WEATHERCHAT_TEST_UNSET", "fallback", logger); got != "fallback" {
		t.Errorf("got %q, want fallback", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	logger := testLogger()

	t.Setenv("WEATHERCHAT_TEST_INT", "42")
	if got := getEnvAsInt("WEATHERCHAT_TEST_INT", 7, logger); got != 42 {
		t.Errorf("got %d, want 42", got)
	}
	if got := getEnvAsInt("WEATHERCHAT_TEST_INT_UNSET", 7, logger); got != 7 {
		t.Errorf("got %d, want 7", got)
	}
	t.Setenv("WEATHERCHAT_TEST_INT_BAD", "forty-two")
	if got := getEnvAsInt("WEATHERCHAT_TEST_INT_BAD", 7, logger); got != 7 {
		t.Errorf("got %d, want fallback 7 on a non-integer", got)
	}
}

func TestNewLogger(t *testing.T) {
	if newLogger(true) == nil || newLogger(false) == nil {
		t.Fatal("newLogger should always return a logger")
	}
}

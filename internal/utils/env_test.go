package utils

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("BACKOFFICE_TEST_STR", "hello")

	if got := GetEnv("BACKOFFICE_TEST_STR", "fallback", nil); got != "hello" {
		t.Fatalf("got %q", got)
	}
	if got := GetEnv("BACKOFFICE_TEST_UNSET", "fallback", nil); got != "fallback" {
		t.Fatalf("got %q", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("BACKOFFICE_TEST_INT", "3600")
	t.Setenv("BACKOFFICE_TEST_BAD", "not-a-number")

	if got := GetEnvAsInt("BACKOFFICE_TEST_INT", 10, nil); got != 3600 {
		t.Fatalf("got %d", got)
	}
	if got := GetEnvAsInt("BACKOFFICE_TEST_BAD", 10, nil); got != 10 {
		t.Fatalf("got %d", got)
	}
	if got := GetEnvAsInt("BACKOFFICE_TEST_UNSET", 10, nil); got != 10 {
		t.Fatalf("got %d", got)
	}
}

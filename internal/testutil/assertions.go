package testutil

import (
	"slices"
	"strings"
	"testing"
)

// AssertLogContains проверяет, что в логе боя есть строка line.
func AssertLogContains(t testing.TB, log []string, line string) {
	t.Helper()

	if !slices.Contains(log, line) {
		t.Fatalf("log line %q not found in:\n%s", line, strings.Join(log, "\n"))
	}
}

// AssertLogNotContains проверяет, что ни одна строка лога не содержит substr.
func AssertLogNotContains(t testing.TB, log []string, substr string) {
	t.Helper()

	for _, l := range log {
		if strings.Contains(l, substr) {
			t.Fatalf("unexpected log line %q (matched %q)", l, substr)
		}
	}
}

// AssertLogOrder проверяет, что строки lines встречаются в логе в указанном порядке
// (не обязательно подряд).
func AssertLogOrder(t testing.TB, log []string, lines ...string) {
	t.Helper()

	pos := 0
	for _, want := range lines {
		idx := slices.Index(log[pos:], want)
		if idx < 0 {
			t.Fatalf("log line %q not found after position %d in:\n%s", want, pos, strings.Join(log, "\n"))
		}
		pos += idx + 1
	}
}

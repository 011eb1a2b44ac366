package cli

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateCutsOnRuneBoundaries(t *testing.T) {
	s := "Re-evaluación de muñeca y raquis según sensación"
	for max := 5; max < len(s); max++ {
		got := truncate(s, max)
		if !utf8.ValidString(got) {
			t.Fatalf("truncate(%q, %d) = %q is not valid UTF-8", s, max, got)
		}
		if !strings.HasSuffix(got, "…") && got != s {
			t.Fatalf("truncate(%q, %d) = %q dropped text without an ellipsis", s, max, got)
		}
	}
}

func TestTruncateLeavesShortStringsAlone(t *testing.T) {
	if got := truncate("corto", 48); got != "corto" {
		t.Fatalf("truncate = %q, want the input unchanged", got)
	}
	if got := truncate("señal", 5); got != "señal" {
		t.Fatalf("truncate = %q, want the five-rune input unchanged", got)
	}
}

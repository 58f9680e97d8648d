package pattern

import (
	"errors"
	"testing"

	"github.com/starford/raido/internal/apperr"
)

func TestCompile_LiteralEscapesMetacharacters(t *testing.T) {
	re, err := Compile("a.b", false, true)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got := re.FindAllString("a.b and aXb", -1)
	if len(got) != 1 || got[0] != "a.b" {
		t.Errorf("matches = %v, want [a.b]", got)
	}
}

func TestCompile_LiteralNeverFails(t *testing.T) {
	// An unbalanced group is a valid literal.
	re, err := Compile("(", false, true)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !re.MatchString("f(x)") {
		t.Error("literal ( should match itself")
	}
}

func TestCompile_CaseInsensitive(t *testing.T) {
	re, err := Compile("foo", false, false)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got := re.FindAllString("Foo foo FOO", -1)
	if len(got) != 3 {
		t.Errorf("matches = %v, want 3 hits", got)
	}
}

func TestCompile_CaseSensitive(t *testing.T) {
	re, err := Compile("foo", false, true)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got := re.FindAllString("Foo foo FOO", -1)
	if len(got) != 1 {
		t.Errorf("matches = %v, want 1 hit", got)
	}
}

func TestCompile_RegexMode(t *testing.T) {
	re, err := Compile(`a\d+`, true, true)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got := re.FindAllString("a1 a22 b3", -1)
	if len(got) != 2 || got[0] != "a1" || got[1] != "a22" {
		t.Errorf("matches = %v, want [a1 a22]", got)
	}
}

func TestCompile_InvalidRegex(t *testing.T) {
	_, err := Compile("(", true, true)
	if err == nil {
		t.Fatal("expected error for unbalanced group")
	}
	if !errors.Is(err, apperr.ErrInvalidPattern) {
		t.Errorf("error = %v, want ErrInvalidPattern", err)
	}
}

func TestCompile_InvalidRegexCaseInsensitive(t *testing.T) {
	_, err := Compile("[", true, false)
	if !errors.Is(err, apperr.ErrInvalidPattern) {
		t.Errorf("error = %v, want ErrInvalidPattern", err)
	}
}

package lines

import (
	"reflect"
	"testing"
)

func TestSplit_LF(t *testing.T) {
	got := Split("a\nb\nc")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplit_CRLF(t *testing.T) {
	got := Split("a\r\nb\r\nc")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplit_LoneCR(t *testing.T) {
	got := Split("a\rb")
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplit_MixedTerminators(t *testing.T) {
	got := Split("a\r\nb\nc\rd")
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplit_Empty(t *testing.T) {
	got := Split("")
	if len(got) != 1 || got[0] != "" {
		t.Errorf("Split(\"\") = %v, want one empty line", got)
	}
}

func TestSplit_TrailingNewline(t *testing.T) {
	got := Split("a\n")
	want := []string{"a", ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

package metadata

import (
	"strings"
	"testing"
)

func TestKeywords_Empty(t *testing.T) {
	if got := Keywords(""); got != nil {
		t.Errorf("expected nil for empty text, got %v", got)
	}
	if got := Keywords("   \n\t"); got != nil {
		t.Errorf("expected nil for whitespace, got %v", got)
	}
}

func TestKeywords_FrequencyRanked(t *testing.T) {
	text := "valve valve valve pump pump filter"
	got := Keywords(text)
	want := []string{"valve", "pump", "filter"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyword %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestKeywords_TiesAlphabetical(t *testing.T) {
	got := Keywords("zebra apple mango")
	want := []string{"apple", "mango", "zebra"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestKeywords_StopwordsAndShortWordsDropped(t *testing.T) {
	got := Keywords("the pump and the valve of it")
	for _, kw := range got {
		switch kw {
		case "the", "and", "of", "it":
			t.Errorf("stopword or short word survived: %q", kw)
		}
	}
	if len(got) != 2 {
		t.Errorf("expected [pump valve], got %v", got)
	}
}

func TestKeywords_AcronymsKeepCasing(t *testing.T) {
	got := Keywords("The HVAC system needs an HVAC filter")
	found := false
	for _, kw := range got {
		if kw == "HVAC" {
			found = true
		}
		if kw == "hvac" {
			t.Error("acronym was lowercased")
		}
	}
	if !found {
		t.Errorf("HVAC missing from %v", got)
	}
}

func TestKeywords_CappedAtMax(t *testing.T) {
	var words []string
	for r := 'a'; r <= 'z'; r++ {
		words = append(words, strings.Repeat(string(r), 5))
	}
	got := Keywords(strings.Join(words, " "))
	if len(got) != MaxKeywords {
		t.Errorf("expected %d keywords, got %d", MaxKeywords, len(got))
	}
}

func TestKeywords_Deterministic(t *testing.T) {
	text := "relay breaker fuse relay conduit breaker panel"
	first := Keywords(text)
	for i := 0; i < 5; i++ {
		again := Keywords(text)
		if strings.Join(again, ",") != strings.Join(first, ",") {
			t.Fatalf("non-deterministic output: %v vs %v", first, again)
		}
	}
}

package textmatch_test

import (
	"testing"

	"github.com/quizforge/quizforge/internal/textmatch"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"  Hello,   World!  ", "hello world"},
		{"don’t", "don't"},
		{"“quoted”", "\"quoted\""},
		{"em—dash en–dash minus−sign", "em-dash en-dash minus-sign"},
		{"a.b;c:d!e?f(g)h[i]j{k}", "a b c d e f g h i j k"},
		{"Tbilisi ", "tbilisi"},
		{"თბილისი", "თბილისი"},
	}
	for _, c := range cases {
		if got := textmatch.Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTokens(t *testing.T) {
	got := textmatch.Tokens("The quick, brown fox!")
	want := []string{"the", "quick", "brown", "fox"}
	if len(got) != len(want) {
		t.Fatalf("Tokens = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokens = %v, want %v", got, want)
		}
	}
}

func TestTokensNoStopwords(t *testing.T) {
	got := textmatch.TokensNoStopwords("მიზიდულობის ძალა და ძალები")
	for _, tok := range got {
		if tok == "ძალა" || tok == "ძალები" {
			t.Fatalf("stopword %q survived: %v", tok, got)
		}
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 tokens", got)
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
		{"თბილისი", "თბილისი", 0},
		{"თბილისი", "თბილიში", 1},
	}
	for _, c := range cases {
		if got := textmatch.Levenshtein(c.a, c.b); got != c.want {
			t.Errorf("Levenshtein(%q,%q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestJaccard(t *testing.T) {
	if got := textmatch.Jaccard(nil, nil); got != 0 {
		t.Errorf("empty/empty jaccard = %v, want 0", got)
	}
	if got := textmatch.Jaccard([]string{"a", "b"}, []string{"a", "b"}); got != 1 {
		t.Errorf("identical jaccard = %v, want 1", got)
	}
	if got := textmatch.Jaccard([]string{"a", "b"}, []string{"b", "c"}); got != 1.0/3.0 {
		t.Errorf("overlap jaccard = %v, want 1/3", got)
	}
}

func TestCharSimilarity(t *testing.T) {
	if got := textmatch.CharSimilarity("", ""); got != 1 {
		t.Errorf("empty/empty char similarity = %v, want 1", got)
	}
	if got := textmatch.CharSimilarity("abc", "abc"); got != 1 {
		t.Errorf("identical = %v, want 1", got)
	}
	// "abcd" vs "abcx": one substitution over length 4.
	if got := textmatch.CharSimilarity("abcd", "abcx"); got != 0.75 {
		t.Errorf("one edit over four = %v, want 0.75", got)
	}
	if got := textmatch.CharSimilarity("abc", ""); got != 0 {
		t.Errorf("full distance = %v, want 0", got)
	}
}

func TestBestVariantSimilarity(t *testing.T) {
	// Self-match is perfect.
	if got := textmatch.BestVariantSimilarity("pharos", []string{"pharos"}); got != 1 {
		t.Errorf("self match = %v, want 1", got)
	}
	// Normalized exact match across case and trailing space (scenario from
	// a bilingual variant list).
	if got := textmatch.BestVariantSimilarity("Tbilisi ", []string{"თბილისი", "tbilisi"}); got != 1 {
		t.Errorf("variant match = %v, want 1", got)
	}
	// Empty against empty variant is well-defined via char similarity.
	if got := textmatch.BestVariantSimilarity("", []string{""}); got != 1 {
		t.Errorf("empty/empty = %v, want 1", got)
	}
	// Token overlap rescues a reordered paraphrase.
	if got := textmatch.BestVariantSimilarity("fox brown quick", []string{"quick brown fox"}); got != 1 {
		t.Errorf("token permutation = %v, want 1", got)
	}
	// No variants means no match.
	if got := textmatch.BestVariantSimilarity("anything", nil); got != 0 {
		t.Errorf("no variants = %v, want 0", got)
	}
}

func TestBestVariantMonotoneInCharCloseness(t *testing.T) {
	variant := []string{"aaaaaaaaaa"}
	closer := textmatch.BestVariantSimilarity("aaaaaaaaab", variant)
	farther := textmatch.BestVariantSimilarity("aaaaaaabbb", variant)
	if closer <= farther {
		t.Fatalf("closer string scored %v, farther %v", closer, farther)
	}
}

package recommend

import "testing"

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Café de l'Été!", "cafe de l ete"},
		{"  The   Hobbit  ", "the hobbit"},
		{"J.R.R. Tolkien", "j r r tolkien"},
		{"Nineteen Eighty-Four", "nineteen eighty four"},
		{"ÀÉÎÕÜ", "aeiou"},
		{"", ""},
		{"!!!", ""},
	}
	for _, c := range cases {
		if got := normalizeText(c.in); got != c.want {
			t.Errorf("normalizeText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTokenSetDropsShortWords(t *testing.T) {
	tokens := tokenSet("it is an amazing saga")

	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %v", tokens)
	}
	for _, want := range []string{"amazing", "saga"} {
		if _, ok := tokens[want]; !ok {
			t.Errorf("expected token %q present", want)
		}
	}
}

func TestTokenSetMergesParts(t *testing.T) {
	tokens := tokenSet("Dragon Quest", "fantasy", "Dragon")

	for _, want := range []string{"dragon", "quest", "fantasy"} {
		if _, ok := tokens[want]; !ok {
			t.Errorf("expected token %q present, got %v", want, tokens)
		}
	}
	if len(tokens) != 3 {
		t.Errorf("expected duplicate words collapsed, got %v", tokens)
	}
}

func TestDedupeKeyMatchesAcrossFormatting(t *testing.T) {
	a := dedupeKey("The Hobbit", "J.R.R. Tolkien")
	b := dedupeKey("THE HOBBIT!", "j r r tolkien")

	if a != b {
		t.Errorf("expected matching dedupe keys, got %q and %q", a, b)
	}
	if a == dedupeKey("The Hobbit", "Someone Else") {
		t.Error("different authors should produce different keys")
	}
}

func TestJaccardSymmetricAndBounded(t *testing.T) {
	a := tokenSet("dragon quest legend")
	b := tokenSet("dragon mountain")

	ab := jaccard(a, b)
	ba := jaccard(b, a)
	if ab != ba {
		t.Errorf("jaccard not symmetric: %f vs %f", ab, ba)
	}
	if ab < 0 || ab > 1 {
		t.Errorf("jaccard out of range: %f", ab)
	}

	// {dragon} over {dragon, quest, legend, mountain}
	if want := 1.0 / 4.0; ab != want {
		t.Errorf("expected %f, got %f", want, ab)
	}
}

func TestJaccardIdentity(t *testing.T) {
	a := tokenSet("dragon quest legend")
	if got := jaccard(a, a); got != 1.0 {
		t.Errorf("expected sim(A,A)=1 for non-empty A, got %f", got)
	}
}

func TestJaccardEmptySets(t *testing.T) {
	a := tokenSet("dragon quest")
	empty := tokenSet("")

	if got := jaccard(a, empty); got != 0 {
		t.Errorf("expected 0 against empty set, got %f", got)
	}
	if got := jaccard(empty, empty); got != 0 {
		t.Errorf("expected 0 for two empty sets, got %f", got)
	}
}

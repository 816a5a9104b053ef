package textutil

import "testing"

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	got := Normalize("  Blinkit \t expands \n dark  stores  ")
	want := "Blinkit expands dark stores"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeStripsDisallowedCharacters(t *testing.T) {
	got := Normalize("Zepto© raises ™ funds…")
	want := "Zepto raises funds"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeKeepsAllowedPunctuation(t *testing.T) {
	in := `Q-commerce: "10-minute" delivery (really?) at 50% off, via swiggy@instamart!`
	got := Normalize(in)
	if got != in {
		t.Errorf("Normalize changed allowed input:\n got %q\nwant %q", got, in)
	}
}

func TestNormalizeKeepsUnicodeText(t *testing.T) {
	cases := []string{
		"café delivery",
		"ज़ेप्टो expands fast",
		"münchen quick-commerce, señor",
	}
	for _, in := range cases {
		if got := Normalize(in); got != in {
			t.Errorf("Normalize(%q) = %q, non-ASCII letters must survive", in, got)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"  a ©© b  ",
		"plain text",
		"tabs\tand\nnewlines",
		"mixed © junk — here",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize(%q) not idempotent: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want empty", got)
	}
	if got := Normalize("   \t\n  "); got != "" {
		t.Errorf("Normalize(whitespace) = %q, want empty", got)
	}
}

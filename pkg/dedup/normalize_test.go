package dedup

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Bonjour", "bonjour"},
		{"whitespace runs", "le   chat \t noir", "le chat noir"},
		{"lowercases", "Le Chat", "le chat"},
		{"trailing punctuation", "What is the capital of France?", "what is the capital of france"},
		{"trailing punctuation run", "Really?!;:", "really"},
		{"interior punctuation kept", "what's left, then", "what's left, then"},
		{"markup stripped", "<b>le chat</b>", "le chat"},
		{"markup with attributes", `<span style="color:red">maison</span>`, "maison"},
		{"markup only", "<br><img src='x'>", ""},
		{"markup and whitespace", "  <i>Le</i>\n<i>Chat</i>  ", "le chat"},
		{"entities decoded", "a &amp; b", "a & b"},
		{"empty", "", ""},
		{"whitespace only", "  \t\n ", ""},
		{"multibyte", "C'est  Déjà  Vu.", "c'est déjà vu"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// TestNormalizeDeterministic verifies repeated calls agree; the
// normalizer must be a pure function of its input.
func TestNormalizeDeterministic(t *testing.T) {
	in := "<div>Le  Chat</div> Noir!!"
	first := Normalize(in)
	for i := 0; i < 10; i++ {
		if got := Normalize(in); got != first {
			t.Fatalf("Normalize not deterministic: %q vs %q", got, first)
		}
	}
}

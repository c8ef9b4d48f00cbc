package normalize

import (
	"testing"
)

func TestNormalizerName(t *testing.T) {
	t.Parallel()

	n := New(nil)

	t.Run("inverted and natural order produce the same form", func(t *testing.T) {
		t.Parallel()

		a := n.Name("Alice Zhang")
		b := n.Name("Zhang, Alice")
		if a != b {
			t.Errorf("expected identical canonical forms, got %q and %q", a, b)
		}
		if a != "alice zhang" {
			t.Errorf("expected 'alice zhang', got %q", a)
		}
	})

	t.Run("middle initials are dropped", func(t *testing.T) {
		t.Parallel()

		if got := n.Name("Alice Y. Zhang"); got != "alice zhang" {
			t.Errorf("expected 'alice zhang', got %q", got)
		}
	})

	t.Run("honorifics and suffixes are dropped", func(t *testing.T) {
		t.Parallel()

		if got := n.Name("Dr. Frank Mueller Jr."); got != "frank mueller" {
			t.Errorf("expected 'frank mueller', got %q", got)
		}
		if got := n.Name("Prof. Grace Park, PhD"); got != "grace park" {
			t.Errorf("expected 'grace park', got %q", got)
		}
	})

	t.Run("diacritics are folded", func(t *testing.T) {
		t.Parallel()

		if got := n.Name("José García"); got != "garcia jose" {
			t.Errorf("expected 'garcia jose', got %q", got)
		}
	})

	t.Run("apostrophe and hyphen names stay single tokens", func(t *testing.T) {
		t.Parallel()

		if got := n.Name("Conor O'Brien"); got != "conor o'brien" {
			t.Errorf("expected \"conor o'brien\", got %q", got)
		}
		if got := n.Name("Laila Al-Sayed"); got != "al-sayed laila" {
			t.Errorf("expected 'al-sayed laila', got %q", got)
		}
	})

	t.Run("normalization is idempotent", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			"Alice Zhang",
			"Zhang, Alice",
			"Dr. Frank Mueller Jr.",
			"José García",
			"Conor O'Brien",
		}
		for _, input := range inputs {
			once := n.Name(input)
			twice := n.Name(once)
			if once != twice {
				t.Errorf("Name(%q): not idempotent, %q != %q", input, once, twice)
			}
		}
	})

	t.Run("name with nothing identifying becomes empty", func(t *testing.T) {
		t.Parallel()

		if got := n.Name("Dr. J."); got != "" {
			t.Errorf("expected empty canonical name, got %q", got)
		}
		if got := n.Name(""); got != "" {
			t.Errorf("expected empty canonical name, got %q", got)
		}
	})
}

func TestNormalizerEmail(t *testing.T) {
	t.Parallel()

	n := New(nil)

	if got := n.Email("  Alice.Zhang@NUS.EDU.SG "); got != "alice.zhang@nus.edu.sg" {
		t.Errorf("expected lowercased trimmed email, got %q", got)
	}
	if got := n.Email(""); got != "" {
		t.Errorf("expected empty email to stay empty, got %q", got)
	}
}

func TestNormalizerAffiliation(t *testing.T) {
	t.Parallel()

	t.Run("expands built-in aliases", func(t *testing.T) {
		t.Parallel()

		n := New(nil)

		tests := []struct {
			input string
			want  string
		}{
			{"NUS", "national university of singapore"},
			{"National University of Singapore", "national university of singapore"},
			{"ETH", "eth zurich"},
			{"ETH Zurich", "eth zurich"},
			{"Oxford University", "university of oxford"},
			{"University of Oxford", "university of oxford"},
			{"CMU", "carnegie mellon university"},
			{"Carnegie Mellon", "carnegie mellon university"},
			{"University of California, Berkeley", "uc berkeley"},
			{"UC Berkeley", "uc berkeley"},
		}
		for _, tt := range tests {
			if got := n.Affiliation(tt.input); got != tt.want {
				t.Errorf("Affiliation(%q) = %q, want %q", tt.input, got, tt.want)
			}
		}
	})

	t.Run("unknown affiliation is cleaned, not expanded", func(t *testing.T) {
		t.Parallel()

		n := New(nil)
		if got := n.Affiliation("  Unseen  Institute. "); got != "unseen institute" {
			t.Errorf("expected 'unseen institute', got %q", got)
		}
	})

	t.Run("overrides extend and replace built-ins", func(t *testing.T) {
		t.Parallel()

		n := New(map[string]string{
			"MPI-SWS": "max planck institute for software systems",
			"nus":     "nus college",
		})
		if got := n.Affiliation("mpi-sws"); got != "max planck institute for software systems" {
			t.Errorf("override not applied, got %q", got)
		}
		if got := n.Affiliation("NUS"); got != "nus college" {
			t.Errorf("override should replace built-in, got %q", got)
		}
	})

	t.Run("expansion is idempotent", func(t *testing.T) {
		t.Parallel()

		n := New(nil)
		for _, input := range []string{"NUS", "ETH", "Stanford", "Google"} {
			once := n.Affiliation(input)
			twice := n.Affiliation(once)
			if once != twice {
				t.Errorf("Affiliation(%q): not idempotent, %q != %q", input, once, twice)
			}
		}
	})

	t.Run("chained aliases resolve to the final form", func(t *testing.T) {
		t.Parallel()

		n := New(map[string]string{
			"isti":     "isti cnr",
			"isti cnr": "institute of information science and technologies",
			"institute of information science and technologies": "national research council of italy",
		})

		want := "national research council of italy"
		for _, input := range []string{"ISTI", "ISTI CNR", "Institute of Information Science and Technologies"} {
			got := n.Affiliation(input)
			if got != want {
				t.Errorf("Affiliation(%q) = %q, want %q", input, got, want)
			}
			if again := n.Affiliation(got); again != got {
				t.Errorf("Affiliation(%q): not idempotent, %q != %q", input, got, again)
			}
		}
	})

	t.Run("alias cycle terminates and stays idempotent", func(t *testing.T) {
		t.Parallel()

		n := New(map[string]string{
			"lab a": "lab b",
			"lab b": "lab a",
		})

		a := n.Affiliation("Lab A")
		b := n.Affiliation("Lab B")
		if a != b {
			t.Errorf("cycle members disagree: %q != %q", a, b)
		}
		if again := n.Affiliation(a); again != a {
			t.Errorf("cycle: not idempotent, %q != %q", a, again)
		}
	})

	t.Run("empty affiliation stays empty", func(t *testing.T) {
		t.Parallel()

		n := New(nil)
		if got := n.Affiliation("  "); got != "" {
			t.Errorf("expected empty, got %q", got)
		}
	})
}

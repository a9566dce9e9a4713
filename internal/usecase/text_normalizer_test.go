package usecase

import (
	"testing"
)

func TestNewTextNormalizer(t *testing.T) {
	t.Run("creates normalizer with debug logging disabled", func(t *testing.T) {
		n := NewTextNormalizer(false)
		if n.enableDebugLogging {
			t.Error("expected debug logging to be disabled")
		}
	})

	t.Run("creates normalizer with debug logging enabled", func(t *testing.T) {
		n := NewTextNormalizer(true)
		if !n.enableDebugLogging {
			t.Error("expected debug logging to be enabled")
		}
	})
}

func TestNormalize(t *testing.T) {
	n := NewTextNormalizer(false)

	testCases := []struct {
		name       string
		input      string
		wantLower  string
		wantFolded string
	}{
		{
			name:       "lower-cases and trims",
			input:      "  I Want COFFEE  ",
			wantLower:  "i want coffee",
			wantFolded: "i want coffee",
		},
		{
			name:       "folds turkish letters",
			input:      "Çilekli şekersiz tatlı",
			wantLower:  "çilekli şekersiz tatlı",
			wantFolded: "cilekli sekersiz tatli",
		},
		{
			name:       "folds soft g and umlauts",
			input:      "soğuk süt ürün",
			wantLower:  "soğuk süt ürün",
			wantFolded: "soguk sut urun",
		},
		{
			name:       "lowers dotted capital I",
			input:      "İÇECEK",
			wantLower:  "içecek",
			wantFolded: "icecek",
		},
		{
			name:       "handles empty input",
			input:      "",
			wantLower:  "",
			wantFolded: "",
		},
		{
			name:       "handles whitespace only",
			input:      " \t\n ",
			wantLower:  "",
			wantFolded: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.input)
			if got.Lower != tc.wantLower {
				t.Errorf("Lower = %q, want %q", got.Lower, tc.wantLower)
			}
			if got.Folded != tc.wantFolded {
				t.Errorf("Folded = %q, want %q", got.Folded, tc.wantFolded)
			}
		})
	}
}

func TestFoldDiacritics_DropsCombiningDot(t *testing.T) {
	if got := FoldDiacritics("i\u0307cecek"); got != "icecek" {
		t.Errorf("FoldDiacritics = %q, want %q", got, "icecek")
	}
}

func TestFoldDiacritics_LeavesASCIIUntouched(t *testing.T) {
	in := "no nuts, sugar-free please 123"
	if got := FoldDiacritics(in); got != in {
		t.Errorf("FoldDiacritics(%q) = %q, want unchanged", in, got)
	}
}

func TestWordPattern(t *testing.T) {
	p := wordPattern("tea", "çay")

	testCases := []struct {
		text string
		want bool
	}{
		{"green tea please", true},
		{"tea", true},
		{"tea,", true},
		{"(tea)", true},
		{"steak", false},
		{"teapot", false},
		{"bir çay lütfen", true},
		{"çaylar", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			if got := p.MatchString(tc.text); got != tc.want {
				t.Errorf("MatchString(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

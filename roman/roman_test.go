package roman

import "testing"

func TestRoundTrip(t *testing.T) {
	// Every canonical lowercase numeral from 1-50 must survive
	// ToInt -> FromInt unchanged.
	for n := 1; n <= 50; n++ {
		s := FromInt(n)
		if s == "" {
			t.Fatalf("FromInt(%d) returned empty string", n)
		}
		got, ok := ToInt(s)
		if !ok {
			t.Fatalf("ToInt(%q) failed", s)
		}
		if got != n {
			t.Errorf("ToInt(FromInt(%d)) = %d", n, got)
		}
		if again := FromInt(got); again != s {
			t.Errorf("FromInt(ToInt(%q)) = %q", s, again)
		}
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"i", 1, true},
		{"iv", 4, true},
		{"ix", 9, true},
		{"xii", 12, true},
		{"XLIV", 44, true},
		{"mcmxcix", 1999, true},
		{"iiii", 4, true}, // additive form, common in OCR output
		{"", 0, false},
		{"abc", 0, false},
		{"i1", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ToInt(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ToInt(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFromInt_Range(t *testing.T) {
	if got := FromInt(0); got != "" {
		t.Errorf("FromInt(0) = %q, want empty", got)
	}
	if got := FromInt(4000); got != "" {
		t.Errorf("FromInt(4000) = %q, want empty", got)
	}
	if got := FromInt(3999); got != "mmmcmxcix" {
		t.Errorf("FromInt(3999) = %q", got)
	}
}

func TestIsNumeral(t *testing.T) {
	if !IsNumeral("vii") {
		t.Error("IsNumeral(vii) = false")
	}
	if IsNumeral("page") {
		t.Error("IsNumeral(page) = true")
	}
}

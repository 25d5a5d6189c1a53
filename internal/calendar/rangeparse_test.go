package calendar

import (
	"testing"
	"time"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		input     string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"Nov 24-Dec 2, 2023", day(2023, 11, 24), day(2023, 12, 2)},
		{"Nov 24 - Dec 2, 2023", day(2023, 11, 24), day(2023, 12, 2)},
		{"Nov 24–Dec 2, 2023", day(2023, 11, 24), day(2023, 12, 2)},
		{"November 24-December 2, 2023", day(2023, 11, 24), day(2023, 12, 2)},
		{"Dec 24-26, 2023", day(2023, 12, 24), day(2023, 12, 26)},
		{"Dec 31, 2023", day(2023, 12, 31), day(2023, 12, 31)},
		{"Dec 28, 2023-Jan 2, 2024", day(2023, 12, 28), day(2024, 1, 2)},
		{"Dec 28-Jan 2, 2024", day(2023, 12, 28), day(2024, 1, 2)},
		{"2023-11-24..2023-12-02", day(2023, 11, 24), day(2023, 12, 2)},
		{"2023-11-24 to 2023-12-02", day(2023, 11, 24), day(2023, 12, 2)},
		{"Dec 31, 2023 to Jan 2, 2024", day(2023, 12, 31), day(2024, 1, 2)},
		{"Nov 24 to Dec 2, 2023", day(2023, 11, 24), day(2023, 12, 2)},
		{"Dec 28 to Jan 2, 2024", day(2023, 12, 28), day(2024, 1, 2)},
		{"2023-12-28/Jan 2, 2024", day(2023, 12, 28), day(2024, 1, 2)},
		{"2023-12-31", day(2023, 12, 31), day(2023, 12, 31)},
		{"Feb 29, 2024", day(2024, 2, 29), day(2024, 2, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := ParseRange(tt.input)
			if err != nil {
				t.Fatalf("ParseRange(%q) failed: %v", tt.input, err)
			}
			if !r.Start.Equal(tt.wantStart) || !r.End.Equal(tt.wantEnd) {
				t.Errorf("ParseRange(%q) = %s..%s, want %s..%s", tt.input,
					FormatDate(r.Start), FormatDate(r.End), FormatDate(tt.wantStart), FormatDate(tt.wantEnd))
			}
		})
	}
}

func TestParseRangeErrors(t *testing.T) {
	inputs := []string{
		"",
		"next week",
		"Nov 24-Dec 2",
		"Nov 24 to Dec 2",
		"Dec 2, 2023 to Nov 24, 2023",
		"Feb 29, 2023",
		"Dec 24-20, 2023",
		"2023-12-02..2023-11-24",
		"Smarch 3, 2023",
	}
	for _, in := range inputs {
		if _, err := ParseRange(in); err == nil {
			t.Errorf("ParseRange(%q) should fail", in)
		}
	}
}

// The substring approach matched "2023-11-24" against "Nov 24-Dec 2, 2023" and missed
// every other day. A parsed range covers each day of the holiday period.
func TestSpecialRangeCoversEveryDay(t *testing.T) {
	occ := SpecialOf("Nov 24-Dec 2, 2023")
	for d := day(2023, 11, 24); !d.After(day(2023, 12, 2)); d = d.AddDate(0, 0, 1) {
		if !occ.OccursOn(d) {
			t.Errorf("Special range should include %s", FormatDate(d))
		}
	}
	if occ.OccursOn(day(2023, 11, 23)) || occ.OccursOn(day(2023, 12, 3)) {
		t.Error("Special range should exclude days outside the range")
	}
	if _, ok := SpecialOf("whenever").(Never); !ok {
		t.Error("Unparseable special range should project as Never")
	}
}

package date

import (
	"math"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, time.July, 1)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: " 2024-02-29 ", want: New(2024, time.February, 29)},
		{in: "2025-03-04T10:30:00Z", want: New(2025, time.March, 4)},
		{in: "2025-02-30", wantErr: true},
		{in: "2025-13-01", wantErr: true},
		{in: "not a date", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	a, b := New(2024, 12, 31), New(2025, 1, 1)
	if got := a.Compare(b); got != -1 {
		t.Errorf("Compare() = %d, want -1", got)
	}
	if got := b.Compare(a); got != 1 {
		t.Errorf("Compare() = %d, want 1", got)
	}
	if got := a.Compare(a); got != 0 {
		t.Errorf("Compare() = %d, want 0", got)
	}
	if !(Date{}).IsZero() || a.IsZero() {
		t.Errorf("IsZero() is wrong")
	}
}

func TestYearsBetween(t *testing.T) {
	from := New(2020, 1, 1)
	to := New(2025, 1, 1)
	if got, want := YearsBetween(from, to), 1827/DaysPerYear; math.Abs(got-want) > 1e-12 {
		t.Errorf("YearsBetween() = %v, want %v", got, want)
	}
	if got := YearsBetween(to, from); got >= 0 {
		t.Errorf("YearsBetween() = %v, want negative", got)
	}
}

func TestCalendarYear(t *testing.T) {
	r := CalendarYear(2024)
	if !r.Contains(New(2024, 1, 1)) || !r.Contains(New(2024, 12, 31)) {
		t.Errorf("CalendarYear(2024) should contain its boundaries")
	}
	if r.Contains(New(2025, 1, 1)) {
		t.Errorf("CalendarYear(2024) should not contain 2025-01-01")
	}
	special := Range{From: New(2024, 1, 1), To: New(2025, 1, 1)}
	if got := special.Years(); got < 1 || got > 1.01 {
		t.Errorf("Years() = %v, want about 1", got)
	}
}

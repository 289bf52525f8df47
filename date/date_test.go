package date

import "testing"

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
		want    string
		wantErr bool
	}{
		{in: "2025-08-14", want: "2025-08-14"},
		{in: "2025-8-1", want: "2025-08-01"},
		{in: "not a date", wantErr: true},
		{in: "2025-13-01", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestYearMonth(t *testing.T) {
	if got := New(2025, 8, 14).YearMonth(); got != "2025-08" {
		t.Errorf("YearMonth() = %q, want %q", got, "2025-08")
	}
}

func TestResolve(t *testing.T) {
	// A fixed anchor keeps every case deterministic: 2025-08-13 is a Wednesday.
	wednesday := MustParse("2025-08-13")

	testCases := []struct {
		name   string
		phrase string
		today  Date
		want   string
		wantOK bool
	}{
		{name: "today", phrase: "today", today: wednesday, want: "2025-08-13", wantOK: true},
		{name: "today with spaces", phrase: "  Today ", today: wednesday, want: "2025-08-13", wantOK: true},
		{name: "yesterday", phrase: "yesterday", today: wednesday, want: "2025-08-12", wantOK: true},
		{name: "last monday is two days back", phrase: "last monday", today: wednesday, want: "2025-08-11", wantOK: true},
		{name: "last wednesday is never today", phrase: "last wednesday", today: wednesday, want: "2025-08-06", wantOK: true},
		{name: "last sunday", phrase: "last Sunday", today: wednesday, want: "2025-08-10", wantOK: true},
		{name: "last march is this year", phrase: "last march", today: wednesday, want: "2025-03-01", wantOK: true},
		{name: "last august is previous year", phrase: "last august", today: wednesday, want: "2024-08-01", wantOK: true},
		{name: "last december is previous year", phrase: "last december", today: wednesday, want: "2024-12-01", wantOK: true},
		{name: "unknown phrase", phrase: "next tuesday", today: wednesday, wantOK: false},
		{name: "iso date is not a reference", phrase: "2025-08-01", today: wednesday, wantOK: false},
		{name: "empty", phrase: "", today: wednesday, wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Resolve(tc.phrase, tc.today)
			if ok != tc.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tc.phrase, ok, tc.wantOK)
			}
			if ok && got.String() != tc.want {
				t.Errorf("Resolve(%q) = %q, want %q", tc.phrase, got, tc.want)
			}
		})
	}
}

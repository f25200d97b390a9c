package extract

import (
	"testing"
	"time"
)

func TestNormalizeDateTime_EST(t *testing.T) {
	got, ok := NormalizeDateTime("March 3, 2024 3:00 PM (EST)")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	want := time.Date(2024, 3, 3, 20, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalizeDateTime_IST(t *testing.T) {
	got, ok := NormalizeDateTime("June 10, 2024 9:30 AM (IST)")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	want := time.Date(2024, 6, 10, 4, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalizeDateTime_DaylightSaving(t *testing.T) {
	got, ok := NormalizeDateTime("July 4, 2024 1:00 PM (PDT)")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	want := time.Date(2024, 7, 4, 20, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalizeDateTime_Malformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no timezone token", "March 3, 2024 3:00 PM"},
		{"unknown timezone", "March 3, 2024 3:00 PM (XYZ)"},
		{"empty timezone", "March 3, 2024 3:00 PM ()"},
		{"no datetime text", "(EST)"},
		{"unparseable datetime", "sometime next week (EST)"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got, ok := NormalizeDateTime(tc.raw); ok {
				t.Errorf("expected no value, got %v", got)
			}
		})
	}
}

func TestYears(t *testing.T) {
	cases := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"7 years", 7, true},
		{"10+ years in Java", 10, true},
		{"12", 12, true},
		{"around seven", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := Years(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("Years(%q) = (%d, %v), want (%d, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	if got, ok := Age("March 3, 1990", now); !ok || got != 36 {
		t.Errorf("Age = (%d, %v), want (36, true)", got, ok)
	}
	if got, ok := Age("October 1, 1990", now); !ok || got != 35 {
		t.Errorf("Age before birthday = (%d, %v), want (35, true)", got, ok)
	}
	if _, ok := Age("not a date", now); ok {
		t.Error("expected unparseable birth date to be skipped")
	}
	if _, ok := Age("", now); ok {
		t.Error("expected empty birth date to be skipped")
	}
}

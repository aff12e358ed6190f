package localtime

import "testing"

func TestClock24Hour(t *testing.T) {
	f, err := NewFormatter("", "24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1970-01-01 00:00 UTC plus a +1h offset.
	if got := f.Clock(0, 3600); got != "01:00" {
		t.Errorf("expected 01:00, got %q", got)
	}

	// Negative offsets wrap back into the previous day.
	if got := f.Clock(86400, -3600); got != "23:00" {
		t.Errorf("expected 23:00, got %q", got)
	}
}

func TestClock12Hour(t *testing.T) {
	f, err := NewFormatter("", "12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.Clock(0, 13*3600); got != "1:00 PM" {
		t.Errorf("expected 1:00 PM, got %q", got)
	}
	if got := f.Clock(0, 0); got != "12:00 AM" {
		t.Errorf("expected 12:00 AM, got %q", got)
	}
}

func TestCycleFromLocale(t *testing.T) {
	tests := []struct {
		locale string
		unix   int64
		want   string
	}{
		{"en-US", 13 * 3600, "1:00 PM"},
		{"de-DE", 13 * 3600, "13:00"},
		{"fr-FR", 13 * 3600, "13:00"},
		{"en-AU", 13 * 3600, "1:00 PM"},
	}

	for _, tt := range tests {
		f, err := NewFormatter(tt.locale, "locale")
		if err != nil {
			t.Fatalf("NewFormatter(%q) failed: %v", tt.locale, err)
		}
		if got := f.Clock(tt.unix, 0); got != tt.want {
			t.Errorf("locale %s: expected %q, got %q", tt.locale, tt.want, got)
		}
	}
}

func TestNewFormatterRejectsBadInput(t *testing.T) {
	if _, err := NewFormatter("not a locale!!", "locale"); err == nil {
		t.Error("expected error for invalid locale")
	}
	if _, err := NewFormatter("en-US", "13"); err == nil {
		t.Error("expected error for invalid hour cycle")
	}
}

package fleet

import "testing"

func TestWorkDuration(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		lunchS   string
		lunchE   string
		extraS   string
		extraE   string
		expected string
	}{
		{"standard day with lunch", "08:00", "17:00", "12:00", "13:00", "", "", "08:00"},
		{"overtime adds back", "08:00", "17:00", "12:00", "13:00", "17:00", "18:00", "09:00"},
		{"no lunch recorded", "08:00", "12:00", "", "", "", "", "04:00"},
		{"end before start clamps to zero", "17:00", "08:00", "", "", "", "", "00:00"},
		{"cross-midnight shift clamps to zero", "22:00", "06:00", "", "", "", "", "00:00"},
		{"lunch longer than shift clamps to zero", "08:00", "09:00", "08:00", "12:00", "", "", "00:00"},
		{"partial minutes", "07:30", "16:45", "11:15", "12:00", "", "", "08:30"},
		{"malformed times count as zero spans", "8h00", "17:00", "", "", "", "", "00:00"},
		{"empty everything", "", "", "", "", "", "", "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WorkDuration(tt.start, tt.end, tt.lunchS, tt.lunchE, tt.extraS, tt.extraE)
			if result != tt.expected {
				t.Errorf("WorkDuration(%q, %q, %q, %q, %q, %q) = %q, expected %q",
					tt.start, tt.end, tt.lunchS, tt.lunchE, tt.extraS, tt.extraE, result, tt.expected)
			}
		})
	}
}

func TestNetWorkMinutes(t *testing.T) {
	if got := NetWorkMinutes("08:00", "17:00", "12:00", "13:00", "", ""); got != 480 {
		t.Errorf("NetWorkMinutes = %d, expected 480", got)
	}
	// The overtime span is added even when the base span is zero.
	if got := NetWorkMinutes("", "", "", "", "18:00", "19:30"); got != 90 {
		t.Errorf("NetWorkMinutes overtime only = %d, expected 90", got)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
	}{
		{0, "00:00"},
		{60, "01:00"},
		{510, "08:30"},
		{615, "10:15"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes); got != tt.expected {
			t.Errorf("FormatMinutes(%d) = %q, expected %q", tt.minutes, got, tt.expected)
		}
	}
}

package fleet

import (
	"fmt"
	"strconv"
	"strings"
)

// NetWorkMinutes computes the net worked minutes of a shift from HH:MM
// time-of-day strings: work span minus the lunch span plus the overtime
// span, floored at zero. Lunch and overtime pairs are optional.
//
// Each span is computed on a single nominal day and clamped at zero, so a
// shift crossing midnight yields zero instead of a negative value. Report
// totals rely on that clamp; do not "fix" it without a product decision.
func NetWorkMinutes(start, end, lunchStart, lunchEnd, extraStart, extraEnd string) int {
	minutes := span(start, end) - span(lunchStart, lunchEnd) + span(extraStart, extraEnd)
	if minutes < 0 {
		minutes = 0
	}
	return minutes
}

// WorkDuration formats NetWorkMinutes as "HH:MM".
func WorkDuration(start, end, lunchStart, lunchEnd, extraStart, extraEnd string) string {
	return FormatMinutes(NetWorkMinutes(start, end, lunchStart, lunchEnd, extraStart, extraEnd))
}

// FormatMinutes renders a minute count as "HH:MM".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// span is the clamped length in minutes between two clock strings on the
// same nominal day. Missing or malformed endpoints count as zero length.
func span(a, b string) int {
	start, okA := parseClock(a)
	end, okB := parseClock(b)
	if !okA || !okB {
		return 0
	}
	if end < start {
		return 0
	}
	return end - start
}

func parseClock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

package heat

import "time"

// maxHourGap is the largest spacing between two safe hours that still keeps them
// in the same window. Anything wider means an unsafe hour was skipped.
const maxHourGap = time.Hour

// IsSafe reports whether the hour's heat index is below the threshold
func IsSafe(p HourlyPoint, thresholdC float64) bool {
	return Compute(p.TemperatureC, p.RelativeHumidityPct) < thresholdC
}

// SafeHours filters the series down to the hours below the threshold, keeping order
func SafeHours(series HourlySeries, thresholdC float64) HourlySeries {
	var safe HourlySeries
	for _, p := range series {
		if IsSafe(p, thresholdC) {
			safe = append(safe, p)
		}
	}
	return safe
}

// FindWindows merges the safe hours of a single day into contiguous windows and
// picks the longest one. Ties go to the earliest window. When no hour is safe the
// windows are empty (never nil) and best is nil; that is a valid "no safe time"
// result, not an error.
func FindWindows(day HourlySeries, thresholdC float64) ([]SafeWindow, *SafeWindow) {
	safe := SafeHours(day, thresholdC)
	if len(safe) == 0 {
		return []SafeWindow{}, nil
	}

	windows := mergeWindows(safe)

	best := 0
	for i := 1; i < len(windows); i++ {
		if windows[i].Duration() > windows[best].Duration() {
			best = i
		}
	}
	bestWindow := windows[best]

	return windows, &bestWindow
}

func mergeWindows(safe HourlySeries) []SafeWindow {
	windows := []SafeWindow{{Start: safe[0].Time, End: safe[0].Time}}
	for _, p := range safe[1:] {
		current := &windows[len(windows)-1]
		if p.Time.Sub(current.End) > maxHourGap {
			windows = append(windows, SafeWindow{Start: p.Time, End: p.Time})
			continue
		}
		current.End = p.Time
	}
	return windows
}

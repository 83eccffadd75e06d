package heat

import "time"

// FindClosest returns the index of the timestamp nearest to target.
// On an exact tie the earlier index wins.
func FindClosest(target time.Time, timestamps []time.Time) (int, error) {
	if len(timestamps) == 0 {
		return 0, ErrEmptySeries
	}

	best := 0
	bestDiff := absDuration(timestamps[0].Sub(target))
	for i := 1; i < len(timestamps); i++ {
		diff := absDuration(timestamps[i].Sub(target))
		if diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}

	return best, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

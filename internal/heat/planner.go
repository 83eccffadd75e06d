package heat

// SplitByDate partitions the series by calendar date, keeping the order in which
// dates first appear. Each point's date comes from its own local timestamp.
func SplitByDate(series HourlySeries) ([]string, map[string]HourlySeries) {
	var order []string
	byDate := make(map[string]HourlySeries)
	for _, p := range series {
		key := dateKey(p.Time)
		if _, seen := byDate[key]; !seen {
			order = append(order, key)
		}
		byDate[key] = append(byDate[key], p)
	}
	return order, byDate
}

// BuildPlan builds the multi-day planner. Every date in the series gets an entry; its
// window is the span from the first to the last safe hour of that date, even when
// unsafe hours sit in between. Dates without any safe hour are marked NoSafeTime.
func BuildPlan(series HourlySeries, thresholdC float64) Plan {
	return buildPlan(series, func(day HourlySeries) []SafeWindow {
		safe := SafeHours(day, thresholdC)
		if len(safe) == 0 {
			return nil
		}
		return []SafeWindow{{Start: safe[0].Time, End: safe[len(safe)-1].Time}}
	})
}

// BuildStrictPlan is like BuildPlan but lists every disjoint safe window of each date, as
// FindWindows does, instead of collapsing them into one span.
func BuildStrictPlan(series HourlySeries, thresholdC float64) Plan {
	return buildPlan(series, func(day HourlySeries) []SafeWindow {
		windows, _ := FindWindows(day, thresholdC)
		return windows
	})
}

func buildPlan(series HourlySeries, windowsFor func(HourlySeries) []SafeWindow) Plan {
	order, byDate := SplitByDate(series)

	plan := Plan{Days: make([]DayPlan, 0, len(order))}
	for _, date := range order {
		windows := windowsFor(byDate[date])
		if windows == nil {
			windows = []SafeWindow{}
		}
		plan.Days = append(plan.Days, DayPlan{
			Date:       date,
			Windows:    windows,
			NoSafeTime: len(windows) == 0,
		})
	}
	return plan
}

package render

import (
	"fmt"
	"io"
	"runadvisor/internal/advisor"
	"runadvisor/internal/heat"
	"strings"
	"text/tabwriter"
)

const (
	clockLayout = "15:04"
	barScale    = 2.0 // °C per bar cell
	maxBarCells = 25
)

// Text writes a human readable report
func Text(w io.Writer, r *advisor.Report) error {
	ew := &errWriter{w: w}

	cur := r.Current
	ew.printf("Running conditions for %s (%.4f, %.4f)\n", r.Location.Name, r.Location.Latitude, r.Location.Longitude)
	ew.printf("As of %s\n\n", cur.ObservedAt.Format("2006-01-02 15:04 MST"))

	ew.printf("Temperature:           %.1f °C\n", cur.TemperatureC)
	ew.printf("Humidity:              %.0f %%\n", cur.RelativeHumidityPct)
	ew.printf("Feels like (heat idx): %.1f °C\n\n", cur.HeatIndex.HeatIndexC)

	ew.printf("Condition: %s\n", cur.Risk.Level)
	ew.printf("%s\n", cur.Risk.Advice)
	ew.printf("Pace adjustment: %s\n\n", cur.Risk.ActionTip)

	ew.printf("Air quality: %s. %s\n\n", r.AirQuality.Status, r.AirQuality.Advice)

	if len(r.Outlook) > 0 {
		ew.printf("Next %dh outlook\n", len(r.Outlook))
		Outlook(ew, r.Outlook, r.ThresholdC)
		ew.printf("\n")
	}

	ew.printf("Best time to run today (heat index below %.0f °C): ", r.ThresholdC)
	if r.Today.Best == nil {
		ew.printf("No safe time found\n")
	} else {
		ew.printf("%s\n", Window(*r.Today.Best))
		if len(r.Today.Windows) > 1 {
			parts := make([]string, len(r.Today.Windows))
			for i, win := range r.Today.Windows {
				parts[i] = Window(win)
			}
			ew.printf("All safe windows: %s\n", strings.Join(parts, ", "))
		}
	}
	ew.printf("\n")

	label := "Planner"
	if r.StrictPlan {
		label = "Planner (all windows)"
	}
	ew.printf("%s\n", label)
	Planner(ew, r.Planner)

	return ew.err
}

// Outlook writes one line per hour with a bar proportional to the heat index.
// Hours at or above the threshold are marked with '!'.
func Outlook(w io.Writer, outlook []heat.HeatIndexResult, thresholdC float64) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, hi := range outlook {
		mark := " "
		if hi.HeatIndexC >= thresholdC {
			mark = "!"
		}
		fmt.Fprintf(tw, "  %s\t%5.1f °C\t%s %s\n",
			hi.Source.Time.Format(clockLayout), hi.HeatIndexC, mark, bar(hi.HeatIndexC))
	}
	tw.Flush()
}

// Planner writes one line per date
func Planner(w io.Writer, plan heat.Plan) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, day := range plan.Days {
		if day.NoSafeTime {
			fmt.Fprintf(tw, "  %s\tNo safe time found\n", day.Date)
			continue
		}
		parts := make([]string, len(day.Windows))
		for i, win := range day.Windows {
			parts[i] = Window(win)
		}
		fmt.Fprintf(tw, "  %s\t%s\n", day.Date, strings.Join(parts, ", "))
	}
	tw.Flush()
}

// Window formats a window as "HH:MM – HH:MM"
func Window(w heat.SafeWindow) string {
	return fmt.Sprintf("%s – %s", w.Start.Format(clockLayout), w.End.Format(clockLayout))
}

func bar(heatIndexC float64) string {
	n := int(heatIndexC / barScale)
	if n < 0 {
		n = 0
	}
	if n > maxBarCells {
		n = maxBarCells
	}
	return strings.Repeat("█", n)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(e, format, args...)
}

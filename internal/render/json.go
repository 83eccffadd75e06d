package render

import (
	"encoding/json"
	"io"
	"runadvisor/internal/advisor"
	"runadvisor/internal/heat"
)

// JSON writes the report as indented JSON
func JSON(w io.Writer, r *advisor.Report) error {
	return writeJSON(w, r)
}

// PlanJSON writes only the planner
func PlanJSON(w io.Writer, plan heat.Plan) error {
	return writeJSON(w, plan)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runadvisor/internal/advisor"
	"runadvisor/internal/config"
	"runadvisor/internal/logging"
	"runadvisor/internal/models"
	"runadvisor/internal/render"

	"github.com/spf13/cobra"
)

type assessor interface {
	Assess(ctx context.Context, loc models.Location, opts ...advisor.AssessOption) (*advisor.Report, error)
	AssessHere(ctx context.Context, opts ...advisor.AssessOption) (*advisor.Report, error)
}

type assessorFactory func(cfg *config.Config) assessor

type target struct {
	lat, lon  float64
	name      string
	location  string
	threshold float64
	strict    bool
	output    string
}

func main() {
	root := newRootCmd(func(cfg *config.Config) assessor {
		return advisor.FromConfig(cfg, logging.New(cfg.Log.Level, cfg.Log.Format))
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(newAssessor assessorFactory) *cobra.Command {
	var configPath string
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "runcheck",
		Short:         "Heat-aware running advice",
		Long:          "Rates current running conditions by heat index and finds safe times to run",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadOrDefault(configPath)
			return err
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "./config.yaml", "path to the YAML config")

	var checkTarget target
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Show current conditions, outlook and safe windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := run(cmd, cfg, newAssessor(cfg), checkTarget)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), report, checkTarget.output)
		},
	}
	addTargetFlags(checkCmd, &checkTarget)

	var planTarget target
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the safe running windows for each forecast day",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := run(cmd, cfg, newAssessor(cfg), planTarget)
			if err != nil {
				return err
			}
			if planTarget.output == "json" {
				return render.PlanJSON(cmd.OutOrStdout(), report.Planner)
			}
			render.Planner(cmd.OutOrStdout(), report.Planner)
			return nil
		},
	}
	addTargetFlags(planCmd, &planTarget)

	locationsCmd := &cobra.Command{
		Use:   "locations",
		Short: "List configured locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(cfg.Locations) == 0 {
				fmt.Fprintln(out, "No locations configured")
				return nil
			}
			for _, loc := range cfg.Locations {
				fmt.Fprintf(out, "%s\t%.4f, %.4f\n", loc.Name, loc.Latitude, loc.Longitude)
			}
			return nil
		},
	}

	root.AddCommand(checkCmd, planCmd, locationsCmd)
	return root
}

func addTargetFlags(cmd *cobra.Command, t *target) {
	f := cmd.Flags()
	f.Float64Var(&t.lat, "lat", 0, "latitude (detected from IP when omitted)")
	f.Float64Var(&t.lon, "lon", 0, "longitude (detected from IP when omitted)")
	f.StringVar(&t.name, "name", "", "display name for --lat/--lon")
	f.StringVarP(&t.location, "location", "l", "", "configured location name")
	f.Float64Var(&t.threshold, "threshold", 0, "safe heat index threshold in °C (default from config)")
	f.BoolVar(&t.strict, "strict", false, "list every safe window per day instead of one span")
	f.StringVarP(&t.output, "output", "o", "text", "output format (text, json)")
	cmd.MarkFlagsRequiredTogether("lat", "lon")
	cmd.MarkFlagsMutuallyExclusive("location", "lat")
}

func run(cmd *cobra.Command, cfg *config.Config, a assessor, t target) (*advisor.Report, error) {
	if t.output != "text" && t.output != "json" {
		return nil, fmt.Errorf("unknown output format %q", t.output)
	}

	opts := []advisor.AssessOption{advisor.WithThreshold(t.threshold)}
	if cmd.Flags().Changed("strict") {
		opts = append(opts, advisor.WithStrictPlan(t.strict))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch {
	case t.location != "":
		loc, ok := cfg.FindLocation(t.location)
		if !ok {
			return nil, fmt.Errorf("unknown location %q", t.location)
		}
		return a.Assess(ctx, loc, opts...)
	case cmd.Flags().Changed("lat"):
		if t.lat < -90 || t.lat > 90 || t.lon < -180 || t.lon > 180 {
			return nil, errors.New("coordinates out of range")
		}
		name := t.name
		if name == "" {
			name = fmt.Sprintf("%.4f,%.4f", t.lat, t.lon)
		}
		return a.Assess(ctx, models.Location{Name: name, Latitude: t.lat, Longitude: t.lon}, opts...)
	default:
		return a.AssessHere(ctx, opts...)
	}
}

func writeReport(w io.Writer, report *advisor.Report, output string) error {
	if output == "json" {
		return render.JSON(w, report)
	}
	return render.Text(w, report)
}

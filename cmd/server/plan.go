package main

import (
	"centre-scheduler-service/internal/adapters/routing"
	"centre-scheduler-service/internal/api/dto"
	"centre-scheduler-service/internal/domain"
	"centre-scheduler-service/internal/ports"
	"centre-scheduler-service/internal/services"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var planRoad bool

var planCmd = &cobra.Command{
	Use:   "plan <day.json>",
	Short: "Plan one centre meeting from a day file and print it as JSON",
	Long: `Read a day file describing the centre to place, the meeting date and the
officer's booked schedule, then print the recommended slot, rationale and
sequenced route as JSON. Use "-" to read the day file from stdin.

Day file:
  {
    "centre": {"name": "Kolar", "lat": 13.135, "lng": 78.13, "members": 10,
               "attendance_rate": 0.9, "collection_rate": 0.95, "frequency": "Weekly - Monday"},
    "date": "2024-01-01",
    "schedule": [{"centre": "Malur", "lat": 13.0, "lng": 77.94, "start": "10:00", "end": "10:30"}]
  }
`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&planRoad, "road", false, "Refine the route with the road routing service")
	rootCmd.AddCommand(planCmd)
}

// dayFile is the plan subcommand input. Windows and base fall back to
// configuration.
type dayFile struct {
	Centre   domain.Centre               `json:"centre"`
	Date     string                      `json:"date"`
	Windows  []domain.AvailabilityWindow `json:"windows"`
	Schedule []domain.MeetingStop        `json:"schedule"`
	Base     *domain.Coordinates         `json:"base"`
	BaseName string                      `json:"base_name"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	day, err := readDayFile(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	req, err := buildPlanRequest(day, cfg.Base(), cfg.BaseName, cfg.Tuning.DefaultWindows)
	if err != nil {
		return err
	}
	req.RefineRoad = planRoad

	var roads ports.RoadRouteProvider
	if planRoad {
		provider, err := routing.NewOSRMRoadProvider(cfg.RoutingURL, nil, logger)
		if err != nil {
			return err
		}
		roads = provider
	}

	planner := services.NewPlanner(services.NewRouteOptimizer(cfg.Tuning.Route), roads, logger)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	plan, err := planner.PlanMeeting(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewPlanResponse(req.Centre, plan))
}

func readDayFile(path string, stdin io.Reader) (dayFile, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return dayFile{}, fmt.Errorf("read day file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var day dayFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&day); err != nil {
		return dayFile{}, fmt.Errorf("read day file %q: %w", path, err)
	}
	return day, nil
}

func buildPlanRequest(
	day dayFile,
	base domain.Coordinates,
	baseName string,
	windows []domain.AvailabilityWindow,
) (services.PlanMeetingRequest, error) {
	req := services.PlanMeetingRequest{
		Centre:   day.Centre,
		BaseName: baseName,
		Base:     base,
		Windows:  windows,
		Schedule: day.Schedule,
	}

	req.Centre.Name = strings.TrimSpace(req.Centre.Name)
	if req.Centre.Name == "" {
		return req, errors.New("day file: centre.name is required")
	}

	req.MeetingDate = time.Now()
	if day.Date != "" {
		d, err := time.Parse(time.DateOnly, day.Date)
		if err != nil {
			return req, fmt.Errorf("day file: date must be YYYY-MM-DD: %w", err)
		}
		req.MeetingDate = d
	}

	if len(day.Windows) > 0 {
		req.Windows = day.Windows
	}
	for i, w := range req.Windows {
		if _, err := services.ParseClock(w.Start); err != nil {
			return req, fmt.Errorf("day file: windows[%d]: %w", i, err)
		}
		if _, err := services.ParseClock(w.End); err != nil {
			return req, fmt.Errorf("day file: windows[%d]: %w", i, err)
		}
	}
	for i, m := range req.Schedule {
		if _, err := services.ParseClock(m.Start); err != nil {
			return req, fmt.Errorf("day file: schedule[%d]: %w", i, err)
		}
		if _, err := services.ParseClock(m.End); err != nil {
			return req, fmt.Errorf("day file: schedule[%d]: %w", i, err)
		}
	}

	if day.Base != nil {
		req.Base = *day.Base
	}
	if name := strings.TrimSpace(day.BaseName); name != "" {
		req.BaseName = name
	}

	return req, nil
}

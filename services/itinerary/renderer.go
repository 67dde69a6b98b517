// Package itinerary formats planning results for display and calendar
// export, and keeps finished artifacts around for download.
package itinerary

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"voyago/models"
)

// Renderer produces the displayable representation of an artifact. Pure and
// deterministic given the artifact; the only side effect is the advisory
// cost-mismatch warning.
type Renderer struct {
	Logger *zap.Logger
}

// Render formats the artifact as markdown.
func (r *Renderer) Render(a *models.ItineraryArtifact) (string, error) {
	if a == nil {
		return "", fmt.Errorf("nil itinerary artifact")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Trip: %s → %s\n\n", a.Request.Origin, a.Request.Destination)
	fmt.Fprintf(&sb, "%d days starting %s, budget $%.0f\n\n", a.Request.Days, a.Request.StartDate, a.Request.BudgetUSD)

	if a.Summary != "" {
		sb.WriteString(a.Summary)
		sb.WriteString("\n\n")
	}

	if len(a.Notices) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, n := range a.Notices {
			fmt.Fprintf(&sb, "- %s\n", n.Message)
		}
		sb.WriteString("\n")
	}

	if len(a.Flights) > 0 {
		sb.WriteString("## Flights\n\n")
		for _, f := range a.Flights {
			fmt.Fprintf(&sb, "- %s", f.Airline)
			if f.FlightNumber != "" {
				fmt.Fprintf(&sb, " %s", f.FlightNumber)
			}
			fmt.Fprintf(&sb, " — %s → %s, $%.2f", f.Departure, f.Arrival, f.PriceUSD)
			if f.BookingURL != "" {
				fmt.Fprintf(&sb, " ([book](%s))", f.BookingURL)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(a.Lodging) > 0 {
		sb.WriteString("## Accommodation\n\n")
		for _, l := range a.Lodging {
			fmt.Fprintf(&sb, "- %s", l.Name)
			if l.Address != "" {
				fmt.Fprintf(&sb, ", %s", l.Address)
			}
			fmt.Fprintf(&sb, " — $%.2f/night", l.NightlyRateUSD)
			if l.URL != "" {
				fmt.Fprintf(&sb, " ([listing](%s))", l.URL)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	for _, day := range a.Days {
		fmt.Fprintf(&sb, "## Day %d", day.Day)
		if day.Title != "" {
			fmt.Fprintf(&sb, ": %s", day.Title)
		}
		if day.Date != "" {
			fmt.Fprintf(&sb, " (%s)", day.Date)
		}
		sb.WriteString("\n\n")
		for _, act := range day.Activities {
			sb.WriteString("- ")
			if act.Time != "" {
				fmt.Fprintf(&sb, "%s — ", act.Time)
			}
			sb.WriteString(act.Description)
			if act.Location != "" {
				fmt.Fprintf(&sb, " (%s)", act.Location)
			}
			if act.CostUSD > 0 {
				fmt.Fprintf(&sb, " — $%.2f", act.CostUSD)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "**Total estimated cost: $%.2f**\n", a.TotalCostUSD)

	r.checkAggregateCost(a)
	return sb.String(), nil
}

// checkAggregateCost recomputes the per-day sum and warns when the reported
// aggregate cannot cover it. Advisory only: the reported total regularly
// includes flight and lodging costs the per-day entries do not.
func (r *Renderer) checkAggregateCost(a *models.ItineraryArtifact) {
	activityTotal := lo.SumBy(a.Days, func(d models.DayPlan) float64 {
		return lo.SumBy(d.Activities, func(act models.Activity) float64 { return act.CostUSD })
	})
	if a.TotalCostUSD > 0 && activityTotal > a.TotalCostUSD && !almostEqual(activityTotal, a.TotalCostUSD) {
		r.Logger.Warn("Aggregate cost below summed activity costs",
			zap.String("itineraryId", a.ID),
			zap.Float64("totalCostUSD", a.TotalCostUSD),
			zap.Float64("activityCostUSD", activityTotal))
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"voyago/models"
)

type rawItinerary struct {
	Summary      string                 `json:"summary"`
	Days         []models.DayPlan       `json:"days"`
	Flights      []models.FlightOption  `json:"flights"`
	Lodging      []models.LodgingOption `json:"lodging"`
	TotalCostUSD float64                `json:"totalCostUSD"`
}

// parseArtifact turns the backend's raw output into an ItineraryArtifact and
// enforces the one shape invariant this layer owns: the day-plan count must
// equal the requested duration.
func parseArtifact(raw string, req models.TripRequest) (*models.ItineraryArtifact, error) {
	doc := extractJSON(raw)
	if doc == "" {
		return nil, models.IncompleteResultError{Reason: "no JSON document in model output", RawOutput: raw}
	}

	var parsed rawItinerary
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		return nil, models.IncompleteResultError{Reason: "model output is not valid JSON", RawOutput: raw, Err: err}
	}

	if len(parsed.Days) != req.Days {
		return nil, models.IncompleteResultError{
			Reason:    fmt.Sprintf("expected %d day plans, got %d", req.Days, len(parsed.Days)),
			RawOutput: raw,
		}
	}

	artifact := &models.ItineraryArtifact{
		Request:      req,
		Summary:      parsed.Summary,
		Days:         parsed.Days,
		Flights:      parsed.Flights,
		Lodging:      parsed.Lodging,
		TotalCostUSD: parsed.TotalCostUSD,
	}

	fillDayDefaults(artifact)

	if artifact.TotalCostUSD == 0 {
		artifact.TotalCostUSD = fallbackTotal(artifact)
	}
	return artifact, nil
}

// fillDayDefaults numbers the days and derives missing dates from the trip
// start date, so the renderer and the calendar exporter never see gaps.
func fillDayDefaults(a *models.ItineraryArtifact) {
	start, err := a.Request.Start()
	for i := range a.Days {
		if a.Days[i].Day == 0 {
			a.Days[i].Day = i + 1
		}
		if a.Days[i].Date == "" && err == nil {
			a.Days[i].Date = start.AddDate(0, 0, a.Days[i].Day-1).Format(models.DateLayout)
		}
	}
}

// fallbackTotal is used when the model omits the aggregate: activity costs
// plus the cheapest flight and the cheapest lodging option.
func fallbackTotal(a *models.ItineraryArtifact) float64 {
	total := a.ActivityCostUSD()
	if flight := cheapestFlight(a.Flights); flight > 0 {
		total += flight
	}
	if lodging := cheapestLodging(a.Lodging, a.Request.Days); lodging > 0 {
		total += lodging
	}
	return total
}

func cheapestFlight(flights []models.FlightOption) float64 {
	best := 0.0
	for _, f := range flights {
		if f.PriceUSD > 0 && (best == 0 || f.PriceUSD < best) {
			best = f.PriceUSD
		}
	}
	return best
}

func cheapestLodging(options []models.LodgingOption, nights int) float64 {
	best := 0.0
	for _, l := range options {
		price := l.TotalUSD
		if price == 0 && l.NightlyRateUSD > 0 {
			price = l.NightlyRateUSD * float64(nights)
		}
		if price > 0 && (best == 0 || price < best) {
			best = price
		}
	}
	return best
}

// extractJSON strips markdown fences and any prose around the outermost
// JSON object.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

package models

import "time"

// Activity is a single scheduled entry inside a day plan.
type Activity struct {
	Time        string  `json:"time,omitempty"` // HH:MM, local to the destination
	Description string  `json:"description"`
	Location    string  `json:"location,omitempty"`
	CostUSD     float64 `json:"costUSD"`
}

// DayPlan holds the ordered activities for one day of the trip.
type DayPlan struct {
	Day        int        `json:"day"` // 1-based
	Date       string     `json:"date,omitempty"`
	Title      string     `json:"title,omitempty"`
	Activities []Activity `json:"activities"`
}

// FlightOption is one flight suggestion returned by the planning run.
type FlightOption struct {
	Airline      string  `json:"airline"`
	FlightNumber string  `json:"flightNumber,omitempty"`
	Departure    string  `json:"departure"`
	Arrival      string  `json:"arrival"`
	PriceUSD     float64 `json:"priceUSD"`
	BookingURL   string  `json:"bookingURL,omitempty"`
}

// LodgingOption is one accommodation suggestion returned by the planning run.
type LodgingOption struct {
	Name           string  `json:"name"`
	Address        string  `json:"address,omitempty"`
	NightlyRateUSD float64 `json:"nightlyRateUSD"`
	TotalUSD       float64 `json:"totalUSD,omitempty"`
	URL            string  `json:"url,omitempty"`
}

// ToolNotice records a degraded-run condition, e.g. an unreachable tool.
// Notices are surfaced to the user alongside the itinerary, never dropped.
type ToolNotice struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
}

// ItineraryArtifact is the structured result of one planning run. It is
// immutable after creation; the renderer and the calendar exporter only
// read it.
type ItineraryArtifact struct {
	ID           string          `json:"id"`
	Request      TripRequest     `json:"request"`
	Summary      string          `json:"summary,omitempty"`
	Days         []DayPlan       `json:"days"`
	Flights      []FlightOption  `json:"flights,omitempty"`
	Lodging      []LodgingOption `json:"lodging,omitempty"`
	TotalCostUSD float64         `json:"totalCostUSD"`
	Notices      []ToolNotice    `json:"notices,omitempty"`
	GeneratedAt  time.Time       `json:"generatedAt"`
}

// ActivityCount returns the number of activity entries across all day plans.
func (a *ItineraryArtifact) ActivityCount() int {
	count := 0
	for _, day := range a.Days {
		count += len(day.Activities)
	}
	return count
}

// ActivityCostUSD returns the summed cost of all activity entries. The
// aggregate TotalCostUSD reported by the planner is advisory and may differ;
// the renderer logs a warning on mismatch instead of failing.
func (a *ItineraryArtifact) ActivityCostUSD() float64 {
	total := 0.0
	for _, day := range a.Days {
		for _, act := range day.Activities {
			total += act.CostUSD
		}
	}
	return total
}

package itinerary

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"voyago/models"
)

const calendarProdID = "-//Voyago//Trip Planner//EN"

// ExportCalendar serializes the artifact as an iCalendar file with one
// event per activity entry. Deterministic given the artifact.
func (r *Renderer) ExportCalendar(a *models.ItineraryArtifact) ([]byte, error) {
	if a == nil || len(a.Days) == 0 {
		return nil, models.ExportError{Msg: "itinerary has no day plans"}
	}

	start, err := a.Request.Start()
	if err != nil {
		// Artifacts always come from validated requests; a bad date here
		// means the artifact was constructed by hand.
		return nil, models.ExportError{Msg: "itinerary start date is unreadable", Err: err}
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProdID)

	for _, day := range a.Days {
		date := dayDate(start, day)
		for i, act := range day.Activities {
			event := cal.AddEvent(fmt.Sprintf("%s-%d-%d@voyago", a.ID, day.Day, i))
			event.SetDtStampTime(a.GeneratedAt)
			event.SetSummary(act.Description)
			if act.Location != "" {
				event.SetLocation(act.Location)
			}
			if act.CostUSD > 0 {
				event.SetDescription(fmt.Sprintf("Estimated cost: $%.2f", act.CostUSD))
			}

			if t, terr := time.Parse("15:04", act.Time); terr == nil {
				startAt := time.Date(date.Year(), date.Month(), date.Day(),
					t.Hour(), t.Minute(), 0, 0, time.UTC)
				event.SetStartAt(startAt)
				event.SetEndAt(startAt.Add(time.Hour))
			} else {
				event.SetAllDayStartAt(date)
				event.SetAllDayEndAt(date.AddDate(0, 0, 1))
			}
		}
	}

	return []byte(cal.Serialize()), nil
}

func dayDate(start time.Time, day models.DayPlan) time.Time {
	if day.Date != "" {
		if d, err := time.Parse(models.DateLayout, day.Date); err == nil {
			return d
		}
	}
	return start.AddDate(0, 0, day.Day-1)
}

package planner

import (
	"fmt"
	"strings"

	"voyago/models"
)

const systemPrompt = `You are a professional travel consultant that creates detailed travel itineraries with real flight data, accommodation options, and location services.

Use the available tools extensively: search flights with real prices and airlines, find accommodation with current pricing, calculate distances and travel times between locations, and search the web for current information. Never ask questions or request clarification; when information is missing, use your best judgment and the tools to fill the gaps.

When the itinerary is ready, respond with a single JSON document and nothing else, following exactly the schema given in the request.`

// outputContract is appended to every user prompt. The session rejects any
// response whose day count differs from the requested duration.
const outputContract = `Respond with one JSON object, no prose and no markdown fences, using this schema:
{
  "summary": "one-paragraph trip overview",
  "days": [
    {
      "day": 1,
      "date": "YYYY-MM-DD",
      "title": "short day title",
      "activities": [
        {"time": "09:00", "description": "...", "location": "...", "costUSD": 0}
      ]
    }
  ],
  "flights": [
    {"airline": "...", "flightNumber": "...", "departure": "...", "arrival": "...", "priceUSD": 0, "bookingURL": "..."}
  ],
  "lodging": [
    {"name": "...", "address": "...", "nightlyRateUSD": 0, "totalUSD": 0, "url": "..."}
  ],
  "totalCostUSD": 0
}
The "days" array must contain exactly %d entries, one per trip day.`

func userPrompt(req models.TripRequest, connectedTools []string) string {
	var sb strings.Builder

	sb.WriteString("Create a complete travel itinerary for this trip:\n\n")
	fmt.Fprintf(&sb, "Departure airport: %s\n", req.Origin)
	fmt.Fprintf(&sb, "Destination airport: %s\n", req.Destination)
	fmt.Fprintf(&sb, "Departure date: %s\n", req.StartDate)
	if req.ReturnDate != "" {
		fmt.Fprintf(&sb, "Return date: %s\n", req.ReturnDate)
	} else {
		sb.WriteString("Return date: one-way trip\n")
	}
	fmt.Fprintf(&sb, "Duration: %d days\n", req.Days)
	fmt.Fprintf(&sb, "Budget: $%.0f USD total\n", req.BudgetUSD)
	fmt.Fprintf(&sb, "Preferences: %s\n", req.PreferenceText())

	if len(connectedTools) > 0 {
		fmt.Fprintf(&sb, "\nConnected tool servers: %s\n", strings.Join(connectedTools, ", "))
	} else {
		sb.WriteString("\nNo tool servers are reachable right now; plan from your own knowledge and say so in the summary.\n")
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, outputContract, req.Days)
	return sb.String()
}

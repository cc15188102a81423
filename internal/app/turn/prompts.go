package turn

import (
	"encoding/json"
	"strings"

	"geopolis/internal/game"
)

// worldEngineInstructions is the fixed part of the world-engine system
// prompt: the output contract the validator enforces.
const worldEngineInstructions = `You are the world engine of a geopolitical simulation. Advance the world by one turn from the INPUT below.

Respond with a single JSON object and nothing else. Required top-level keys:
- "events": array of 3 to 20 events. Each event has "date" (in-world date), "summary" (short), "description" (detailed), "chatInitiated" (boolean), "chatContent" and "countryInvolved".
- If an event involves diplomatic contact, a formal condemnation, a protest, or a strong official reaction from another country, set "chatInitiated" to true, put that country's opening message in "chatContent", and list the involved country names in "countryInvolved" using exact names from INPUT's availableCountries (4 names at most). Otherwise set "chatInitiated" to false and set both "chatContent" and "countryInvolved" to null.
- "updatedGauges": object with numeric "economy", "power" and "popularity" reflecting the consequences of the turn.
- "advisorSummary": object with "date" and "summary" written from the player's advisor point of view; it may carry a "memory" array of {"type","description"} items worth remembering.
Optional keys: "countryChatsSummary" (array of {"country","summary","date"} where "country" is the stable country identifier), "borderChanges" (array of {"from","to","description"} using stable country identifiers, "to" null when a country regains sovereignty), "gameOver" (boolean).

Dates use the in-world calendar and never go backwards. Take the player's pending actions into account; they are directives for this turn.`

// buildSystemPrompt assembles the scenario, difficulty and contract parts.
// A non-empty corrective carries the previous attempt's rejection back to
// the model.
func buildSystemPrompt(tc *game.TurnContext, corrective string) string {
	var b strings.Builder
	if tc.EventPrompt != "" {
		b.WriteString(tc.EventPrompt)
		b.WriteString("\n\n")
	}
	if tc.Lore != "" {
		b.WriteString("Scenario background:\n")
		b.WriteString(tc.Lore)
		b.WriteString("\n\n")
	}
	if tc.DifficultyText != "" {
		b.WriteString(tc.DifficultyText)
		b.WriteString("\n\n")
	}
	b.WriteString(worldEngineInstructions)
	if corrective != "" {
		b.WriteString("\n\nYour previous response was rejected because: ")
		b.WriteString(corrective)
		b.WriteString("\nFix this and answer again with only the JSON object.")
	}
	return b.String()
}

// buildWorldInput serializes the per-turn context payload.
func buildWorldInput(tc *game.TurnContext) (string, error) {
	available := make([]string, 0, len(tc.Nations))
	for _, n := range tc.SovereignRoster() {
		available = append(available, n.Name)
	}
	in := worldInput{
		Turn:               tc.Turn,
		CurrentDate:        tc.Date,
		StartingDate:       tc.StartingDate,
		PlayerCountry:      tc.SelectedCountry,
		Gauges:             tc.Gauges,
		Trame:              tc.Trame,
		PlayerActions:      tc.Actions,
		CountryChats:       tc.CountryChats,
		AdvisorSummary:     tc.AdvisorSummary,
		AvailableCountries: available,
	}
	b, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	return "INPUT:\n" + string(b), nil
}

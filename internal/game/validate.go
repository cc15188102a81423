package game

import (
	"bytes"
	"fmt"
	"strings"
)

// Phrase families used by the diplomatic-consistency check. An event whose
// summary or description matches a contact or reaction phrase must declare
// chatInitiated=true, unless it also matches an exclusion phrase (purely
// domestic reactions). The lists mix English and French because the model is
// free to narrate in either.
var diplomaticPhrases = []string{
	"initie un contact diplomatique",
	"envoie un message diplomatique",
	"envoient des messages diplomatiques",
	"ont envoyé un message diplomatique",
	"ont adressé des messages diplomatiques",
	"a adressé un message diplomatique",
	"adressé des messages diplomatiques",
	"demande des éclaircissements",
	"demandent des éclaircissements",
	"sollicitant",
	"sollicite",
	"demande une réunion",
	"demandent une réunion",
	"initiates diplomatic contact",
	"sends a diplomatic message",
	"sends diplomatic messages",
	"sent a diplomatic message",
	"sent diplomatic messages",
	"demands clarification",
	"demand clarification",
	"contact diplomatique",
	"diplomatic contact",
	"diplomatic message",
	"message diplomatique",
	"messages diplomatiques",
	"a initié",
	"ont envoyé",
	"a envoyé",
	"ont adressé",
	"a adressé",
	"envoie",
	"envoient",
	"adressé",
	"adressent",
}

var reactionPhrases = []string{
	"condamne",
	"condamnation",
	"condamner",
	"condamné",
	"condemns",
	"condemnation",
	"proteste",
	"protestation",
	"protestent",
	"protests",
	"exprime son inquiétude",
	"expriment leur inquiétude",
	"expresses concern",
	"expressing concern",
	"préoccupation",
	"concern",
	"worries",
	"worried",
	"réagit",
	"réagissent",
	"reacts",
	"react",
	"menacé",
	"menacée",
	"threatened",
	"affecté",
	"affectée",
	"affected",
	"dénonce",
	"dénoncent",
	"denounces",
	"denounce",
}

// excludePhrases mark purely domestic reactions: financial markets, opinion
// polls, street demonstrations. They neutralize the families above.
var excludePhrases = []string{
	"marchés financiers",
	"marché financier",
	"bourses",
	"investisseurs",
	"traders",
	"analystes financiers",
	"réagissent positivement",
	"réagissent négativement",
	"anticipent",
	"financial markets",
	"stock market",
	"investors",
	"financial analysts",
	"manifestations",
	"manifestation",
	"manifestants",
	"manifestant",
	"protesters",
	"protesting",
	"sondages",
	"sondage",
	"polls",
	"poll",
	"popularité",
	"popularity",
	"sondages d'opinion",
	"opinion polls",
}

const (
	minEvents = 3
	maxEvents = 20
)

// ValidateWorldUpdate checks a parsed world update against the schema and
// the semantic rules. The returned error text is fed back to the model as a
// corrective directive, so messages are explicit about what to fix.
func ValidateWorldUpdate(u *WorldUpdate) error {
	var missing []string
	if u.Events == nil {
		missing = append(missing, "events")
	}
	if u.UpdatedGauges == nil {
		missing = append(missing, "updatedGauges")
	}
	if u.AdvisorSummary == nil {
		missing = append(missing, "advisorSummary")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required keys: %s", strings.Join(missing, ", "))
	}

	if err := checkDiplomaticConsistency(u.Events); err != nil {
		return err
	}

	if len(u.Events) < minEvents || len(u.Events) > maxEvents {
		return fmt.Errorf("invalid events array: must have %d-%d items, got %d", minEvents, maxEvents, len(u.Events))
	}

	for i := range u.Events {
		if err := validateEvent(i, &u.Events[i]); err != nil {
			return err
		}
	}

	var missingGauges []string
	if u.UpdatedGauges.Economy == nil {
		missingGauges = append(missingGauges, "economy")
	}
	if u.UpdatedGauges.Power == nil {
		missingGauges = append(missingGauges, "power")
	}
	if u.UpdatedGauges.Popularity == nil {
		missingGauges = append(missingGauges, "popularity")
	}
	if len(missingGauges) > 0 {
		return fmt.Errorf("missing required gauges: %s", strings.Join(missingGauges, ", "))
	}

	if u.AdvisorSummary.Date == "" || u.AdvisorSummary.Summary == "" {
		return fmt.Errorf("advisorSummary must have date and summary")
	}
	return nil
}

func validateEvent(i int, e *EventUpdate) error {
	if e.Date == "" || e.Summary == "" || e.Description == "" {
		return fmt.Errorf("event at index %d is missing required fields: date, summary, or description", i)
	}
	if e.ChatInitiated == nil {
		return fmt.Errorf("event at index %d is missing or has invalid chatInitiated field (must be boolean)", i)
	}
	if *e.ChatInitiated {
		content, ok := e.ChatContentString()
		if !ok || strings.TrimSpace(content) == "" {
			return fmt.Errorf("event at index %d has chatInitiated=true but chatContent is missing, null, or empty", i)
		}
		names, ok := e.CountriesInvolved()
		if !ok || len(names) == 0 {
			return fmt.Errorf("event at index %d has chatInitiated=true but countryInvolved is missing, null, or empty array", i)
		}
		return nil
	}
	if !isExplicitNull(e.ChatContent) {
		return fmt.Errorf("event at index %d has chatInitiated=false but chatContent is not null", i)
	}
	if !isExplicitNull(e.CountryInvolved) {
		return fmt.Errorf("event at index %d has chatInitiated=false but countryInvolved is not null", i)
	}
	return nil
}

// isExplicitNull requires a literal JSON null; an absent key does not count.
func isExplicitNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func checkDiplomaticConsistency(events []EventUpdate) error {
	var offending []string
	for i := range events {
		e := &events[i]
		if !mentionsDiplomaticContact(e) {
			continue
		}
		if !e.ChatInitiatedTrue() {
			offending = append(offending, fmt.Sprintf("%q", e.Summary))
		}
	}
	if len(offending) == 0 {
		return nil
	}
	examples := offending
	if len(examples) > 3 {
		examples = examples[:3]
	}
	return fmt.Errorf(
		"INVALID RESPONSE: %d event(s) mention diplomatic contact, condemnations, protests, or strong reactions (examples: %s) but chatInitiated is not true. You MUST set chatInitiated=true, provide chatContent, and list countries in countryInvolved (using exact names from INPUT's availableCountries) for EACH such event",
		len(offending), strings.Join(examples, ", "))
}

func mentionsDiplomaticContact(e *EventUpdate) bool {
	text := strings.ToLower(e.Summary) + " " + strings.ToLower(e.Description)
	for _, phrase := range excludePhrases {
		if strings.Contains(text, phrase) {
			return false
		}
	}
	for _, phrase := range diplomaticPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	for _, phrase := range reactionPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

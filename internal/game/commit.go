package game

import (
	"fmt"
	"strings"
)

// TurnContext is the immutable per-turn input record the context assembler
// produces from persisted state. It feeds both the world-engine prompt and
// the derivation of the commit write set.
type TurnContext struct {
	Turn            int
	Date            string
	StartingDate    string
	SelectedCountry string // svgId of the player's nation
	Difficulty      string
	DifficultyText  string
	Lore            string
	EventPrompt     string

	Gauges         Gauges
	Trame          []TrameEntry
	TrameRaw       string
	Actions        []ActionInput
	CountryChats   []ChatContextEntry
	AdvisorSummary string
	AdvisorTrame   string
	Nations        []NationRef
}

type ActionInput struct {
	ActionID    string `json:"actionId"`
	Description string `json:"description"`
}

type TranscriptMessage struct {
	Speaker string `json:"speaker"` // "USER" or "COUNTRY"
	Country string `json:"country,omitempty"`
	Message string `json:"message"`
	Date    string `json:"date,omitempty"`
}

type ChatContextEntry struct {
	Country  string              `json:"country"` // svgId
	Summary  string              `json:"summary"`
	Messages []TranscriptMessage `json:"messages,omitempty"`
}

// SovereignRoster filters the game's nations down to diplomatic-counterparty
// eligibility.
func (c *TurnContext) SovereignRoster() []NationRef {
	out := make([]NationRef, 0, len(c.Nations))
	for _, n := range c.Nations {
		if n.Sovereign {
			out = append(out, n)
		}
	}
	return out
}

// Bounds applied while deriving the write set.
const (
	maxMemberSummaryLen  = 2000
	maxAdvisorTrameLen   = 5000
	maxTrameSummaryLen   = 500
	maxDateTokenLen      = 10
	maxSvgIDLen          = 10
	maxChatContextLen    = 500
	maxOwnerNameLen      = 100
	maxAdvisorMemoryType = 50
	maxAdvisorMemoryDesc = 500
)

// TurnCommit is the fully-resolved write set one validated world update
// produces. The store applies it as a single transaction; everything here is
// already matched and bounded, so the transactional window stays free of
// business logic and external I/O.
type TurnCommit struct {
	Turn     int
	NextTurn int
	NextDate string

	Gauges          Gauges
	Trame           string
	Events          []EventCommit
	MemberSummaries []MemberSummaryUpsert
	AdvisorTrame    string
	BorderChanges   []BorderResolution
	GameOver        bool
}

type EventCommit struct {
	Date        string
	Summary     string
	Description string

	ChatInitiated bool
	ChatContent   string
	NewChat       *ChatCreate
}

// ChatCreate describes one diplomatic chat spawned by an event, with its
// member nations resolved and the opening message attributed to the first
// matched nation.
type ChatCreate struct {
	Context        string
	NationIDs      []string
	NationNames    []string
	OpeningNation  string
	OpeningMessage string
	Date           string
}

type MemberSummaryUpsert struct {
	NationID string
	Summary  string
}

// BorderResolution transfers ownership of NationID; a nil Owner restores
// sovereignty.
type BorderResolution struct {
	NationID  string
	Owner     *string
	Sovereign bool
}

// BuildTurnCommit derives the atomic write set from a validated world
// update. Resolution misses (unknown svgId, unmatched counterpart names,
// too many raw names) are non-fatal: the sub-step is skipped and reported
// in the returned warnings for the caller to log.
func BuildTurnCommit(ctx *TurnContext, u *WorldUpdate) (*TurnCommit, []string) {
	var warnings []string
	roster := ctx.SovereignRoster()

	commit := &TurnCommit{
		Turn:     ctx.Turn,
		NextTurn: ctx.Turn + 1,
		NextDate: ctx.Date,
		Gauges:   u.UpdatedGauges.Values(),
		GameOver: u.GameOver,
	}
	if n := len(u.Events); n > 0 {
		commit.NextDate = u.Events[n-1].Date
	}

	// Events, plus the diplomatic chats they spawn.
	for i := range u.Events {
		e := &u.Events[i]
		ec := EventCommit{Date: e.Date, Summary: e.Summary, Description: e.Description}
		if e.ChatInitiatedTrue() {
			ec.ChatInitiated = true
			content, _ := e.ChatContentString()
			ec.ChatContent = Truncate(content, maxMessageLen)
			names, _ := e.CountriesInvolved()
			chat, warn := buildChatCreate(i, ec, names, roster)
			if warn != "" {
				warnings = append(warnings, warn)
			}
			ec.NewChat = chat
		}
		commit.Events = append(commit.Events, ec)
	}

	// Trame: one entry per event, one per diplomatic chat summary.
	batch := make([]TrameEntry, 0, len(u.Events)+len(u.CountryChatsSummary))
	for _, e := range u.Events {
		batch = append(batch, TrameEntry{Date: e.Date, Summary: e.Summary})
	}
	for _, cs := range u.CountryChatsSummary {
		if cs.Country == "" || cs.Summary == "" || cs.Date == "" {
			continue
		}
		batch = append(batch, TrameEntry{
			Date:    Truncate(cs.Date, maxDateTokenLen),
			Summary: fmt.Sprintf("[Diplomacy] %s: %s", cs.Country, Truncate(cs.Summary, maxTrameSummaryLen)),
		})
	}
	commit.Trame = EncodeTrame(MergeTrame(ctx.Trame, batch))

	// Per-member rolling summaries, resolved by stable identifier.
	for _, cs := range u.CountryChatsSummary {
		svgID := Truncate(cs.Country, maxSvgIDLen)
		nation, ok := FindBySvgID(ctx.Nations, svgID)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("chat summary for unknown country %q skipped", cs.Country))
			continue
		}
		commit.MemberSummaries = append(commit.MemberSummaries, MemberSummaryUpsert{
			NationID: nation.ID,
			Summary:  Truncate(cs.Summary, maxMemberSummaryLen),
		})
	}

	commit.AdvisorTrame = appendAdvisorTrame(ctx.AdvisorTrame, u.AdvisorSummary)

	// Territorial ownership changes, resolved by stable identifier.
	for _, bc := range u.BorderChanges {
		from, ok := FindBySvgID(ctx.Nations, Truncate(bc.From, maxSvgIDLen))
		if !ok {
			warnings = append(warnings, fmt.Sprintf("border change from unknown country %q skipped", bc.From))
			continue
		}
		res := BorderResolution{NationID: from.ID, Sovereign: true}
		if bc.To != nil {
			if to, ok := FindBySvgID(ctx.Nations, Truncate(*bc.To, maxSvgIDLen)); ok {
				owner := Truncate(to.Name, maxOwnerNameLen)
				res.Owner = &owner
				res.Sovereign = false
			}
		}
		commit.BorderChanges = append(commit.BorderChanges, res)
	}

	return commit, warnings
}

func buildChatCreate(eventIndex int, ec EventCommit, rawNames []string, roster []NationRef) (*ChatCreate, string) {
	names := make([]string, 0, len(rawNames))
	for _, n := range rawNames {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) == 0 || len(names) > maxRawNames {
		return nil, fmt.Sprintf("invalid countryInvolved count (%d) for event %d, skipping chat creation", len(names), eventIndex)
	}

	matched, ambiguous := MatchNations(names, roster)
	warn := ""
	if len(ambiguous) > 0 {
		warn = fmt.Sprintf("ambiguous country names %v for event %d, first match kept", ambiguous, eventIndex)
	}
	if len(matched) == 0 {
		return nil, fmt.Sprintf("no sovereign countries match %v for event %d, skipping chat creation", names, eventIndex)
	}

	date := Truncate(ec.Date, maxDateTokenLen)
	chat := &ChatCreate{
		Context:        Truncate(fmt.Sprintf("Chat opened automatically after the event of %s", date), maxChatContextLen),
		OpeningNation:  matched[0].Name,
		OpeningMessage: ec.ChatContent,
		Date:           date,
	}
	for _, m := range matched {
		chat.NationIDs = append(chat.NationIDs, m.ID)
		chat.NationNames = append(chat.NationNames, m.Name)
	}
	return chat, warn
}

func appendAdvisorTrame(existing string, summary *AdvisorSummary) string {
	text := Truncate(summary.Summary, maxMemberSummaryLen)
	for _, m := range summary.Memory {
		text += "\n" + Truncate(m.Type, maxAdvisorMemoryType) + ": " + Truncate(m.Description, maxAdvisorMemoryDesc)
	}
	if existing != "" {
		text = existing + "\n" + text
	}
	return Truncate(text, maxAdvisorTrameLen)
}

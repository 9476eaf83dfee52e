package research

import "time"

// Event types published during a run. Error steps can appear mid-run
// for iteration-level failures; the run itself always ends with exactly
// one terminal step, complete or error, and nothing after it.
const (
	TypeStart       = "start"
	TypeThought     = "thought"
	TypeAction      = "action"
	TypeObservation = "observation"
	TypeLead        = "lead"
	TypeComplete    = "complete"
	TypeError       = "error"
)

// The closed tool vocabulary. Actions never name anything else.
const (
	ToolSearch   = "search"
	ToolEnrich   = "enrich"
	ToolScore    = "score"
	ToolSave     = "save"
	ToolComplete = "complete"
)

// Step is one progress item of a run, delivered to the run's stream
// subscriber and to the global event hub.
type Step struct {
	Type    string         `json:"type"`
	Tool    string         `json:"tool,omitempty"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
	At      time.Time      `json:"at"`
}

const recentNoteWindow = 8

// runState is the runner's working memory for one run. Only counters
// and a short note window feed back into the model, never a transcript.
type runState struct {
	iteration int
	saved     int
	notes     []string
}

func (s *runState) note(msg string) {
	s.notes = append(s.notes, msg)
	if len(s.notes) > recentNoteWindow {
		s.notes = s.notes[len(s.notes)-recentNoteWindow:]
	}
}

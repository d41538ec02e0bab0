package domain

type SuggestionAction string

const (
	ActionNone            SuggestionAction = ""
	ActionBroadenFilters  SuggestionAction = "broaden_filters"
	ActionCheckSpelling   SuggestionAction = "check_spelling"
	ActionTryNearby       SuggestionAction = "try_nearby"
	ActionRetry           SuggestionAction = "retry"
	ActionCheckConnection SuggestionAction = "check_connection"
	ActionWait            SuggestionAction = "wait"
	ActionSignIn          SuggestionAction = "sign_in"
	ActionPopular         SuggestionAction = "popular"
)

// Suggestion either points at a ready-made query (Query) or asks the
// surface to perform a corrective action (Action).
type Suggestion struct {
	Label  string           `json:"label"`
	Query  string           `json:"query,omitempty"`
	Action SuggestionAction `json:"action,omitempty"`
}

func (s Suggestion) IsQuery() bool {
	return s.Query != ""
}

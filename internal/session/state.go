package session

// State is the navigation state of one dashboard session: the selected
// collection, the active search filter and the current page. The state
// travels with the client and is never stored server side.
type State struct {
	Collection string `json:"collection"`
	Search     string `json:"search"`
	Page       int    `json:"page"`
}

// ActionKind enumerates the session transitions.
type ActionKind string

const (
	SelectCollection ActionKind = "select_collection"
	SetSearch        ActionKind = "set_search"
	NextPage         ActionKind = "next_page"
	PrevPage         ActionKind = "prev_page"
)

// Action is one requested state transition. Value carries the collection
// name or search term for the actions that need one.
type Action struct {
	Kind  ActionKind `json:"kind"`
	Value string     `json:"value,omitempty"`
}

// Reduce applies an action to a state and returns the next state. Pure:
// the input is never mutated. Changing the collection or the search term
// resets to the first page, since the page position is meaningless once
// the underlying symbol list changes.
func Reduce(s State, a Action) State {
	switch a.Kind {
	case SelectCollection:
		if a.Value != s.Collection {
			s.Collection = a.Value
			s.Search = ""
			s.Page = 1
		}
	case SetSearch:
		if a.Value != s.Search {
			s.Search = a.Value
			s.Page = 1
		}
	case NextPage:
		s.Page++
	case PrevPage:
		s.Page--
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

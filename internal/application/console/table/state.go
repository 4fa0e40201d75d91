package table

// Kind names a resource table, e.g. "users".
type Kind string

// Menu is the action menu of a table: either closed (the zero value) or open
// on exactly one row of one resource.
type Menu struct {
	Kind Kind   `json:"kind,omitempty"`
	ID   string `json:"id,omitempty"`
}

// NoMenu is the closed menu.
func NoMenu() Menu {
	return Menu{}
}

// OpenMenu is the menu open on row id of kind.
func OpenMenu(kind Kind, id string) Menu {
	return Menu{Kind: kind, ID: id}
}

func (m Menu) IsOpen() bool {
	return m.ID != ""
}

// Is reports whether the menu is open on row id of kind.
func (m Menu) Is(kind Kind, id string) bool {
	return m.IsOpen() && m.Kind == kind && m.ID == id
}

// State is everything a viewer changes on a table without calling the API.
// Refresh is bumped by every successful mutation and forces a re-fetch.
type State struct {
	Query   string `json:"query"`
	Page    int    `json:"page"`
	Menu    Menu   `json:"menu"`
	Refresh int64  `json:"refresh"`
}

// NewState is the state of a table that was never touched: no query, page 1,
// menu closed.
func NewState() State {
	return State{Page: 1}
}

func (s State) normalized() State {
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

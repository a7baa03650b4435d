package gate

// Action describes the kind of operation a caller wants to perform.
type Action string

const (
	ActionList   Action = "list"
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actions lists every action, in route order.
var Actions = []Action{ActionList, ActionView, ActionCreate, ActionUpdate, ActionDelete}

// IsRead reports whether the action leaves the store untouched.
func (a Action) IsRead() bool { return a == ActionList || a == ActionView }

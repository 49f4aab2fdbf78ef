package model

// Action is the calendar change decided for a day
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionRecover Action = "recover"
	ActionDegrade Action = "degrade"
	ActionRemove  Action = "remove"
	ActionNoOp    Action = "no-op"
)

// DegradeMode selects what happens to a good event once its window disappears
type DegradeMode string

const (
	DegradeRetitle DegradeMode = "retitle"
	DegradeDelete  DegradeMode = "delete"
)

// ParseDegradeMode returns the mode for value, defaulting to retitle
func ParseDegradeMode(value string) (DegradeMode, bool) {
	switch DegradeMode(value) {
	case DegradeRetitle, "":
		return DegradeRetitle, true
	case DegradeDelete:
		return DegradeDelete, true
	default:
		return DegradeRetitle, false
	}
}

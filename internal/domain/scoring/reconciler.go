package scoring

import (
	"surf-calendar/internal/domain/entity"
	"surf-calendar/internal/domain/model"
)

// Decide maps the existing event state and the presence of a window to a calendar action
func Decide(existing entity.EventState, hasWindow bool, mode model.DegradeMode) model.Action {
	switch existing {
	case entity.EventStateGood:
		if hasWindow {
			return model.ActionUpdate
		}
		if mode == model.DegradeDelete {
			return model.ActionRemove
		}
		return model.ActionDegrade
	case entity.EventStateDegraded:
		if hasWindow {
			return model.ActionRecover
		}
		return model.ActionNoOp
	default:
		if hasWindow {
			return model.ActionCreate
		}
		return model.ActionNoOp
	}
}

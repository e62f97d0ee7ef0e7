package campaign

// Type identifies one stage of the reminder sequence for a SWMS job.
type Type string

const (
	TypeInitial    Type = "initial"
	TypeReminder7  Type = "reminder_7"
	TypeReminder14 Type = "reminder_14"
	TypeFinal21    Type = "final_21"
)

// AllTypes in materialization order. The order has no scheduling meaning;
// eligibility is decided purely by scheduled_date.
func AllTypes() []Type {
	return []Type{TypeInitial, TypeReminder7, TypeReminder14, TypeFinal21}
}

func (t Type) Valid() bool {
	switch t {
	case TypeInitial, TypeReminder7, TypeReminder14, TypeFinal21:
		return true
	}
	return false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// CanTransition enforces the one-directional status machine. The only legal
// moves are pending->active, active->completed, active->failed, and
// {pending,active}->cancelled. failed and completed are terminal.
func (s Status) CanTransition(to Status) bool {
	switch s {
	case StatusPending:
		return to == StatusActive || to == StatusCancelled
	case StatusActive:
		return to == StatusCompleted || to == StatusFailed || to == StatusCancelled
	default:
		return false
	}
}

// TransitionsInto lists every status allowed to move to target. Conditional
// writes use it as the expected-prior-status set, so the machine above is the
// single source of truth for what a claim, completion, or cancel may replace.
func TransitionsInto(target Status) []Status {
	all := []Status{StatusPending, StatusActive, StatusCompleted, StatusCancelled, StatusFailed}
	var from []Status
	for _, s := range all {
		if s.CanTransition(target) {
			from = append(from, s)
		}
	}
	return from
}

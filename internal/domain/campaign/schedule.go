package campaign

import "time"

// offsetDays maps each campaign type to how many days before the job's due
// date it fires. The mapping is deliberately an explicit table rather than
// something parsed out of the type name: "reminder_14" fires 14 days before
// the due date, so a job due 2025-03-21 schedules it for 2025-03-07.
var offsetDays = map[Type]int{
	TypeInitial:    0,
	TypeReminder7:  7,
	TypeReminder14: 14,
	TypeFinal21:    21,
}

// ScheduledDate computes when a campaign of type t becomes due for a job with
// the given due date.
func ScheduledDate(dueDate time.Time, t Type) time.Time {
	return dueDate.AddDate(0, 0, -offsetDays[t])
}

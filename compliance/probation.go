package compliance

import "fmt"

// =============================================================================
// PROBATION EVALUATOR
// =============================================================================

// probationReviewWindowDays is the window before probation end in which a
// review is flagged. Day 14 flags, day 15 does not.
const probationReviewWindowDays = 14

// EvaluateProbation produces a single item. No probation end date on file
// means probation does not apply to this employee.
func EvaluateProbation(e EmployeeRecord, today TimePoint) Item {
	item := Item{Category: CategoryProbation, Label: "Probation Period"}

	if e.ProbationEnd.IsZero() {
		item.Status = StatusNotApplicable
		item.Detail = "No probation period"
		return item
	}

	days := DaysUntil(today, e.ProbationEnd)
	item.Expiry = e.ProbationEnd
	item.DaysLeft = &days

	switch {
	case days < 0:
		item.Status = StatusCompliant
		item.Detail = "Completed"
	case days <= probationReviewWindowDays:
		item.Status = StatusExpiringSoon
		item.Detail = fmt.Sprintf("Review due in %d days", days)
		item.Action = &Action{Tag: "schedule_review", Meta: map[string]string{"employee_id": string(e.ID)}}
	default:
		item.Status = StatusCompliant
		item.Detail = fmt.Sprintf("Ends %s", e.ProbationEnd)
	}
	return item
}

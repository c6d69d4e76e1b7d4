package compliance

import "fmt"

// =============================================================================
// TRAINING EVALUATOR
// =============================================================================

// trainingExpiryWarningDays is the window before course expiry in which a
// current course degrades to expiring_soon. Day 60 warns, day 61 does not.
const trainingExpiryWarningDays = 60

// EvaluateTraining produces one item per mandatory course record. An
// employee with no mandatory courses gets no training items at all; the
// category rollup then resolves to not_applicable.
func EvaluateTraining(records []TrainingRecord, today TimePoint) []Item {
	items := make([]Item, 0, len(records))
	for _, r := range records {
		items = append(items, evaluateCourse(r, today))
	}
	return items
}

func evaluateCourse(r TrainingRecord, today TimePoint) Item {
	item := Item{Category: CategoryTraining, Label: courseLabel(r)}
	if !r.Expiry.IsZero() {
		days := DaysUntil(today, r.Expiry)
		item.Expiry = r.Expiry
		item.DaysLeft = &days
	}

	switch r.Status {
	case TrainingCurrent, TrainingCompliant:
		if item.DaysLeft != nil && *item.DaysLeft <= trainingExpiryWarningDays {
			item.Status = StatusExpiringSoon
			item.Detail = fmt.Sprintf("Expires in %d days", *item.DaysLeft)
			item.Action = &Action{Tag: "book_refresher", Meta: map[string]string{"course_id": r.CourseID}}
			return item
		}
		item.Status = StatusCompliant
		item.Detail = "Up to date"

	case TrainingExpired:
		item.Status = StatusExpired
		item.Detail = "Certification expired"
		item.Action = &Action{Tag: "book_refresher", Meta: map[string]string{"course_id": r.CourseID}}

	case TrainingExpiringSoon:
		item.Status = StatusExpiringSoon
		item.Detail = "Renewal due"
		item.Action = &Action{Tag: "book_refresher", Meta: map[string]string{"course_id": r.CourseID}}

	case TrainingInProgress:
		item.Status = StatusActionRequired
		item.Detail = "In progress"

	case TrainingAssigned:
		item.Status = StatusActionRequired
		item.Detail = "Assigned, not started"

	default:
		item.Status = StatusMissing
		item.Detail = "No completion recorded"
		item.Action = &Action{Tag: "assign_course", Meta: map[string]string{"course_id": r.CourseID}}
	}
	return item
}

func courseLabel(r TrainingRecord) string {
	if r.CourseName != "" {
		return r.CourseName
	}
	if r.CourseCode != "" {
		return r.CourseCode
	}
	return "Mandatory Training"
}

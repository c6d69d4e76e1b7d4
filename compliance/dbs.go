package compliance

import "fmt"

// =============================================================================
// BACKGROUND-CHECK (DBS) EVALUATOR
// =============================================================================

// dbsRecheckAfterDays is the age beyond which a clear DBS check is flagged
// for renewal. Exactly 1095 days (three years) is still compliant; 1096 is
// not.
const dbsRecheckAfterDays = 1095

// EvaluateDBS converts the employee's background-check fields into a single
// item. A clear check older than three years degrades to expiring_soon; a
// role that needs no check yields not_applicable.
func EvaluateDBS(e EmployeeRecord, today TimePoint) Item {
	item := Item{Category: CategoryDBS, Label: "DBS Check"}

	switch e.DBSStatus {
	case DBSNotRequired:
		item.Status = StatusNotApplicable
		item.Detail = "Not required for this role"

	case DBSClear:
		if !e.DBSCheckDate.IsZero() {
			age := DaysBetween(e.DBSCheckDate, today)
			if age > dbsRecheckAfterDays {
				item.Status = StatusExpiringSoon
				item.Detail = fmt.Sprintf("Checked %d+ years ago", age/365)
				item.Action = &Action{Tag: "request_dbs_recheck", Meta: map[string]string{"employee_id": string(e.ID)}}
				return item
			}
		}
		item.Status = StatusCompliant
		item.Detail = dbsClearDetail(e)

	case DBSPending:
		item.Status = StatusActionRequired
		item.Detail = "Check in progress"

	case DBSIssuesFound:
		item.Status = StatusActionRequired
		item.Detail = "Issues found on certificate"
		item.Action = &Action{Tag: "review_dbs", Meta: map[string]string{"employee_id": string(e.ID)}}

	default:
		item.Status = StatusMissing
		item.Detail = "No DBS check recorded"
		item.Action = &Action{Tag: "request_dbs_check", Meta: map[string]string{"employee_id": string(e.ID)}}
	}
	return item
}

func dbsClearDetail(e EmployeeRecord) string {
	detail := "Clear"
	if e.DBSCertificateNumber != "" {
		detail = fmt.Sprintf("Clear (certificate %s)", e.DBSCertificateNumber)
	}
	if e.DBSUpdateService {
		detail += ", on update service"
	}
	return detail
}

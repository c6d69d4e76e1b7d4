package compliance

import "fmt"

// =============================================================================
// RIGHT-TO-WORK EVALUATOR
// =============================================================================

// rtwSupportingDocTypes are the document types that count as evidence for a
// verified right-to-work status.
var rtwSupportingDocTypes = []DocumentType{DocRightToWork, DocVisa, DocPassport}

// rtwExpiryWarningDays is the window before RTW expiry in which the status
// degrades to expiring_soon. Inclusive on both ends: day 0 and day 90 both
// warn, day 91 does not.
const rtwExpiryWarningDays = 90

// EvaluateRightToWork converts the employee's right-to-work fields into one
// primary item, plus a second "RTW Supporting Document" item whenever no
// supporting document (right_to_work, visa or passport) is on file.
func EvaluateRightToWork(e EmployeeRecord, docs DocumentSet, today TimePoint) []Item {
	hasDoc := docs.HasAny(rtwSupportingDocTypes...)
	primary := rtwPrimaryItem(e, hasDoc, today)

	items := []Item{primary}
	if !hasDoc && primary.Status != StatusNotApplicable {
		items = append(items, Item{
			Category: CategoryRightToWork,
			Label:    "RTW Supporting Document",
			Status:   StatusMissing,
			Detail:   "No right to work, visa or passport document on file",
			Action: &Action{
				Tag:  "upload_document",
				Meta: map[string]string{"document_type": string(DocRightToWork)},
			},
		})
	}
	return items
}

func rtwPrimaryItem(e EmployeeRecord, hasDoc bool, today TimePoint) Item {
	item := Item{Category: CategoryRightToWork, Label: "Right to Work"}

	switch e.RTWStatus {
	case RTWNotRequired:
		item.Status = StatusCompliant
		item.Detail = "Not required"

	case RTWVerified:
		if !e.RTWExpiry.IsZero() {
			days := DaysUntil(today, e.RTWExpiry)
			item.Expiry = e.RTWExpiry
			item.DaysLeft = &days
			switch {
			case days < 0:
				item.Status = StatusExpired
				item.Detail = fmt.Sprintf("Expired on %s", e.RTWExpiry)
				item.Action = &Action{Tag: "record_rtw_check", Meta: map[string]string{"employee_id": string(e.ID)}}
			case days <= rtwExpiryWarningDays:
				item.Status = StatusExpiringSoon
				item.Detail = fmt.Sprintf("Expires in %d days (%s)", days, e.RTWExpiry)
				item.Action = &Action{Tag: "record_rtw_check", Meta: map[string]string{"employee_id": string(e.ID)}}
			default:
				item.Status, item.Detail = rtwVerifiedStatus(e, hasDoc)
			}
			return item
		}
		item.Status, item.Detail = rtwVerifiedStatus(e, hasDoc)

	case RTWExpired:
		item.Status = StatusExpired
		item.Detail = "Right to work has expired"
		item.Action = &Action{Tag: "record_rtw_check", Meta: map[string]string{"employee_id": string(e.ID)}}

	case RTWPending:
		item.Status = StatusActionRequired
		item.Detail = "Verification in progress"

	default:
		item.Status = StatusMissing
		item.Detail = "No right to work check recorded"
		item.Action = &Action{Tag: "record_rtw_check", Meta: map[string]string{"employee_id": string(e.ID)}}
	}
	return item
}

// rtwVerifiedStatus resolves a verified status that is not inside the expiry
// warning window: compliant when a supporting document backs it up,
// action_required otherwise.
func rtwVerifiedStatus(e EmployeeRecord, hasDoc bool) (Status, string) {
	label := e.RTWDocumentType
	if label == "" {
		label = "document"
	}
	if hasDoc {
		return StatusCompliant, fmt.Sprintf("Verified (%s)", label)
	}
	return StatusActionRequired, "Verified but no supporting document uploaded"
}

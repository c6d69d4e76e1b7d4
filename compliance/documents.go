package compliance

// =============================================================================
// DOCUMENTS EVALUATOR
// =============================================================================

// EvaluateDocuments produces exactly three independent items: employment
// contract on file, national insurance number recorded, and pension
// auto-enrolment done. Pension is never "missing" — enrolment is an
// administrative action, not a document.
func EvaluateDocuments(e EmployeeRecord, docs DocumentSet) []Item {
	items := make([]Item, 0, 3)

	contract := Item{Category: CategoryDocuments, Label: "Employment Contract"}
	if docs.HasAny(DocContract, DocEmploymentContract) {
		contract.Status = StatusCompliant
		contract.Detail = "On file"
	} else {
		contract.Status = StatusMissing
		contract.Detail = "No signed contract uploaded"
		contract.Action = &Action{Tag: "upload_document", Meta: map[string]string{"document_type": string(DocContract)}}
	}
	items = append(items, contract)

	ni := Item{Category: CategoryDocuments, Label: "National Insurance Number"}
	if e.NINumber != "" {
		ni.Status = StatusCompliant
		ni.Detail = "Recorded"
	} else {
		ni.Status = StatusMissing
		ni.Detail = "Not recorded"
		ni.Action = &Action{Tag: "update_profile", Meta: map[string]string{"field": "ni_number"}}
	}
	items = append(items, ni)

	pension := Item{Category: CategoryDocuments, Label: "Pension Auto-Enrolment"}
	if e.PensionEnrolled {
		pension.Status = StatusCompliant
		pension.Detail = "Enrolled"
	} else {
		pension.Status = StatusActionRequired
		pension.Detail = "Not yet enrolled"
		pension.Action = &Action{Tag: "enrol_pension", Meta: map[string]string{"employee_id": string(e.ID)}}
	}
	items = append(items, pension)

	return items
}

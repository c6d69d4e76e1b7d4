/*
builder.go - Index building and the per-employee compliance fold

PURPOSE:

	Orchestrates the five category evaluators over every eligible employee.
	Raw rows are grouped once into lookup indexes keyed by employee id, then
	each employee is folded independently, so the whole build is linear in
	(employees + documents + training + site access) instead of quadratic.

PRECONDITIONS (the caller's side of the contract):
  - Employees: terminated employees and platform admins already excluded
  - Training:  mandatory courses only (non-mandatory rows are skipped
    defensively anyway)
  - Today:     injected; Build never reads the system clock when it is set

RE-ENTRANCY:

	Every Build call constructs its own indexes and output slice. Concurrent
	builds with different inputs share nothing; discarding a stale result is
	the caller's job.

SEE ALSO:
  - rtw.go, dbs.go, training.go, documents.go, probation.go: the evaluators
  - filter.go: narrowing the built collection
  - summary.go: reducing it to KPIs
*/
package compliance

import "sort"

// =============================================================================
// INPUT - The four raw collections plus the reference date
// =============================================================================

// Input carries the complete (possibly empty) record sets for one build
// cycle. A zero Today falls back to the current calendar day; tests always
// inject a fixed date.
type Input struct {
	Employees  []EmployeeRecord
	Documents  []DocumentRecord
	Training   []TrainingRecord
	SiteAccess []SiteAccessRecord
	Today      TimePoint
}

// =============================================================================
// LOOKUP INDEXES - Built once per invocation
// =============================================================================

// DocumentSet records which document types an employee has at least one of.
// Category rules only ever test existence, never counts.
type DocumentSet map[DocumentType]bool

func (ds DocumentSet) Has(t DocumentType) bool { return ds[t] }

func (ds DocumentSet) HasAny(types ...DocumentType) bool {
	for _, t := range types {
		if ds[t] {
			return true
		}
	}
	return false
}

func groupDocuments(docs []DocumentRecord) map[EmployeeID]DocumentSet {
	byEmployee := make(map[EmployeeID]DocumentSet)
	for _, d := range docs {
		set, ok := byEmployee[d.EmployeeID]
		if !ok {
			set = make(DocumentSet)
			byEmployee[d.EmployeeID] = set
		}
		set[d.Type] = true
	}
	return byEmployee
}

func groupTraining(records []TrainingRecord) map[EmployeeID][]TrainingRecord {
	byEmployee := make(map[EmployeeID][]TrainingRecord)
	for _, r := range records {
		if !r.Mandatory {
			continue
		}
		byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
	}
	return byEmployee
}

func groupSites(access []SiteAccessRecord) map[EmployeeID]map[string]bool {
	byEmployee := make(map[EmployeeID]map[string]bool)
	for _, a := range access {
		if a.SiteID == "" {
			continue
		}
		set, ok := byEmployee[a.EmployeeID]
		if !ok {
			set = make(map[string]bool)
			byEmployee[a.EmployeeID] = set
		}
		set[a.SiteID] = true
	}
	return byEmployee
}

// =============================================================================
// BUILD - The per-employee fold
// =============================================================================

// Build derives one EmployeeCompliance per input employee. The output
// entirely replaces any previous collection; there is no incremental patch.
func Build(in Input) []EmployeeCompliance {
	today := in.Today
	if today.IsZero() {
		today = Today()
	}

	docsByEmployee := groupDocuments(in.Documents)
	trainingByEmployee := groupTraining(in.Training)
	sitesByEmployee := groupSites(in.SiteAccess)

	out := make([]EmployeeCompliance, 0, len(in.Employees))
	for _, e := range in.Employees {
		docs := docsByEmployee[e.ID]
		if docs == nil {
			docs = DocumentSet{}
		}
		out = append(out, buildEmployee(e, docs, trainingByEmployee[e.ID], sitesByEmployee[e.ID], today))
	}
	return out
}

func buildEmployee(e EmployeeRecord, docs DocumentSet, training []TrainingRecord, sites map[string]bool, today TimePoint) EmployeeCompliance {
	var items []Item
	items = append(items, EvaluateRightToWork(e, docs, today)...)
	items = append(items, EvaluateDBS(e, today))
	items = append(items, EvaluateTraining(training, today)...)
	items = append(items, EvaluateDocuments(e, docs)...)
	items = append(items, EvaluateProbation(e, today))

	rollup := make(map[Category]Status, len(Categories))
	for _, cat := range Categories {
		var statuses []Status
		for _, item := range items {
			if item.Category == cat {
				statuses = append(statuses, item.Status)
			}
		}
		rollup[cat] = Worst(statuses)
	}

	return EmployeeCompliance{
		EmployeeID:     e.ID,
		Name:           e.Name,
		EmployeeNumber: e.EmployeeNumber,
		Department:     e.Department,
		SiteIDs:        mergeSites(e.HomeSiteID, sites),
		Score:          Score(items),
		Items:          items,
		Rollup:         rollup,
	}
}

// mergeSites combines the home site with site-access memberships into one
// de-duplicated, sorted set.
func mergeSites(homeSiteID string, access map[string]bool) []string {
	set := make(map[string]bool, len(access)+1)
	if homeSiteID != "" {
		set[homeSiteID] = true
	}
	for id := range access {
		set[id] = true
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

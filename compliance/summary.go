package compliance

import "github.com/shopspring/decimal"

// =============================================================================
// SUMMARY AGGREGATOR - Organization-level KPIs
// =============================================================================

// CategorySummary is the per-category KPI breakdown. Total counts employees
// with at least one applicable item in the category; Compliant counts those
// where every such item is compliant; Urgent counts those with at least one
// expired/missing/action_required item.
type CategorySummary struct {
	Total     int
	Compliant int
	Urgent    int
}

// Summary holds the organization-level KPI figures for whatever collection
// was handed in — normally the filter engine's output, so the KPIs reflect
// the current view.
type Summary struct {
	TotalEmployees int
	FullyCompliant int
	ActionRequired int
	ExpiringSoon   int
	OverallScore   int
	ByCategory     map[Category]CategorySummary
}

// Summarize reduces a collection of employee aggregates to KPI figures.
// An empty collection scores 100.
func Summarize(list []EmployeeCompliance) Summary {
	s := Summary{
		TotalEmployees: len(list),
		ByCategory:     make(map[Category]CategorySummary, len(Categories)),
	}

	scoreSum := decimal.Zero
	for _, ec := range list {
		scoreSum = scoreSum.Add(decimal.NewFromInt(int64(ec.Score)))
		if ec.Score == 100 {
			s.FullyCompliant++
		}
		urgent := false
		expiring := false
		for _, item := range ec.Items {
			if IsUrgent(item.Status) {
				urgent = true
			}
			if item.Status == StatusExpiringSoon {
				expiring = true
			}
		}
		if urgent {
			s.ActionRequired++
		}
		if expiring {
			s.ExpiringSoon++
		}
	}

	if len(list) == 0 {
		s.OverallScore = 100
	} else {
		mean := scoreSum.Div(decimal.NewFromInt(int64(len(list)))).Round(0)
		s.OverallScore = int(mean.IntPart())
	}

	for _, cat := range Categories {
		s.ByCategory[cat] = summarizeCategory(list, cat)
	}
	return s
}

func summarizeCategory(list []EmployeeCompliance, cat Category) CategorySummary {
	var cs CategorySummary
	for _, ec := range list {
		applicable := 0
		compliant := 0
		urgent := false
		for _, item := range ec.Items {
			if item.Category != cat || item.Status == StatusNotApplicable {
				continue
			}
			applicable++
			if item.Status == StatusCompliant {
				compliant++
			}
			if IsUrgent(item.Status) {
				urgent = true
			}
		}
		if applicable == 0 {
			continue
		}
		cs.Total++
		if compliant == applicable {
			cs.Compliant++
		}
		if urgent {
			cs.Urgent++
		}
	}
	return cs
}

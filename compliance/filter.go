package compliance

import "strings"

// =============================================================================
// FILTER ENGINE - Stateless predicate application
// =============================================================================

// StatusClass is the coarse status filter exposed to the dashboard. It is a
// view-level classification, not one of the item statuses.
type StatusClass string

const (
	ClassAny            StatusClass = ""
	ClassCompliant      StatusClass = "compliant"
	ClassActionRequired StatusClass = "action_required"
	ClassExpiringSoon   StatusClass = "expiring_soon"
)

// FilterState is the active filter selection. Zero values mean "not
// filtering on this dimension"; all active dimensions combine with AND.
type FilterState struct {
	SiteID           string
	Department       string
	Search           string
	Status           StatusClass
	Category         Category
	ExpiryWindowDays *int
}

// Filter narrows a built collection to the employees matching every active
// dimension of the filter state. The input slice is never mutated.
func Filter(list []EmployeeCompliance, f FilterState) []EmployeeCompliance {
	out := make([]EmployeeCompliance, 0, len(list))
	for _, ec := range list {
		if matches(ec, f) {
			out = append(out, ec)
		}
	}
	return out
}

func matches(ec EmployeeCompliance, f FilterState) bool {
	if f.SiteID != "" && !ec.HasSite(f.SiteID) {
		return false
	}
	if f.Department != "" && ec.Department != f.Department {
		return false
	}
	if f.Search != "" && !matchesSearch(ec, f.Search) {
		return false
	}
	if f.Status != ClassAny && !matchesClass(ec, f.Status) {
		return false
	}
	if f.Category != "" && !hasCategoryIssue(ec, f.Category) {
		return false
	}
	if f.ExpiryWindowDays != nil && !expiresWithin(ec, *f.ExpiryWindowDays) {
		return false
	}
	return true
}

// matchesSearch does a case-insensitive substring match against the
// employee's name or employee number.
func matchesSearch(ec EmployeeCompliance, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(ec.Name), needle) ||
		strings.Contains(strings.ToLower(ec.EmployeeNumber), needle)
}

func matchesClass(ec EmployeeCompliance, class StatusClass) bool {
	switch class {
	case ClassCompliant:
		return ec.Score == 100
	case ClassActionRequired:
		for _, item := range ec.Items {
			if IsUrgent(item.Status) {
				return true
			}
		}
		return false
	case ClassExpiringSoon:
		for _, item := range ec.Items {
			if item.Status == StatusExpiringSoon {
				return true
			}
		}
		return false
	}
	return true
}

// hasCategoryIssue reports whether the employee has at least one item in the
// category whose status is neither compliant nor not_applicable.
func hasCategoryIssue(ec EmployeeCompliance, cat Category) bool {
	for _, item := range ec.Items {
		if item.Category != cat {
			continue
		}
		if item.Status != StatusCompliant && item.Status != StatusNotApplicable {
			return true
		}
	}
	return false
}

// expiresWithin reports whether any item has a defined day delta inside
// [0, windowDays]. Already-expired items (negative delta) do not match.
func expiresWithin(ec EmployeeCompliance, windowDays int) bool {
	for _, item := range ec.Items {
		if item.DaysLeft == nil {
			continue
		}
		if d := *item.DaysLeft; d >= 0 && d <= windowDays {
			return true
		}
	}
	return false
}

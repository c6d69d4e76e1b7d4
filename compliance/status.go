package compliance

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// STATUS PRIORITY RESOLVER - "worst status wins"
// =============================================================================

// severityOrder is the fixed total order used for every rollup, most severe
// first. not_applicable is the last resort.
var severityOrder = []Status{
	StatusExpired,
	StatusMissing,
	StatusActionRequired,
	StatusExpiringSoon,
	StatusCompliant,
	StatusNotApplicable,
}

// Worst returns the most severe status present in the collection, or
// not_applicable for an empty collection. It has no category awareness and
// is reused by the builder for every per-category rollup.
func Worst(statuses []Status) Status {
	for _, candidate := range severityOrder {
		for _, s := range statuses {
			if s == candidate {
				return candidate
			}
		}
	}
	return StatusNotApplicable
}

// Severity returns the rank of a status in the severity order, 0 being the
// most severe. Unknown statuses rank after everything else.
func Severity(s Status) int {
	for i, candidate := range severityOrder {
		if s == candidate {
			return i
		}
	}
	return len(severityOrder)
}

// IsUrgent reports whether a status demands immediate attention. This is the
// status class behind the "action required" filter and KPI.
func IsUrgent(s Status) bool {
	return s == StatusActionRequired || s == StatusExpired || s == StatusMissing
}

// =============================================================================
// SCORING
// =============================================================================

var hundred = decimal.NewFromInt(100)

// Score computes the overall 0-100 compliance score for an item list:
// round(100 * compliant / applicable), where applicable excludes
// not_applicable items. Zero applicable items scores 100. Decimal division
// keeps the half-up rounding exact and reproducible across runs.
func Score(items []Item) int {
	applicable := 0
	compliant := 0
	for _, item := range items {
		if item.Status == StatusNotApplicable {
			continue
		}
		applicable++
		if item.Status == StatusCompliant {
			compliant++
		}
	}
	if applicable == 0 {
		return 100
	}
	score := hundred.
		Mul(decimal.NewFromInt(int64(compliant))).
		Div(decimal.NewFromInt(int64(applicable))).
		Round(0)
	return int(score.IntPart())
}

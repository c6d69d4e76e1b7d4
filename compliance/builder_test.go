package compliance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/compliance-engine/compliance"
)

func buildOne(t *testing.T, in compliance.Input) compliance.EmployeeCompliance {
	t.Helper()
	out := compliance.Build(in)
	require.Len(t, out, 1)
	return out[0]
}

func statusByLabel(t *testing.T, ec compliance.EmployeeCompliance, label string) compliance.Status {
	t.Helper()
	for _, item := range ec.Items {
		if item.Label == label {
			return item.Status
		}
	}
	t.Fatalf("no item labelled %q", label)
	return ""
}

// =============================================================================
// END-TO-END SCENARIOS
// =============================================================================

func TestBuild_OnboardingGapsEmployee(t *testing.T) {
	// GIVEN: RTW verified without expiry or supporting document, DBS not
	//        required, no training, contract on file, NI recorded, pension
	//        not enrolled, no probation date
	// WHEN: building the compliance view
	// THEN: seven items with two not applicable, and the score reflects two
	//       compliant of five applicable items

	in := compliance.Input{
		Employees: []compliance.EmployeeRecord{{
			ID:        "emp-1",
			Name:      "Dana Okafor",
			RTWStatus: compliance.RTWVerified,
			DBSStatus: compliance.DBSNotRequired,
			NINumber:  "QQ123456C",
		}},
		Documents: []compliance.DocumentRecord{
			{EmployeeID: "emp-1", Type: compliance.DocContract},
		},
		Today: june15(),
	}

	ec := buildOne(t, in)

	require.Len(t, ec.Items, 7)
	assert.Equal(t, compliance.StatusActionRequired, statusByLabel(t, ec, "Right to Work"))
	assert.Equal(t, compliance.StatusMissing, statusByLabel(t, ec, "RTW Supporting Document"))
	assert.Equal(t, compliance.StatusNotApplicable, statusByLabel(t, ec, "DBS Check"))
	assert.Equal(t, compliance.StatusCompliant, statusByLabel(t, ec, "Employment Contract"))
	assert.Equal(t, compliance.StatusCompliant, statusByLabel(t, ec, "National Insurance Number"))
	assert.Equal(t, compliance.StatusActionRequired, statusByLabel(t, ec, "Pension Auto-Enrolment"))
	assert.Equal(t, compliance.StatusNotApplicable, statusByLabel(t, ec, "Probation Period"))

	// 2 compliant of 5 applicable items
	assert.Equal(t, 40, ec.Score)

	assert.Equal(t, compliance.StatusMissing, ec.Rollup[compliance.CategoryRightToWork])
	assert.Equal(t, compliance.StatusNotApplicable, ec.Rollup[compliance.CategoryDBS])
	assert.Equal(t, compliance.StatusNotApplicable, ec.Rollup[compliance.CategoryTraining])
	assert.Equal(t, compliance.StatusActionRequired, ec.Rollup[compliance.CategoryDocuments])
	assert.Equal(t, compliance.StatusNotApplicable, ec.Rollup[compliance.CategoryProbation])
}

func TestBuild_RTWExpiring90DaysOut(t *testing.T) {
	// Today 2024-06-15, expiry 2024-09-13 is exactly 90 days out.
	in := compliance.Input{
		Employees: []compliance.EmployeeRecord{{
			ID:        "emp-1",
			Name:      "Priya Shah",
			RTWStatus: compliance.RTWVerified,
			RTWExpiry: compliance.NewTimePoint(2024, time.September, 13),
		}},
		Documents: []compliance.DocumentRecord{
			{EmployeeID: "emp-1", Type: compliance.DocVisa},
		},
		Today: june15(),
	}

	ec := buildOne(t, in)

	assert.Equal(t, compliance.StatusExpiringSoon, statusByLabel(t, ec, "Right to Work"))
}

func TestBuild_DBSCheckedThreeYearsAgo(t *testing.T) {
	in := compliance.Input{
		Employees: []compliance.EmployeeRecord{{
			ID:           "emp-1",
			Name:         "Marco Rossi",
			DBSStatus:    compliance.DBSClear,
			DBSCheckDate: compliance.NewTimePoint(2021, time.June, 14),
		}},
		Today: june15(),
	}

	ec := buildOne(t, in)

	assert.Equal(t, compliance.StatusExpiringSoon, statusByLabel(t, ec, "DBS Check"))
	for _, item := range ec.Items {
		if item.Label == "DBS Check" {
			assert.Contains(t, item.Detail, "3+ years ago")
		}
	}
}

// =============================================================================
// GROUPING AND INDEXES
// =============================================================================

func TestBuild_EmptyInputs_StillTotal(t *testing.T) {
	// Zero documents, training and site access rows are valid; the employee
	// just collects more missing/not_applicable items.

	in := compliance.Input{
		Employees: []compliance.EmployeeRecord{{ID: "emp-1", Name: "Sam Lee"}},
		Today:     june15(),
	}

	ec := buildOne(t, in)

	require.Len(t, ec.Items, 7)
	assert.Equal(t, compliance.StatusMissing, statusByLabel(t, ec, "Right to Work"))
	assert.Empty(t, ec.SiteIDs)

	assert.Empty(t, compliance.Build(compliance.Input{Today: june15()}))
}

func TestBuild_SiteSetMergesHomeSiteAndAccess(t *testing.T) {
	in := compliance.Input{
		Employees: []compliance.EmployeeRecord{{ID: "emp-1", Name: "Sam Lee", HomeSiteID: "site-a"}},
		SiteAccess: []compliance.SiteAccessRecord{
			{EmployeeID: "emp-1", SiteID: "site-b"},
			{EmployeeID: "emp-1", SiteID: "site-a"},
			{EmployeeID: "emp-1", SiteID: "site-b"},
			{EmployeeID: "emp-2", SiteID: "site-c"},
		},
		Today: june15(),
	}

	ec := buildOne(t, in)

	assert.Equal(t, []string{"site-a", "site-b"}, ec.SiteIDs)
	assert.True(t, ec.HasSite("site-a"))
	assert.False(t, ec.HasSite("site-c"))
}

func TestBuild_DocumentsGroupedPerEmployee(t *testing.T) {
	// emp-2's passport must not satisfy emp-1's supporting-document rule.
	in := compliance.Input{
		Employees: []compliance.EmployeeRecord{
			{ID: "emp-1", Name: "A", RTWStatus: compliance.RTWVerified},
			{ID: "emp-2", Name: "B", RTWStatus: compliance.RTWVerified},
		},
		Documents: []compliance.DocumentRecord{
			{EmployeeID: "emp-2", Type: compliance.DocPassport},
		},
		Today: june15(),
	}

	out := compliance.Build(in)
	require.Len(t, out, 2)

	assert.Equal(t, compliance.StatusActionRequired, statusByLabel(t, out[0], "Right to Work"))
	assert.Equal(t, compliance.StatusCompliant, statusByLabel(t, out[1], "Right to Work"))
}

func TestBuild_NonMandatoryTrainingSkipped(t *testing.T) {
	in := compliance.Input{
		Employees: []compliance.EmployeeRecord{{ID: "emp-1", Name: "Sam Lee"}},
		Training: []compliance.TrainingRecord{
			{EmployeeID: "emp-1", CourseName: "Wine Tasting", Mandatory: false, Status: compliance.TrainingExpired},
		},
		Today: june15(),
	}

	ec := buildOne(t, in)

	assert.Equal(t, compliance.StatusNotApplicable, ec.Rollup[compliance.CategoryTraining])
	for _, item := range ec.Items {
		assert.NotEqual(t, compliance.CategoryTraining, item.Category)
	}
}

func TestBuild_RollupIsolatedPerCategory(t *testing.T) {
	// An expired training item must never leak into the documents rollup.
	in := compliance.Input{
		Employees: []compliance.EmployeeRecord{{
			ID:              "emp-1",
			Name:            "Sam Lee",
			NINumber:        "QQ123456C",
			PensionEnrolled: true,
		}},
		Documents: []compliance.DocumentRecord{
			{EmployeeID: "emp-1", Type: compliance.DocContract},
		},
		Training: []compliance.TrainingRecord{
			{EmployeeID: "emp-1", CourseName: "Fire Safety", Mandatory: true, Status: compliance.TrainingExpired},
		},
		Today: june15(),
	}

	ec := buildOne(t, in)

	assert.Equal(t, compliance.StatusExpired, ec.Rollup[compliance.CategoryTraining])
	assert.Equal(t, compliance.StatusCompliant, ec.Rollup[compliance.CategoryDocuments])
}

func TestBuild_FullyCompliantEmployee_Scores100(t *testing.T) {
	today := june15()
	in := compliance.Input{
		Employees: []compliance.EmployeeRecord{{
			ID:              "emp-1",
			Name:            "Ana Costa",
			RTWStatus:       compliance.RTWVerified,
			DBSStatus:       compliance.DBSClear,
			DBSCheckDate:    today.AddDays(-30),
			NINumber:        "QQ123456C",
			PensionEnrolled: true,
			ProbationEnd:    today.AddDays(-100),
		}},
		Documents: []compliance.DocumentRecord{
			{EmployeeID: "emp-1", Type: compliance.DocContract},
			{EmployeeID: "emp-1", Type: compliance.DocPassport},
		},
		Training: []compliance.TrainingRecord{
			{EmployeeID: "emp-1", CourseName: "Food Safety", Mandatory: true, Status: compliance.TrainingCurrent, Expiry: today.AddDays(300)},
		},
		Today: today,
	}

	ec := buildOne(t, in)

	assert.Equal(t, 100, ec.Score)
	for _, cat := range compliance.Categories {
		assert.Contains(t,
			[]compliance.Status{compliance.StatusCompliant, compliance.StatusNotApplicable},
			ec.Rollup[cat], "category %s", cat)
	}
}

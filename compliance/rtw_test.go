package compliance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/compliance-engine/compliance"
)

// =============================================================================
// TEST HELPERS
// =============================================================================
// Note: june15 and docsWith are shared by the other evaluator tests.

func june15() compliance.TimePoint {
	return compliance.NewTimePoint(2024, time.June, 15)
}

func docsWith(types ...compliance.DocumentType) compliance.DocumentSet {
	set := compliance.DocumentSet{}
	for _, t := range types {
		set[t] = true
	}
	return set
}

func primaryRTW(t *testing.T, items []compliance.Item) compliance.Item {
	t.Helper()
	require.NotEmpty(t, items)
	assert.Equal(t, "Right to Work", items[0].Label)
	return items[0]
}

// =============================================================================
// RIGHT-TO-WORK RULES
// =============================================================================

func TestRTW_NotRequired_IsCompliant(t *testing.T) {
	e := compliance.EmployeeRecord{ID: "emp-1", RTWStatus: compliance.RTWNotRequired}

	items := compliance.EvaluateRightToWork(e, docsWith(), june15())

	assert.Equal(t, compliance.StatusCompliant, primaryRTW(t, items).Status)
}

func TestRTW_ExpiryBoundary(t *testing.T) {
	// GIVEN: a verified RTW with a supporting passport on file
	// WHEN: the expiry sits on either side of the 90-day boundary
	// THEN: day 90 warns, day 91 is compliant

	today := june15()
	docs := docsWith(compliance.DocPassport)

	at90 := compliance.EmployeeRecord{ID: "emp-1", RTWStatus: compliance.RTWVerified, RTWExpiry: today.AddDays(90)}
	at91 := compliance.EmployeeRecord{ID: "emp-1", RTWStatus: compliance.RTWVerified, RTWExpiry: today.AddDays(91)}

	assert.Equal(t, compliance.StatusExpiringSoon, primaryRTW(t, compliance.EvaluateRightToWork(at90, docs, today)).Status)
	assert.Equal(t, compliance.StatusCompliant, primaryRTW(t, compliance.EvaluateRightToWork(at91, docs, today)).Status)
}

func TestRTW_Day91WithoutDocument_IsActionRequired(t *testing.T) {
	today := june15()
	e := compliance.EmployeeRecord{ID: "emp-1", RTWStatus: compliance.RTWVerified, RTWExpiry: today.AddDays(91)}

	items := compliance.EvaluateRightToWork(e, docsWith(), today)

	assert.Equal(t, compliance.StatusActionRequired, primaryRTW(t, items).Status)
}

func TestRTW_ExpiryInPast_IsExpired(t *testing.T) {
	today := june15()
	e := compliance.EmployeeRecord{ID: "emp-1", RTWStatus: compliance.RTWVerified, RTWExpiry: today.AddDays(-1)}

	items := compliance.EvaluateRightToWork(e, docsWith(compliance.DocVisa), today)
	item := primaryRTW(t, items)

	assert.Equal(t, compliance.StatusExpired, item.Status)
	require.NotNil(t, item.DaysLeft)
	assert.Equal(t, -1, *item.DaysLeft)
}

func TestRTW_VerifiedNoExpiry(t *testing.T) {
	e := compliance.EmployeeRecord{ID: "emp-1", RTWStatus: compliance.RTWVerified}

	withDoc := compliance.EvaluateRightToWork(e, docsWith(compliance.DocRightToWork), june15())
	withoutDoc := compliance.EvaluateRightToWork(e, docsWith(), june15())

	assert.Equal(t, compliance.StatusCompliant, primaryRTW(t, withDoc).Status)
	assert.Equal(t, compliance.StatusActionRequired, primaryRTW(t, withoutDoc).Status)
}

func TestRTW_RawExpiredStatus_IsExpired(t *testing.T) {
	e := compliance.EmployeeRecord{ID: "emp-1", RTWStatus: compliance.RTWExpired}
	assert.Equal(t, compliance.StatusExpired, primaryRTW(t, compliance.EvaluateRightToWork(e, docsWith(), june15())).Status)
}

func TestRTW_Pending_IsActionRequired(t *testing.T) {
	e := compliance.EmployeeRecord{ID: "emp-1", RTWStatus: compliance.RTWPending}
	assert.Equal(t, compliance.StatusActionRequired, primaryRTW(t, compliance.EvaluateRightToWork(e, docsWith(), june15())).Status)
}

func TestRTW_UnknownStatus_IsMissing(t *testing.T) {
	for _, raw := range []compliance.RTWStatus{"", "banana", "VERIFIED"} {
		e := compliance.EmployeeRecord{ID: "emp-1", RTWStatus: raw}
		assert.Equal(t, compliance.StatusMissing, primaryRTW(t, compliance.EvaluateRightToWork(e, docsWith(), june15())).Status)
	}
}

// =============================================================================
// SUPPORTING DOCUMENT ITEM
// =============================================================================

func TestRTW_NoSupportingDocument_EmitsSecondItem(t *testing.T) {
	e := compliance.EmployeeRecord{ID: "emp-1", RTWStatus: compliance.RTWVerified}

	items := compliance.EvaluateRightToWork(e, docsWith(compliance.DocContract), june15())

	require.Len(t, items, 2)
	assert.Equal(t, "RTW Supporting Document", items[1].Label)
	assert.Equal(t, compliance.StatusMissing, items[1].Status)
	assert.Equal(t, compliance.CategoryRightToWork, items[1].Category)
}

func TestRTW_AnySupportingDocumentType_SuppressesSecondItem(t *testing.T) {
	e := compliance.EmployeeRecord{ID: "emp-1", RTWStatus: compliance.RTWVerified}

	for _, docType := range []compliance.DocumentType{compliance.DocRightToWork, compliance.DocVisa, compliance.DocPassport} {
		items := compliance.EvaluateRightToWork(e, docsWith(docType), june15())
		assert.Len(t, items, 1, "doc type %s should satisfy the supporting-document rule", docType)
	}
}

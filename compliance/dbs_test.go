package compliance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/compliance-engine/compliance"
)

func TestDBS_NotRequired_IsNotApplicable(t *testing.T) {
	e := compliance.EmployeeRecord{ID: "emp-1", DBSStatus: compliance.DBSNotRequired}
	assert.Equal(t, compliance.StatusNotApplicable, compliance.EvaluateDBS(e, june15()).Status)
}

func TestDBS_RecheckBoundary(t *testing.T) {
	// GIVEN: a clear DBS check
	// WHEN: the check is exactly 1095 vs 1096 days old
	// THEN: 1095 days is still compliant, 1096 flags a recheck

	today := june15()

	at1095 := compliance.EmployeeRecord{ID: "emp-1", DBSStatus: compliance.DBSClear, DBSCheckDate: today.AddDays(-1095)}
	at1096 := compliance.EmployeeRecord{ID: "emp-1", DBSStatus: compliance.DBSClear, DBSCheckDate: today.AddDays(-1096)}

	assert.Equal(t, compliance.StatusCompliant, compliance.EvaluateDBS(at1095, today).Status)
	assert.Equal(t, compliance.StatusExpiringSoon, compliance.EvaluateDBS(at1096, today).Status)
}

func TestDBS_OldCheck_DetailNamesYears(t *testing.T) {
	// Check date 2021-06-14 seen from 2024-06-15 is 1097 days ago.
	e := compliance.EmployeeRecord{
		ID:           "emp-1",
		DBSStatus:    compliance.DBSClear,
		DBSCheckDate: compliance.NewTimePoint(2021, time.June, 14),
	}

	item := compliance.EvaluateDBS(e, june15())

	assert.Equal(t, compliance.StatusExpiringSoon, item.Status)
	assert.Contains(t, item.Detail, "3+ years ago")
}

func TestDBS_ClearWithoutCheckDate_IsCompliant(t *testing.T) {
	e := compliance.EmployeeRecord{ID: "emp-1", DBSStatus: compliance.DBSClear}
	assert.Equal(t, compliance.StatusCompliant, compliance.EvaluateDBS(e, june15()).Status)
}

func TestDBS_ClearDetail_IncludesCertificate(t *testing.T) {
	e := compliance.EmployeeRecord{
		ID:                   "emp-1",
		DBSStatus:            compliance.DBSClear,
		DBSCertificateNumber: "001234567890",
		DBSUpdateService:     true,
	}

	item := compliance.EvaluateDBS(e, june15())

	assert.Contains(t, item.Detail, "001234567890")
	assert.Contains(t, item.Detail, "update service")
}

func TestDBS_PendingAndIssues_AreActionRequired(t *testing.T) {
	pending := compliance.EmployeeRecord{ID: "emp-1", DBSStatus: compliance.DBSPending}
	issues := compliance.EmployeeRecord{ID: "emp-1", DBSStatus: compliance.DBSIssuesFound}

	assert.Equal(t, compliance.StatusActionRequired, compliance.EvaluateDBS(pending, june15()).Status)
	assert.Equal(t, compliance.StatusActionRequired, compliance.EvaluateDBS(issues, june15()).Status)
}

func TestDBS_UnknownStatus_IsMissing(t *testing.T) {
	for _, raw := range []compliance.DBSStatus{"", "unknown", "CLEAR"} {
		e := compliance.EmployeeRecord{ID: "emp-1", DBSStatus: raw}
		assert.Equal(t, compliance.StatusMissing, compliance.EvaluateDBS(e, june15()).Status)
	}
}

package compliance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/compliance-engine/compliance"
)

func course(status compliance.TrainingStatus, expiry compliance.TimePoint) compliance.TrainingRecord {
	return compliance.TrainingRecord{
		EmployeeID: "emp-1",
		CourseID:   "course-fs-l2",
		CourseName: "Food Safety Level 2",
		Mandatory:  true,
		Status:     status,
		Expiry:     expiry,
	}
}

func TestTraining_NoRecords_NoItems(t *testing.T) {
	assert.Empty(t, compliance.EvaluateTraining(nil, june15()))
}

func TestTraining_ExpiryBoundary(t *testing.T) {
	// GIVEN: a current certification
	// WHEN: expiry is 60 vs 61 days out
	// THEN: day 60 warns, day 61 is compliant

	today := june15()

	at60 := compliance.EvaluateTraining([]compliance.TrainingRecord{course(compliance.TrainingCurrent, today.AddDays(60))}, today)
	at61 := compliance.EvaluateTraining([]compliance.TrainingRecord{course(compliance.TrainingCurrent, today.AddDays(61))}, today)

	require.Len(t, at60, 1)
	require.Len(t, at61, 1)
	assert.Equal(t, compliance.StatusExpiringSoon, at60[0].Status)
	assert.Equal(t, compliance.StatusCompliant, at61[0].Status)
}

func TestTraining_CurrentWithoutExpiry_IsCompliant(t *testing.T) {
	for _, raw := range []compliance.TrainingStatus{compliance.TrainingCurrent, compliance.TrainingCompliant} {
		items := compliance.EvaluateTraining([]compliance.TrainingRecord{course(raw, compliance.TimePoint{})}, june15())
		require.Len(t, items, 1)
		assert.Equal(t, compliance.StatusCompliant, items[0].Status)
		assert.Nil(t, items[0].DaysLeft)
	}
}

func TestTraining_RawStatusMapping(t *testing.T) {
	cases := []struct {
		raw  compliance.TrainingStatus
		want compliance.Status
	}{
		{compliance.TrainingExpired, compliance.StatusExpired},
		{compliance.TrainingExpiringSoon, compliance.StatusExpiringSoon},
		{compliance.TrainingInProgress, compliance.StatusActionRequired},
		{compliance.TrainingAssigned, compliance.StatusActionRequired},
		{"", compliance.StatusMissing},
		{"withdrawn", compliance.StatusMissing},
	}

	for _, tc := range cases {
		items := compliance.EvaluateTraining([]compliance.TrainingRecord{course(tc.raw, compliance.TimePoint{})}, june15())
		require.Len(t, items, 1)
		assert.Equal(t, tc.want, items[0].Status, "raw status %q", tc.raw)
	}
}

func TestTraining_OneItemPerCourse_LabelledByCourse(t *testing.T) {
	records := []compliance.TrainingRecord{
		{EmployeeID: "emp-1", CourseID: "c1", CourseName: "Food Safety Level 2", Mandatory: true, Status: compliance.TrainingCurrent},
		{EmployeeID: "emp-1", CourseID: "c2", CourseCode: "FIRE-01", Mandatory: true, Status: compliance.TrainingExpired},
	}

	items := compliance.EvaluateTraining(records, june15())

	require.Len(t, items, 2)
	assert.Equal(t, "Food Safety Level 2", items[0].Label)
	assert.Equal(t, "FIRE-01", items[1].Label)
}

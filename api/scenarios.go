/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates employees, documents,
	training records and site memberships that exercise specific parts of
	the compliance rules.

AVAILABLE SCENARIOS:

	steady-state:     A small team that is fully compliant
	expiring-soon:    Everyone valid today, but deadlines inside the
	                  warning windows (RTW, DBS recheck, training, probation)
	onboarding-gaps:  New starters with missing checks and documents

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create employees with profile-level statuses
 3. File documents and training records
 4. Grant site memberships

Dates are seeded relative to the current day so the thresholds land where
the scenario intends regardless of when it is loaded.

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "expiring-soon"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: writeJSON/writeError helpers
  - store/sqlite: persistence these loaders write through
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warp/compliance-engine/compliance"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "steady-state",
		Name:        "Steady State",
		Description: "A fully compliant team across two sites",
	},
	{
		ID:          "expiring-soon",
		Name:        "Expiring Soon",
		Description: "Valid today, but RTW, DBS, training and probation deadlines all inside their warning windows",
	},
	{
		ID:          "onboarding-gaps",
		Name:        "Onboarding Gaps",
		Description: "New starters with pending checks, missing documents and unassigned training",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "steady-state":
		err = h.loadSteadyState(ctx)
	case "expiring-soon":
		err = h.loadExpiringSoon(ctx)
	case "onboarding-gaps":
		err = h.loadOnboardingGaps(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"loaded": req.ScenarioID})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadSteadyState(ctx context.Context) error {
	today := compliance.Today()

	team := []compliance.EmployeeRecord{
		{
			ID: "emp-ana", Name: "Ana Costa", EmployeeNumber: "E-101",
			Department: "Kitchen", HomeSiteID: "site-riverside",
			RTWStatus: compliance.RTWVerified, RTWDocumentType: "Passport",
			DBSStatus: compliance.DBSClear, DBSCertificateNumber: "001234567890",
			DBSCheckDate: today.AddDays(-200),
			NINumber:     "QQ123456A", PensionEnrolled: true,
			ProbationEnd: today.AddDays(-120),
		},
		{
			ID: "emp-marco", Name: "Marco Rossi", EmployeeNumber: "E-102",
			Department: "Front of House", HomeSiteID: "site-harbour",
			RTWStatus: compliance.RTWNotRequired,
			DBSStatus: compliance.DBSNotRequired,
			NINumber:  "QQ123456B", PensionEnrolled: true,
		},
	}
	for _, e := range team {
		if err := h.Store.SaveEmployee(ctx, e); err != nil {
			return err
		}
	}

	docs := []compliance.DocumentRecord{
		{EmployeeID: "emp-ana", Type: compliance.DocContract},
		{EmployeeID: "emp-ana", Type: compliance.DocPassport, Expiry: today.AddDays(2000)},
		{EmployeeID: "emp-marco", Type: compliance.DocEmploymentContract},
		{EmployeeID: "emp-marco", Type: compliance.DocPassport},
	}
	for _, d := range docs {
		if _, err := h.Store.SaveDocument(ctx, d); err != nil {
			return err
		}
	}

	if _, err := h.Store.SaveTrainingRecord(ctx, compliance.TrainingRecord{
		EmployeeID: "emp-ana", CourseID: "fs-l2", CourseName: "Food Safety Level 2",
		Mandatory: true, Status: compliance.TrainingCurrent, Expiry: today.AddDays(300),
	}); err != nil {
		return err
	}

	return h.Store.GrantSiteAccess(ctx, compliance.SiteAccessRecord{EmployeeID: "emp-ana", SiteID: "site-harbour"})
}

func (h *Handler) loadExpiringSoon(ctx context.Context) error {
	today := compliance.Today()

	team := []compliance.EmployeeRecord{
		{
			ID: "emp-priya", Name: "Priya Shah", EmployeeNumber: "E-201",
			Department: "Kitchen", HomeSiteID: "site-riverside",
			// Visa runs out inside the 90-day warning window
			RTWStatus: compliance.RTWVerified, RTWExpiry: today.AddDays(45), RTWDocumentType: "Visa",
			DBSStatus: compliance.DBSNotRequired,
			NINumber:  "QQ234567A", PensionEnrolled: true,
		},
		{
			ID: "emp-tom", Name: "Tom Varga", EmployeeNumber: "E-202",
			Department: "Security", HomeSiteID: "site-harbour",
			RTWStatus: compliance.RTWNotRequired,
			// Clear check, but older than the three-year recheck horizon
			DBSStatus: compliance.DBSClear, DBSCheckDate: today.AddDays(-1200),
			NINumber: "QQ234567B", PensionEnrolled: true,
			// Probation review due inside the two-week window
			ProbationEnd: today.AddDays(10),
		},
	}
	for _, e := range team {
		if err := h.Store.SaveEmployee(ctx, e); err != nil {
			return err
		}
	}

	docs := []compliance.DocumentRecord{
		{EmployeeID: "emp-priya", Type: compliance.DocContract},
		{EmployeeID: "emp-priya", Type: compliance.DocVisa, Expiry: today.AddDays(45)},
		{EmployeeID: "emp-tom", Type: compliance.DocContract},
		{EmployeeID: "emp-tom", Type: compliance.DocPassport},
	}
	for _, d := range docs {
		if _, err := h.Store.SaveDocument(ctx, d); err != nil {
			return err
		}
	}

	// Certification still current, renewal due inside the 60-day window
	_, err := h.Store.SaveTrainingRecord(ctx, compliance.TrainingRecord{
		EmployeeID: "emp-tom", CourseID: "sia-door", CourseName: "SIA Door Supervision",
		Mandatory: true, Status: compliance.TrainingCurrent, Expiry: today.AddDays(30),
	})
	return err
}

func (h *Handler) loadOnboardingGaps(ctx context.Context) error {
	today := compliance.Today()

	team := []compliance.EmployeeRecord{
		{
			ID: "emp-dana", Name: "Dana Okafor", EmployeeNumber: "E-301",
			Department: "Front of House", HomeSiteID: "site-riverside",
			StartDate:    today.AddDays(-14),
			RTWStatus:    compliance.RTWVerified,
			DBSStatus:    compliance.DBSPending,
			NINumber:     "QQ345678A",
			ProbationEnd: today.AddDays(76),
		},
		{
			ID: "emp-sam", Name: "Sam Lee", EmployeeNumber: "E-302",
			Department: "Kitchen", HomeSiteID: "site-riverside",
			StartDate: today.AddDays(-3),
			// No checks recorded at all yet
			ProbationEnd: today.AddDays(87),
		},
	}
	for _, e := range team {
		if err := h.Store.SaveEmployee(ctx, e); err != nil {
			return err
		}
	}

	if _, err := h.Store.SaveDocument(ctx, compliance.DocumentRecord{
		EmployeeID: "emp-dana", Type: compliance.DocContract,
	}); err != nil {
		return err
	}

	_, err := h.Store.SaveTrainingRecord(ctx, compliance.TrainingRecord{
		EmployeeID: "emp-dana", CourseID: "fs-l2", CourseName: "Food Safety Level 2",
		Mandatory: true, Status: compliance.TrainingAssigned,
	})
	return err
}

/*
handlers.go - HTTP API handlers for the compliance dashboard

PURPOSE:

	Exposes the compliance engine via REST API. Handles HTTP
	request/response, JSON serialization, and delegates to the engine.

ENDPOINTS:

	Compliance:
	  GET    /api/compliance           Build + filter the compliance view
	  GET    /api/compliance/summary   KPI summary of the filtered view
	  GET    /api/compliance/{id}      One employee's full item list

	Records:
	  GET    /api/employees            List eligible employees
	  POST   /api/employees            Create/update an employee
	  GET    /api/employees/{id}       Get one employee profile
	  POST   /api/documents            File a document
	  POST   /api/training             Record a course enrollment
	  POST   /api/site-access          Grant a site membership

	Scenarios:
	  GET    /api/scenarios            List demo scenarios
	  POST   /api/scenarios/load       Load a demo scenario
	  POST   /api/scenarios/reset      Clear all data

FILTER QUERY PARAMETERS (compliance endpoints):

	site             Keep employees whose site set contains this site id
	department       Exact department match
	search           Case-insensitive substring of name or employee number
	status           compliant | action_required | expiring_soon
	category         right_to_work | dbs | training | documents | probation
	expiring_within  Integer day window; items already expired never match
	as_of            ISO date used as "today" (defaults to the current day)

REQUEST FLOW:
 1. Parse HTTP request and filter state
 2. Fetch the four record collections from the store
 3. Build the compliance view (pure, no I/O)
 4. Filter / summarize and serialize

ERROR HANDLING:

	Errors are returned as JSON with appropriate HTTP status:
	- 400: Validation errors, invalid input
	- 404: Resource not found
	- 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/warp/compliance-engine/compliance"
	"github.com/warp/compliance-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// COMPLIANCE HANDLERS
// =============================================================================

// GetCompliance rebuilds the compliance view and applies the active filters.
func (h *Handler) GetCompliance(w http.ResponseWriter, r *http.Request) {
	filters, today, err := parseFilters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter parameters", err)
		return
	}

	built, err := h.buildView(r, today)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build compliance view", err)
		return
	}

	writeJSON(w, http.StatusOK, toComplianceDTOs(compliance.Filter(built, filters)))
}

// GetComplianceSummary returns the KPI summary over the filtered view.
func (h *Handler) GetComplianceSummary(w http.ResponseWriter, r *http.Request) {
	filters, today, err := parseFilters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter parameters", err)
		return
	}

	built, err := h.buildView(r, today)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build compliance view", err)
		return
	}

	summary := compliance.Summarize(compliance.Filter(built, filters))
	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

// GetEmployeeCompliance returns one employee's full compliance record.
func (h *Handler) GetEmployeeCompliance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, today, err := parseFilters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter parameters", err)
		return
	}

	built, err := h.buildView(r, today)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build compliance view", err)
		return
	}

	for _, ec := range built {
		if string(ec.EmployeeID) == id {
			writeJSON(w, http.StatusOK, toComplianceDTO(ec))
			return
		}
	}
	writeError(w, http.StatusNotFound, "Employee not found", nil)
}

// buildView fetches the four collections and runs a full build. Every call
// constructs fresh inputs, so overlapping requests never share state.
func (h *Handler) buildView(r *http.Request, today compliance.TimePoint) ([]compliance.EmployeeCompliance, error) {
	ctx := r.Context()

	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	documents, err := h.Store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	training, err := h.Store.ListTrainingRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list training records: %w", err)
	}
	access, err := h.Store.ListSiteAccess(ctx)
	if err != nil {
		return nil, fmt.Errorf("list site access: %w", err)
	}

	return compliance.Build(compliance.Input{
		Employees:  employees,
		Documents:  documents,
		Training:   training,
		SiteAccess: access,
		Today:      today,
	}), nil
}

// parseFilters extracts the filter state and reference date from query
// parameters. An absent as_of means the current calendar day.
func parseFilters(r *http.Request) (compliance.FilterState, compliance.TimePoint, error) {
	q := r.URL.Query()

	filters := compliance.FilterState{
		SiteID:     q.Get("site"),
		Department: q.Get("department"),
		Search:     q.Get("search"),
		Status:     compliance.StatusClass(q.Get("status")),
		Category:   compliance.Category(q.Get("category")),
	}

	switch filters.Status {
	case compliance.ClassAny, compliance.ClassCompliant, compliance.ClassActionRequired, compliance.ClassExpiringSoon:
	default:
		return filters, compliance.TimePoint{}, fmt.Errorf("unknown status class %q", filters.Status)
	}

	if raw := q.Get("expiring_within"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			return filters, compliance.TimePoint{}, fmt.Errorf("expiring_within must be a non-negative integer")
		}
		filters.ExpiryWindowDays = &days
	}

	today := compliance.Today()
	if raw := q.Get("as_of"); raw != "" {
		parsed, err := compliance.ParseDate(raw)
		if err != nil {
			return filters, compliance.TimePoint{}, fmt.Errorf("as_of must be YYYY-MM-DD: %w", err)
		}
		today = parsed
	}

	return filters, today, nil
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all eligible employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee profile.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates or updates an employee profile.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	e, err := employeeFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	if err := h.Store.SaveEmployee(r.Context(), e); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(e))
}

func employeeFromRequest(req CreateEmployeeRequest) (compliance.EmployeeRecord, error) {
	e := compliance.EmployeeRecord{
		ID:                   compliance.EmployeeID(req.ID),
		Name:                 req.Name,
		EmployeeNumber:       req.EmployeeNumber,
		Department:           req.Department,
		HomeSiteID:           req.HomeSiteID,
		RTWStatus:            compliance.RTWStatus(req.RTWStatus),
		RTWDocumentType:      req.RTWDocumentType,
		DBSStatus:            compliance.DBSStatus(req.DBSStatus),
		DBSCertificateNumber: req.DBSCertificateNumber,
		DBSUpdateService:     req.DBSUpdateService,
		NINumber:             req.NINumber,
		PensionEnrolled:      req.PensionEnrolled,
		Role:                 req.Role,
	}

	var err error
	dates := []struct {
		raw  string
		dest *compliance.TimePoint
	}{
		{req.StartDate, &e.StartDate},
		{req.ProbationEnd, &e.ProbationEnd},
		{req.RTWExpiry, &e.RTWExpiry},
		{req.DBSCheckDate, &e.DBSCheckDate},
		{req.TerminationDate, &e.TerminationDate},
	}
	for _, d := range dates {
		if *d.dest, err = compliance.ParseDate(d.raw); err != nil {
			return e, err
		}
	}
	return e, nil
}

// =============================================================================
// RECORD HANDLERS
// =============================================================================

// AddDocument files a document for an employee.
func (h *Handler) AddDocument(w http.ResponseWriter, r *http.Request) {
	var req AddDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeID == "" || req.Type == "" {
		writeError(w, http.StatusBadRequest, "employee_id and type are required", nil)
		return
	}

	expiry, err := compliance.ParseDate(req.Expiry)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid expiry format (use YYYY-MM-DD)", err)
		return
	}
	verifiedAt, err := compliance.ParseDate(req.VerifiedAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid verified_at format (use YYYY-MM-DD)", err)
		return
	}

	doc, err := h.Store.SaveDocument(r.Context(), compliance.DocumentRecord{
		EmployeeID: compliance.EmployeeID(req.EmployeeID),
		Type:       compliance.DocumentType(req.Type),
		Expiry:     expiry,
		VerifiedAt: verifiedAt,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save document", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": doc.ID})
}

// AddTraining records a course enrollment.
func (h *Handler) AddTraining(w http.ResponseWriter, r *http.Request) {
	var req AddTrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, "employee_id is required", nil)
		return
	}

	expiry, err := compliance.ParseDate(req.Expiry)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid expiry format (use YYYY-MM-DD)", err)
		return
	}

	rec, err := h.Store.SaveTrainingRecord(r.Context(), compliance.TrainingRecord{
		EmployeeID: compliance.EmployeeID(req.EmployeeID),
		CourseID:   req.CourseID,
		CourseCode: req.CourseCode,
		CourseName: req.CourseName,
		Mandatory:  req.Mandatory,
		Status:     compliance.TrainingStatus(req.Status),
		Expiry:     expiry,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save training record", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": rec.ID})
}

// GrantSiteAccess adds a site membership.
func (h *Handler) GrantSiteAccess(w http.ResponseWriter, r *http.Request) {
	var req GrantSiteAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeID == "" || req.SiteID == "" {
		writeError(w, http.StatusBadRequest, "employee_id and site_id are required", nil)
		return
	}

	err := h.Store.GrantSiteAccess(r.Context(), compliance.SiteAccessRecord{
		EmployeeID: compliance.EmployeeID(req.EmployeeID),
		SiteID:     req.SiteID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to grant site access", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "granted"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

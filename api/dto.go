/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:

	Defines the JSON structures for API communication. These types decouple
	the engine's domain model from the external API contract, allowing:
	- Field renaming without breaking clients
	- API-specific validation
	- Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:

	Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - compliance/types.go: The domain types these mirror
*/
package api

import (
	"github.com/warp/compliance-engine/compliance"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents an employee profile in API responses.
type EmployeeDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	EmployeeNumber string `json:"employee_number,omitempty"`
	Department     string `json:"department,omitempty"`
	HomeSiteID     string `json:"home_site_id,omitempty"`
	StartDate      string `json:"start_date,omitempty"`
	ProbationEnd   string `json:"probation_end,omitempty"`
	RTWStatus      string `json:"rtw_status,omitempty"`
	DBSStatus      string `json:"dbs_status,omitempty"`
}

// CreateEmployeeRequest is the request to create or update an employee.
// All dates are ISO "YYYY-MM-DD"; empty means not on file.
type CreateEmployeeRequest struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	EmployeeNumber       string `json:"employee_number"`
	Department           string `json:"department"`
	HomeSiteID           string `json:"home_site_id"`
	StartDate            string `json:"start_date"`
	ProbationEnd         string `json:"probation_end"`
	RTWStatus            string `json:"rtw_status"`
	RTWExpiry            string `json:"rtw_expiry"`
	RTWDocumentType      string `json:"rtw_document_type"`
	DBSStatus            string `json:"dbs_status"`
	DBSCertificateNumber string `json:"dbs_certificate_number"`
	DBSCheckDate         string `json:"dbs_check_date"`
	DBSUpdateService     bool   `json:"dbs_update_service"`
	NINumber             string `json:"ni_number"`
	PensionEnrolled      bool   `json:"pension_enrolled"`
	Role                 string `json:"role"`
	TerminationDate      string `json:"termination_date"`
}

// AddDocumentRequest files a document for an employee.
type AddDocumentRequest struct {
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
	Expiry     string `json:"expiry"`
	VerifiedAt string `json:"verified_at"`
}

// AddTrainingRequest records a course enrollment.
type AddTrainingRequest struct {
	EmployeeID string `json:"employee_id"`
	CourseID   string `json:"course_id"`
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name"`
	Mandatory  bool   `json:"mandatory"`
	Status     string `json:"status"`
	Expiry     string `json:"expiry"`
}

// GrantSiteAccessRequest adds a site membership.
type GrantSiteAccessRequest struct {
	EmployeeID string `json:"employee_id"`
	SiteID     string `json:"site_id"`
}

// ItemDTO is one derived compliance finding.
type ItemDTO struct {
	Category string             `json:"category"`
	Label    string             `json:"label"`
	Status   string             `json:"status"`
	Detail   string             `json:"detail,omitempty"`
	Expiry   string             `json:"expiry,omitempty"`
	DaysLeft *int               `json:"days_left,omitempty"`
	Action   *compliance.Action `json:"action,omitempty"`
}

// EmployeeComplianceDTO is the per-employee aggregate view.
type EmployeeComplianceDTO struct {
	EmployeeID     string            `json:"employee_id"`
	Name           string            `json:"name"`
	EmployeeNumber string            `json:"employee_number,omitempty"`
	Department     string            `json:"department,omitempty"`
	SiteIDs        []string          `json:"site_ids"`
	Score          int               `json:"score"`
	Items          []ItemDTO         `json:"items"`
	Rollup         map[string]string `json:"rollup"`
}

// CategorySummaryDTO is the per-category KPI breakdown.
type CategorySummaryDTO struct {
	Total     int `json:"total"`
	Compliant int `json:"compliant"`
	Urgent    int `json:"urgent"`
}

// SummaryDTO is the organization-level KPI response.
type SummaryDTO struct {
	TotalEmployees int                           `json:"total_employees"`
	FullyCompliant int                           `json:"fully_compliant"`
	ActionRequired int                           `json:"action_required"`
	ExpiringSoon   int                           `json:"expiring_soon"`
	OverallScore   int                           `json:"overall_score"`
	ByCategory     map[string]CategorySummaryDTO `json:"by_category"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(e compliance.EmployeeRecord) EmployeeDTO {
	return EmployeeDTO{
		ID:             string(e.ID),
		Name:           e.Name,
		EmployeeNumber: e.EmployeeNumber,
		Department:     e.Department,
		HomeSiteID:     e.HomeSiteID,
		StartDate:      e.StartDate.String(),
		ProbationEnd:   e.ProbationEnd.String(),
		RTWStatus:      string(e.RTWStatus),
		DBSStatus:      string(e.DBSStatus),
	}
}

func toItemDTO(item compliance.Item) ItemDTO {
	return ItemDTO{
		Category: string(item.Category),
		Label:    item.Label,
		Status:   string(item.Status),
		Detail:   item.Detail,
		Expiry:   item.Expiry.String(),
		DaysLeft: item.DaysLeft,
		Action:   item.Action,
	}
}

func toComplianceDTO(ec compliance.EmployeeCompliance) EmployeeComplianceDTO {
	items := make([]ItemDTO, len(ec.Items))
	for i, item := range ec.Items {
		items[i] = toItemDTO(item)
	}
	rollup := make(map[string]string, len(ec.Rollup))
	for cat, status := range ec.Rollup {
		rollup[string(cat)] = string(status)
	}
	return EmployeeComplianceDTO{
		EmployeeID:     string(ec.EmployeeID),
		Name:           ec.Name,
		EmployeeNumber: ec.EmployeeNumber,
		Department:     ec.Department,
		SiteIDs:        ec.SiteIDs,
		Score:          ec.Score,
		Items:          items,
		Rollup:         rollup,
	}
}

func toComplianceDTOs(list []compliance.EmployeeCompliance) []EmployeeComplianceDTO {
	dtos := make([]EmployeeComplianceDTO, len(list))
	for i, ec := range list {
		dtos[i] = toComplianceDTO(ec)
	}
	return dtos
}

func toSummaryDTO(s compliance.Summary) SummaryDTO {
	byCategory := make(map[string]CategorySummaryDTO, len(s.ByCategory))
	for cat, cs := range s.ByCategory {
		byCategory[string(cat)] = CategorySummaryDTO{Total: cs.Total, Compliant: cs.Compliant, Urgent: cs.Urgent}
	}
	return SummaryDTO{
		TotalEmployees: s.TotalEmployees,
		FullyCompliant: s.FullyCompliant,
		ActionRequired: s.ActionRequired,
		ExpiringSoon:   s.ExpiringSoon,
		OverallScore:   s.OverallScore,
		ByCategory:     byCategory,
	}
}

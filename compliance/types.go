/*
Package compliance derives per-employee compliance state for the workforce
compliance dashboard.

PURPOSE:

	This package contains the pure computation core of the compliance
	subsystem. It takes the raw record sets fetched by the storage layer
	(employee profiles, documents, training records, site access) and derives
	a normalized multi-category compliance view per employee, plus filtered
	views and organization-level KPI summaries.

KEY CONCEPTS IN THIS FILE (types.go):
  - Status: severity-ordered compliance status (expired worst)
  - Category: the five compliance categories (RTW, DBS, training,
    documents, probation)
  - Item: one derived compliance finding for one employee
  - EmployeeCompliance: the per-employee aggregate (items + rollups + score)
  - Raw input records: EmployeeRecord, DocumentRecord, TrainingRecord,
    SiteAccessRecord

DESIGN PRINCIPLES:
 1. Purity: no I/O, no clock — "today" is always an explicit parameter
 2. Totality: malformed-but-present data falls through to safe defaults,
    never a panic
 3. Re-entrancy: every Build call constructs its own lookup indexes; no
    state survives an invocation
 4. Reproducibility: score arithmetic uses decimal.Decimal so rounding is
    exact

USAGE:

	out := compliance.Build(compliance.Input{
	    Employees:  employees,
	    Documents:  documents,
	    Training:   training,
	    SiteAccess: access,
	    Today:      compliance.NewTimePoint(2025, time.June, 15),
	})
	view := compliance.Filter(out, filters)
	kpis := compliance.Summarize(view)

SEE ALSO:
  - status.go: severity order, worst-status resolver, scoring
  - builder.go: index building and per-employee fold
  - filter.go, summary.go: view narrowing and KPI reduction
*/
package compliance

// =============================================================================
// STATUS - Severity-ordered compliance status
// =============================================================================

type Status string

const (
	StatusExpired        Status = "expired"
	StatusMissing        Status = "missing"
	StatusActionRequired Status = "action_required"
	StatusExpiringSoon   Status = "expiring_soon"
	StatusCompliant      Status = "compliant"
	StatusNotApplicable  Status = "not_applicable"
)

// =============================================================================
// CATEGORY - The five compliance categories
// =============================================================================

type Category string

const (
	CategoryRightToWork Category = "right_to_work"
	CategoryDBS         Category = "dbs"
	CategoryTraining    Category = "training"
	CategoryDocuments   Category = "documents"
	CategoryProbation   Category = "probation"
)

// Categories lists all categories in display order.
var Categories = []Category{
	CategoryRightToWork,
	CategoryDBS,
	CategoryTraining,
	CategoryDocuments,
	CategoryProbation,
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string

// =============================================================================
// RAW INPUT ENUMS - Status fields as stored upstream
// =============================================================================

// RTWStatus is the raw right-to-work verification status on the employee
// profile. Unknown values resolve to a "missing" compliance item.
type RTWStatus string

const (
	RTWNotRequired RTWStatus = "not_required"
	RTWVerified    RTWStatus = "verified"
	RTWExpired     RTWStatus = "expired"
	RTWPending     RTWStatus = "pending"
)

// DBSStatus is the raw background-check status on the employee profile.
type DBSStatus string

const (
	DBSNotRequired DBSStatus = "not_required"
	DBSClear       DBSStatus = "clear"
	DBSPending     DBSStatus = "pending"
	DBSIssuesFound DBSStatus = "issues_found"
)

// TrainingStatus is the raw per-course status on a training record.
type TrainingStatus string

const (
	TrainingCurrent      TrainingStatus = "current"
	TrainingCompliant    TrainingStatus = "compliant"
	TrainingExpired      TrainingStatus = "expired"
	TrainingExpiringSoon TrainingStatus = "expiring_soon"
	TrainingInProgress   TrainingStatus = "in_progress"
	TrainingAssigned     TrainingStatus = "assigned"
)

// DocumentType identifies a filed document. Category rules only ever test
// existence of at least one document of a type, never counts or freshness.
type DocumentType string

const (
	DocContract           DocumentType = "contract"
	DocEmploymentContract DocumentType = "employment_contract"
	DocRightToWork        DocumentType = "right_to_work"
	DocVisa               DocumentType = "visa"
	DocPassport           DocumentType = "passport"
	DocDBSCertificate     DocumentType = "dbs_certificate"
	DocOther              DocumentType = "other"
)

// =============================================================================
// RAW INPUT RECORDS
// =============================================================================

// EmployeeRecord is one active employee profile row. Callers must exclude
// terminated employees and platform admins before handing records to Build;
// TerminationDate and Role exist so the storage layer can apply that filter.
type EmployeeRecord struct {
	ID             EmployeeID
	Name           string
	EmployeeNumber string
	Department     string
	HomeSiteID     string
	StartDate      TimePoint
	ProbationEnd   TimePoint

	RTWStatus       RTWStatus
	RTWExpiry       TimePoint
	RTWDocumentType string

	DBSStatus            DBSStatus
	DBSCertificateNumber string
	DBSCheckDate         TimePoint
	DBSUpdateService     bool

	NINumber        string
	PensionEnrolled bool

	Role            string
	TerminationDate TimePoint
}

// DocumentRecord is one filed document row. Multiple rows per employee and
// per type are legal.
type DocumentRecord struct {
	ID         string
	EmployeeID EmployeeID
	Type       DocumentType
	Expiry     TimePoint
	VerifiedAt TimePoint
}

// TrainingRecord is one course-enrollment row. Only mandatory courses are
// relevant; the storage layer filters electives out before Build.
type TrainingRecord struct {
	ID         string
	EmployeeID EmployeeID
	CourseID   string
	CourseCode string
	CourseName string
	Mandatory  bool
	Status     TrainingStatus
	Expiry     TimePoint
}

// SiteAccessRecord is one employee-to-site membership row.
type SiteAccessRecord struct {
	EmployeeID EmployeeID
	SiteID     string
}

// =============================================================================
// DERIVED OUTPUT - Compliance items and per-employee aggregates
// =============================================================================

// Action tells the consuming UI which remediation control to show for a
// non-compliant item. The engine never interprets it.
type Action struct {
	Tag  string            `json:"tag"`
	Meta map[string]string `json:"meta,omitempty"`
}

// Item is one derived compliance finding. DaysLeft is the signed whole-day
// distance from "today" to Expiry; nil when the item has no expiry date.
type Item struct {
	Category Category
	Label    string
	Status   Status
	Detail   string
	Expiry   TimePoint
	DaysLeft *int
	Action   *Action
}

// EmployeeCompliance is the per-employee aggregate: the full item list, one
// worst-status rollup per category, and an overall 0-100 score.
type EmployeeCompliance struct {
	EmployeeID     EmployeeID
	Name           string
	EmployeeNumber string
	Department     string
	SiteIDs        []string
	Score          int
	Items          []Item
	Rollup         map[Category]Status
}

// HasSite reports whether the employee's accessible-site set contains siteID.
func (ec EmployeeCompliance) HasSite(siteID string) bool {
	for _, s := range ec.SiteIDs {
		if s == siteID {
			return true
		}
	}
	return false
}

/*
Package sqlite provides the SQLite-backed storage for compliance input
records.

PURPOSE:

	Persists the four raw record sets the compliance engine consumes:
	employee profiles, filed documents, training records, and site access.
	The engine itself owns no I/O; this package is the data-fetching
	collaborator that hands it complete (possibly empty) collections.

UPSTREAM EXCLUSIONS:

	ListEmployees applies the eligibility filter the engine's builder assumes
	as a precondition: terminated employees and platform admins never reach
	it. ListTrainingRecords returns mandatory courses only.

KEY TABLES:

	employees:         One row per profile, including RTW and DBS fields
	documents:         Filed documents (many per employee and per type)
	training_records:  Course enrollments with raw per-course status
	site_access:       Employee-to-site memberships

CONCURRENCY:

	Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
	database-level concurrency control handles this instead.

WAL MODE:

	SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
	- Multiple readers don't block
	- Single writer at a time
	- Better crash recovery

USAGE:

	store, err := sqlite.New("./data/compliance.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

MIGRATION:

	Schema is auto-migrated on New(). For production, use a proper
	migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - compliance/types.go: the record types stored here
  - api/handlers.go: fetches collections and invokes the engine
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/compliance-engine/compliance"
)

// platformAdminRole marks profiles excluded from every compliance build.
const platformAdminRole = "platform_admin"

// Store persists compliance input records using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		employee_number TEXT,
		department TEXT,
		home_site_id TEXT,
		start_date TEXT,
		probation_end TEXT,
		rtw_status TEXT,
		rtw_expiry TEXT,
		rtw_document_type TEXT,
		dbs_status TEXT,
		dbs_certificate_number TEXT,
		dbs_check_date TEXT,
		dbs_update_service INTEGER DEFAULT 0,
		ni_number TEXT,
		pension_enrolled INTEGER DEFAULT 0,
		role TEXT,
		termination_date TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_department
		ON employees(department);
	CREATE INDEX IF NOT EXISTS idx_employees_home_site
		ON employees(home_site_id);

	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		doc_type TEXT NOT NULL,
		expiry TEXT,
		verified_at TEXT,
		created_at TEXT NOT NULL
	);

	-- Hot path: the builder groups documents by employee every cycle
	CREATE INDEX IF NOT EXISTS idx_documents_employee
		ON documents(employee_id, doc_type);

	CREATE TABLE IF NOT EXISTS training_records (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		course_id TEXT,
		course_code TEXT,
		course_name TEXT,
		mandatory INTEGER DEFAULT 0,
		status TEXT,
		expiry TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_training_employee
		ON training_records(employee_id);
	CREATE INDEX IF NOT EXISTS idx_training_mandatory
		ON training_records(mandatory);

	CREATE TABLE IF NOT EXISTS site_access (
		employee_id TEXT NOT NULL,
		site_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (employee_id, site_id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Reset clears all data. Only used by demo scenarios and tests.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"employees", "documents", "training_records", "site_access"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// SaveEmployee inserts or replaces an employee profile.
func (s *Store) SaveEmployee(ctx context.Context, e compliance.EmployeeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO employees (
			id, name, employee_number, department, home_site_id,
			start_date, probation_end,
			rtw_status, rtw_expiry, rtw_document_type,
			dbs_status, dbs_certificate_number, dbs_check_date, dbs_update_service,
			ni_number, pension_enrolled, role, termination_date, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(e.ID), e.Name, e.EmployeeNumber, e.Department, e.HomeSiteID,
		dateToDB(e.StartDate), dateToDB(e.ProbationEnd),
		string(e.RTWStatus), dateToDB(e.RTWExpiry), e.RTWDocumentType,
		string(e.DBSStatus), e.DBSCertificateNumber, dateToDB(e.DBSCheckDate), boolToDB(e.DBSUpdateService),
		e.NINumber, boolToDB(e.PensionEnrolled), e.Role, dateToDB(e.TerminationDate),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

// GetEmployee returns one employee by id, or nil when not found.
func (s *Store) GetEmployee(ctx context.Context, id string) (*compliance.EmployeeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, employeeSelect+" WHERE id = ?", id)
	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &e, nil
}

// ListEmployees returns every eligible employee: no termination date and not
// a platform admin. This is the upstream exclusion the builder relies on.
func (s *Store) ListEmployees(ctx context.Context) ([]compliance.EmployeeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, employeeSelect+`
		WHERE (termination_date IS NULL OR termination_date = '')
		  AND (role IS NULL OR role != ?)
		ORDER BY name`, platformAdminRole)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var out []compliance.EmployeeRecord
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

const employeeSelect = `
	SELECT id, name, employee_number, department, home_site_id,
	       start_date, probation_end,
	       rtw_status, rtw_expiry, rtw_document_type,
	       dbs_status, dbs_certificate_number, dbs_check_date, dbs_update_service,
	       ni_number, pension_enrolled, role, termination_date
	FROM employees`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (compliance.EmployeeRecord, error) {
	var e compliance.EmployeeRecord
	var id, rtwStatus, dbsStatus string
	var startDate, probationEnd, rtwExpiry, dbsCheckDate, terminationDate string
	var dbsUpdateService, pensionEnrolled int

	err := row.Scan(
		&id, &e.Name, &e.EmployeeNumber, &e.Department, &e.HomeSiteID,
		&startDate, &probationEnd,
		&rtwStatus, &rtwExpiry, &e.RTWDocumentType,
		&dbsStatus, &e.DBSCertificateNumber, &dbsCheckDate, &dbsUpdateService,
		&e.NINumber, &pensionEnrolled, &e.Role, &terminationDate,
	)
	if err != nil {
		return e, err
	}

	e.ID = compliance.EmployeeID(id)
	e.RTWStatus = compliance.RTWStatus(rtwStatus)
	e.DBSStatus = compliance.DBSStatus(dbsStatus)
	e.StartDate = dateFromDB(startDate)
	e.ProbationEnd = dateFromDB(probationEnd)
	e.RTWExpiry = dateFromDB(rtwExpiry)
	e.DBSCheckDate = dateFromDB(dbsCheckDate)
	e.TerminationDate = dateFromDB(terminationDate)
	e.DBSUpdateService = dbsUpdateService != 0
	e.PensionEnrolled = pensionEnrolled != 0
	return e, nil
}

// =============================================================================
// DOCUMENTS
// =============================================================================

// SaveDocument inserts a document row, generating an id when absent.
func (s *Store) SaveDocument(ctx context.Context, d compliance.DocumentRecord) (compliance.DocumentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO documents (id, employee_id, doc_type, expiry, verified_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, string(d.EmployeeID), string(d.Type), dateToDB(d.Expiry), dateToDB(d.VerifiedAt),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return d, fmt.Errorf("failed to save document: %w", err)
	}
	return d, nil
}

// ListDocuments returns all filed documents.
func (s *Store) ListDocuments(ctx context.Context) ([]compliance.DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, doc_type, expiry, verified_at FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var out []compliance.DocumentRecord
	for rows.Next() {
		var d compliance.DocumentRecord
		var employeeID, docType, expiry, verifiedAt string
		if err := rows.Scan(&d.ID, &employeeID, &docType, &expiry, &verifiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		d.EmployeeID = compliance.EmployeeID(employeeID)
		d.Type = compliance.DocumentType(docType)
		d.Expiry = dateFromDB(expiry)
		d.VerifiedAt = dateFromDB(verifiedAt)
		out = append(out, d)
	}
	return out, rows.Err()
}

// =============================================================================
// TRAINING RECORDS
// =============================================================================

// SaveTrainingRecord inserts a training row, generating an id when absent.
func (s *Store) SaveTrainingRecord(ctx context.Context, r compliance.TrainingRecord) (compliance.TrainingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO training_records
			(id, employee_id, course_id, course_code, course_name, mandatory, status, expiry, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.EmployeeID), r.CourseID, r.CourseCode, r.CourseName,
		boolToDB(r.Mandatory), string(r.Status), dateToDB(r.Expiry),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return r, fmt.Errorf("failed to save training record: %w", err)
	}
	return r, nil
}

// ListTrainingRecords returns mandatory-course rows only, matching the
// engine's input contract.
func (s *Store) ListTrainingRecords(ctx context.Context) ([]compliance.TrainingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, course_id, course_code, course_name, mandatory, status, expiry
		FROM training_records WHERE mandatory = 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to list training records: %w", err)
	}
	defer rows.Close()

	var out []compliance.TrainingRecord
	for rows.Next() {
		var r compliance.TrainingRecord
		var employeeID, status, expiry string
		var mandatory int
		if err := rows.Scan(&r.ID, &employeeID, &r.CourseID, &r.CourseCode, &r.CourseName, &mandatory, &status, &expiry); err != nil {
			return nil, fmt.Errorf("failed to scan training record: %w", err)
		}
		r.EmployeeID = compliance.EmployeeID(employeeID)
		r.Mandatory = mandatory != 0
		r.Status = compliance.TrainingStatus(status)
		r.Expiry = dateFromDB(expiry)
		out = append(out, r)
	}
	return out, rows.Err()
}

// =============================================================================
// SITE ACCESS
// =============================================================================

// GrantSiteAccess records a site membership. Duplicate grants are no-ops.
func (s *Store) GrantSiteAccess(ctx context.Context, a compliance.SiteAccessRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO site_access (employee_id, site_id, created_at)
		VALUES (?, ?, ?)`,
		string(a.EmployeeID), a.SiteID, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to grant site access: %w", err)
	}
	return nil
}

// ListSiteAccess returns all site memberships.
func (s *Store) ListSiteAccess(ctx context.Context) ([]compliance.SiteAccessRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT employee_id, site_id FROM site_access`)
	if err != nil {
		return nil, fmt.Errorf("failed to list site access: %w", err)
	}
	defer rows.Close()

	var out []compliance.SiteAccessRecord
	for rows.Next() {
		var a compliance.SiteAccessRecord
		var employeeID string
		if err := rows.Scan(&employeeID, &a.SiteID); err != nil {
			return nil, fmt.Errorf("failed to scan site access: %w", err)
		}
		a.EmployeeID = compliance.EmployeeID(employeeID)
		out = append(out, a)
	}
	return out, rows.Err()
}

// =============================================================================
// DATE / BOOL MAPPING
// =============================================================================
// Dates are stored as ISO "2006-01-02" strings, empty meaning "no date".

func dateToDB(tp compliance.TimePoint) string {
	return tp.String()
}

func dateFromDB(s string) compliance.TimePoint {
	tp, err := compliance.ParseDate(s)
	if err != nil {
		return compliance.TimePoint{}
	}
	return tp
}

func boolToDB(b bool) int {
	if b {
		return 1
	}
	return 0
}

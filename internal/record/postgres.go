package record

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository is the PostgreSQL Store implementation. Insertion order is
// preserved by the monotonic seq column; id uniqueness is enforced by the
// primary key on top of the uuid generator.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AddPatient(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO patients (id, name, age, gender, address, contact_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, age, gender, address, contact_number, created_at
	`

	var patient Patient
	var address sql.NullString
	var contactNumber sql.NullString

	err := r.db.QueryRowContext(ctx, query,
		uuid.New().String(),
		req.Name,
		*req.Age,
		req.Gender,
		nullable(req.Address),
		nullable(req.ContactNumber),
		time.Now().UTC(),
	).Scan(
		&patient.ID,
		&patient.Name,
		&patient.Age,
		&patient.Gender,
		&address,
		&contactNumber,
		&patient.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert patient: %w", err)
	}

	if address.Valid {
		patient.Address = address.String
	}
	if contactNumber.Valid {
		patient.ContactNumber = contactNumber.String
	}

	return &patient, nil
}

func (r *Repository) ListPatients(ctx context.Context) ([]Patient, error) {
	query := `
		SELECT id, name, age, gender, address, contact_number, created_at
		FROM patients
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	patients := []Patient{}
	for rows.Next() {
		var patient Patient
		var address sql.NullString
		var contactNumber sql.NullString

		err := rows.Scan(
			&patient.ID,
			&patient.Name,
			&patient.Age,
			&patient.Gender,
			&address,
			&contactNumber,
			&patient.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}

		if address.Valid {
			patient.Address = address.String
		}
		if contactNumber.Valid {
			patient.ContactNumber = contactNumber.String
		}

		patients = append(patients, patient)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patients: %w", err)
	}

	return patients, nil
}

func (r *Repository) GetPatient(ctx context.Context, id string) (*Patient, error) {
	query := `
		SELECT id, name, age, gender, address, contact_number, created_at
		FROM patients
		WHERE id = $1
	`

	var patient Patient
	var address sql.NullString
	var contactNumber sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&patient.ID,
		&patient.Name,
		&patient.Age,
		&patient.Gender,
		&address,
		&contactNumber,
		&patient.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}

	if address.Valid {
		patient.Address = address.String
	}
	if contactNumber.Valid {
		patient.ContactNumber = contactNumber.String
	}

	return &patient, nil
}

func (r *Repository) AddTest(ctx context.Context, patientID string, req CreateTestRequest) (*Test, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Resolve the parent patient first so a missing patient surfaces as
	// ErrPatientNotFound rather than a foreign key violation.
	if _, err := r.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO tests (id, patient_id, test_type, test_date, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, patient_id, test_type, test_date, result, created_at
	`

	var test Test
	err := r.db.QueryRowContext(ctx, query,
		uuid.New().String(),
		patientID,
		req.TestType,
		req.TestDate,
		req.Result,
		time.Now().UTC(),
	).Scan(
		&test.ID,
		&test.PatientID,
		&test.TestType,
		&test.TestDate,
		&test.Result,
		&test.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert test: %w", err)
	}

	return &test, nil
}

func (r *Repository) ListTests(ctx context.Context, patientID string) ([]Test, error) {
	if _, err := r.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, patient_id, test_type, test_date, result, created_at
		FROM tests
		WHERE patient_id = $1
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tests: %w", err)
	}
	defer rows.Close()

	tests := []Test{}
	for rows.Next() {
		var test Test
		err := rows.Scan(
			&test.ID,
			&test.PatientID,
			&test.TestType,
			&test.TestDate,
			&test.Result,
			&test.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan test: %w", err)
		}
		tests = append(tests, test)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tests: %w", err)
	}

	return tests, nil
}

// nullable maps an empty optional field to NULL
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

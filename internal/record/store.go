package record

import "context"

// Store defines the contract for patient and test persistence. The query
// engine and the transport layer only ever read and write through it, so
// the backing engine (in-memory, PostgreSQL) is swappable.
//
// Every implementation must guarantee:
//   - generated ids are unique for the lifetime of the store, even under
//     concurrent writers
//   - ListPatients and ListTests return records in insertion order
//   - AddTest never creates a test for a patient that does not exist
type Store interface {
	AddPatient(ctx context.Context, req CreatePatientRequest) (*Patient, error)
	ListPatients(ctx context.Context) ([]Patient, error)
	GetPatient(ctx context.Context, id string) (*Patient, error)
	AddTest(ctx context.Context, patientID string, req CreateTestRequest) (*Test, error)
	ListTests(ctx context.Context, patientID string) ([]Test, error)
}

// Ensure both engines implement Store
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*Repository)(nil)
)

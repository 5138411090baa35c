package record

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is the in-process Store implementation. A single RWMutex
// serializes id assignment and insertion so concurrent adds never collide;
// reads share the lock and never observe a partially-written record.
type MemoryStore struct {
	mu       sync.RWMutex
	patients []Patient
	byID     map[string]int    // patient id -> index into patients
	tests    map[string][]Test // patient id -> tests in insertion order
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:  make(map[string]int),
		tests: make(map[string][]Test),
	}
}

func (s *MemoryStore) AddPatient(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	patient := Patient{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Age:           *req.Age,
		Gender:        req.Gender,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		CreatedAt:     time.Now().UTC(),
	}

	s.byID[patient.ID] = len(s.patients)
	s.patients = append(s.patients, patient)

	return &patient, nil
}

func (s *MemoryStore) ListPatients(ctx context.Context) ([]Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patients := make([]Patient, len(s.patients))
	copy(patients, s.patients)
	return patients, nil
}

func (s *MemoryStore) GetPatient(ctx context.Context, id string) (*Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return nil, ErrPatientNotFound
	}

	patient := s.patients[idx]
	return &patient, nil
}

func (s *MemoryStore) AddTest(ctx context.Context, patientID string, req CreateTestRequest) (*Test, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Referential integrity: the parent patient must exist at the moment
	// the test is recorded. On failure nothing is stored.
	if _, ok := s.byID[patientID]; !ok {
		return nil, ErrPatientNotFound
	}

	test := Test{
		ID:        uuid.New().String(),
		PatientID: patientID,
		TestType:  req.TestType,
		TestDate:  req.TestDate,
		Result:    req.Result,
		CreatedAt: time.Now().UTC(),
	}

	s.tests[patientID] = append(s.tests[patientID], test)

	return &test, nil
}

func (s *MemoryStore) ListTests(ctx context.Context, patientID string) ([]Test, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.byID[patientID]; !ok {
		return nil, ErrPatientNotFound
	}

	tests := make([]Test, len(s.tests[patientID]))
	copy(tests, s.tests[patientID])
	return tests, nil
}

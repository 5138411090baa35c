package clinical

import (
	"context"

	"github.com/clinitrack/clinical-record-service/internal/record"
)

// ServiceInterface defines the contract for clinical record operations
type ServiceInterface interface {
	RegisterPatient(ctx context.Context, req record.CreatePatientRequest) (*record.Patient, error)
	ListPatients(ctx context.Context) ([]record.Patient, error)
	GetPatient(ctx context.Context, id string) (*record.Patient, error)
	RecordTest(ctx context.Context, patientID string, req record.CreateTestRequest) (*record.Test, error)
	ListTests(ctx context.Context, patientID string) ([]record.Test, error)
	GetPatientHistory(ctx context.Context, patientID string) (*PatientHistory, error)
	ListCriticalPatients(ctx context.Context) ([]record.Patient, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

package clinical

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/clinitrack/clinical-record-service/internal/messaging"
	"github.com/clinitrack/clinical-record-service/internal/record"
	"github.com/clinitrack/clinical-record-service/internal/telemetry"
)

// Service is the clinical query engine. It composes derived, read-only
// views over the record store and fronts the write operations so domain
// events are published on successful inserts. It never duplicates storage:
// every read goes through the Store interface.
type Service struct {
	store     record.Store
	publisher messaging.PublisherInterface
	markers   Markers
	metrics   *telemetry.Metrics
}

func NewService(store record.Store, publisher messaging.PublisherInterface, markers Markers, metrics *telemetry.Metrics) *Service {
	if len(markers) == 0 {
		markers = DefaultMarkers()
	}
	return &Service{
		store:     store,
		publisher: publisher,
		markers:   markers,
		metrics:   metrics,
	}
}

func (s *Service) RegisterPatient(ctx context.Context, req record.CreatePatientRequest) (*record.Patient, error) {
	patient, err := s.store.AddPatient(ctx, req)
	if err != nil {
		return nil, err
	}

	event := messaging.PatientRegisteredEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientRegistered),
		Data: messaging.PatientRegisteredData{
			PatientID:    patient.ID,
			Name:         patient.Name,
			Age:          patient.Age,
			Gender:       patient.Gender,
			RegisteredAt: patient.CreatedAt,
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventPatientRegistered, event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", messaging.EventPatientRegistered, err)
	}
	s.metrics.RecordPatientOperation(ctx, "register")

	return patient, nil
}

func (s *Service) ListPatients(ctx context.Context) ([]record.Patient, error) {
	patients, err := s.store.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*record.Patient, error) {
	return s.store.GetPatient(ctx, id)
}

func (s *Service) RecordTest(ctx context.Context, patientID string, req record.CreateTestRequest) (*record.Test, error) {
	test, err := s.store.AddTest(ctx, patientID, req)
	if err != nil {
		return nil, err
	}

	event := messaging.TestRecordedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventTestRecorded),
		Data: messaging.TestRecordedData{
			TestID:     test.ID,
			PatientID:  test.PatientID,
			TestType:   test.TestType,
			TestDate:   test.TestDate,
			Result:     test.Result,
			RecordedAt: test.CreatedAt,
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventTestRecorded, event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", messaging.EventTestRecorded, err)
	}

	if s.markers.Matches(test.Result) {
		critical := messaging.CriticalResultEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventCriticalResult),
			Data: messaging.CriticalResultData{
				TestID:    test.ID,
				PatientID: test.PatientID,
				TestType:  test.TestType,
				Result:    test.Result,
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventCriticalResult, critical); err != nil {
			log.Printf("Warning: failed to publish %s event: %v", messaging.EventCriticalResult, err)
		}
	}
	s.metrics.RecordTestOperation(ctx, "record")

	return test, nil
}

func (s *Service) ListTests(ctx context.Context, patientID string) ([]record.Test, error) {
	return s.store.ListTests(ctx, patientID)
}

// GetPatientHistory assembles the patient record and its full test
// collection. Pure read-through composition, no new persisted state.
func (s *Service) GetPatientHistory(ctx context.Context, patientID string) (*PatientHistory, error) {
	patient, err := s.store.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	tests, err := s.store.ListTests(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tests for patient %s: %w", patientID, err)
	}

	return &PatientHistory{
		Patient: *patient,
		Tests:   tests,
	}, nil
}

// ListCriticalPatients returns, in original relative order, the patients
// having at least one test whose result matches the critical vocabulary.
// Patients with zero tests are never returned.
func (s *Service) ListCriticalPatients(ctx context.Context) ([]record.Patient, error) {
	start := time.Now()

	patients, err := s.store.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	critical := []record.Patient{}
	for _, patient := range patients {
		tests, err := s.store.ListTests(ctx, patient.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch tests for patient %s: %w", patient.ID, err)
		}
		for _, test := range tests {
			if s.markers.Matches(test.Result) {
				critical = append(critical, patient)
				break
			}
		}
	}

	s.metrics.RecordCriticalQuery(ctx, float64(time.Since(start).Milliseconds()), len(critical))
	return critical, nil
}

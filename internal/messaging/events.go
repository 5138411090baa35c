package messaging

import (
	"fmt"
	"time"
)

// Event routing keys as constants
const (
	EventPatientRegistered = "patient.registered"
	EventTestRecorded      = "test.recorded"
	EventCriticalResult    = "test.critical_result"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// PatientRegisteredEvent represents a patient registration event
type PatientRegisteredEvent struct {
	BaseEvent
	Data PatientRegisteredData `json:"data"`
}

type PatientRegisteredData struct {
	PatientID    string    `json:"patient_id"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Gender       string    `json:"gender"`
	RegisteredAt time.Time `json:"registered_at"`
}

// TestRecordedEvent represents a recorded diagnostic test
type TestRecordedEvent struct {
	BaseEvent
	Data TestRecordedData `json:"data"`
}

type TestRecordedData struct {
	TestID     string    `json:"test_id"`
	PatientID  string    `json:"patient_id"`
	TestType   string    `json:"test_type"`
	TestDate   string    `json:"test_date"`
	Result     string    `json:"result"`
	RecordedAt time.Time `json:"recorded_at"`
}

// CriticalResultEvent is emitted in addition to TestRecordedEvent when a
// recorded result matches the critical vocabulary, so downstream alerting
// can bind to one routing key.
type CriticalResultEvent struct {
	BaseEvent
	Data CriticalResultData `json:"data"`
}

type CriticalResultData struct {
	TestID    string `json:"test_id"`
	PatientID string `json:"patient_id"`
	TestType  string `json:"test_type"`
	Result    string `json:"result"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     fmt.Sprintf("%d", time.Now().UnixNano()),
		Timestamp:   time.Now().UTC(), // Explicitly set to UTC
		ServiceName: "clinical-record-service",
	}
}

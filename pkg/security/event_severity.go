package security

import "go.uber.org/zap/zapcore"

// Severity represents the severity level of an inquiry event.
// It is derived from EventType, never from request data.
type Severity string

const (
	SeverityINFO     Severity = "INFO"
	SeverityMEDIUM   Severity = "MEDIUM"
	SeverityWARN     Severity = "WARN"
	SeverityHIGH     Severity = "HIGH"
	SeverityCRITICAL Severity = "CRITICAL"
)

// EventSeverityMap defines the hard-coded severity for each event type
var EventSeverityMap = map[EventType]Severity{
	EventInquiryForwarded: SeverityINFO,

	// Client mistakes and bots
	EventMethodNotAllowed:  SeverityWARN,
	EventHoneypotTriggered: SeverityWARN,
	EventValidationFailed:  SeverityWARN,

	// Lost audit rows, the inquiry itself was delivered
	EventSheetLogFailed: SeverityMEDIUM,

	// Inquiries are being lost
	EventEmailSendFailed:       SeverityHIGH,
	EventProviderMisconfigured: SeverityCRITICAL,
}

// GetSeverity returns the severity for an event type.
// Unmapped types default to MEDIUM.
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

// IsHighOrAbove returns true if the event is HIGH or CRITICAL severity
func IsHighOrAbove(eventType EventType) bool {
	severity := GetSeverity(eventType)
	return severity == SeverityHIGH || severity == SeverityCRITICAL
}

// zapLevel maps a severity onto the log level it is emitted at
func (s Severity) zapLevel() zapcore.Level {
	switch s {
	case SeverityINFO:
		return zapcore.InfoLevel
	case SeverityMEDIUM, SeverityWARN:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

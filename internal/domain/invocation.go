package domain

import "time"

// Invocation summarizes one handled request for audit and telemetry sinks.
type Invocation struct {
	ID                string        `json:"id"`
	ReceivedAt        time.Time     `json:"received_at"`
	Namespace         Namespace     `json:"namespace"`
	RequestName       string        `json:"request_name"`
	ApplianceID       string        `json:"appliance_id,omitempty"`
	MessageID         string        `json:"message_id"`
	ResponseNamespace Namespace     `json:"response_namespace,omitempty"`
	ResponseName      string        `json:"response_name,omitempty"`
	Duration          time.Duration `json:"duration_ns"`
	Error             string        `json:"error,omitempty"`
}

// Failed reports whether the invocation ended without a response.
func (i Invocation) Failed() bool {
	return i.Error != ""
}

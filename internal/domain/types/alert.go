package types

// Location is a best-effort device position.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SMSRequest is the body posted to an SMS gateway.
type SMSRequest struct {
	To   []string `json:"to"`
	Body string   `json:"body"`
}

// AlertStatus describes how an alert dispatch ended.
type AlertStatus string

const (
	AlertSent           AlertStatus = "sent"
	AlertNoContacts     AlertStatus = "no_contacts"
	AlertSMSUnavailable AlertStatus = "sms_unavailable"
	AlertFailed         AlertStatus = "failed"
)

// AlertReport summarises a dispatch for user-facing messaging.
type AlertReport struct {
	Status     AlertStatus `json:"status"`
	Recipients []string    `json:"recipients,omitempty"`
	Message    string      `json:"message,omitempty"`
	Located    bool        `json:"located"`
}

package alert

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"wtime/internal/domain"
	"wtime/internal/logger"
)

var (
	// ErrNoContacts is returned when there is nobody to alert.
	ErrNoContacts = errors.New("no emergency contacts configured")

	// ErrSMSUnavailable is returned when the device cannot send SMS.
	ErrSMSUnavailable = errors.New("sms unavailable")

	// ErrSendFailed wraps a failure reported by the SMS sender.
	ErrSendFailed = errors.New("send emergency alert failed")
)

// EmergencyNumbers are the public hotlines listed in safe mode.
var EmergencyNumbers = []string{"112", "016"}

const (
	messagePrefix       = "EMERGENCY ALERT: I need help. My location: "
	locationUnavailable = "Location unavailable"
)

// Service dispatches emergency alerts to the stored contacts.
type Service struct {
	settings domain.SettingsReader
	locator  domain.Locator
	sms      domain.SMSSender
	log      *logger.Logger
}

// New constructs an alert Service. A nil locator means location is never
// available; a nil sender means SMS is never available.
func New(settings domain.SettingsReader, locator domain.Locator, sms domain.SMSSender, log *logger.Logger) *Service {
	if locator == nil {
		locator = NoLocator{}
	}
	if sms == nil {
		sms = UnavailableSender{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{settings: settings, locator: locator, sms: sms, log: log.With("component", "alert")}
}

// Dispatch sends the alert to every contact in one message.
//
// The returned report is always filled in as far as the dispatch got, so a
// caller can tell the user what happened even when err is non-nil.
func (s *Service) Dispatch(ctx context.Context) (domain.AlertReport, error) {
	recipients := s.settings.Settings().PhoneNumbers()
	if len(recipients) == 0 {
		s.log.Warn("panic alert with no contacts")
		return domain.AlertReport{Status: domain.AlertNoContacts}, ErrNoContacts
	}

	where, located := s.locate(ctx)
	report := domain.AlertReport{
		Recipients: recipients,
		Message:    Message(where),
		Located:    located,
	}

	if !s.sms.Available(ctx) {
		s.log.Warn("sms unavailable, contacts must be called manually", "recipients", len(recipients))
		report.Status = domain.AlertSMSUnavailable
		return report, ErrSMSUnavailable
	}
	if err := s.sms.Send(ctx, recipients, report.Message); err != nil {
		s.log.Error("emergency alert failed", "error", err, "recipients", len(recipients))
		report.Status = domain.AlertFailed
		return report, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	s.log.Info("emergency alert sent", "recipients", len(recipients), "located", located)
	report.Status = domain.AlertSent
	return report, nil
}

func (s *Service) locate(ctx context.Context) (string, bool) {
	loc, err := s.locator.Locate(ctx)
	if err != nil {
		s.log.Warn("location lookup failed", "error", err)
		return locationUnavailable, false
	}
	return MapsURL(loc), true
}

// Message is the alert text for a location string.
func Message(location string) string {
	return messagePrefix + location
}

// MapsURL links to loc on Google Maps.
func MapsURL(loc domain.Location) string {
	return "https://maps.google.com/?q=" +
		strconv.FormatFloat(loc.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(loc.Longitude, 'f', -1, 64)
}

var _ domain.AlertService = (*Service)(nil)

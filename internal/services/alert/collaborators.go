package alert

import (
	"context"
	"errors"

	"wtime/internal/domain"
	"wtime/internal/logger"
)

// ErrLocationUnavailable is returned by NoLocator.
var ErrLocationUnavailable = errors.New("location unavailable")

// NoLocator never knows where the device is.
type NoLocator struct{}

func (NoLocator) Locate(context.Context) (domain.Location, error) {
	return domain.Location{}, ErrLocationUnavailable
}

// StaticLocator reports a fixed position, e.g. from configuration.
type StaticLocator struct {
	Location domain.Location
}

func (l StaticLocator) Locate(ctx context.Context) (domain.Location, error) {
	if err := ctx.Err(); err != nil {
		return domain.Location{}, err
	}
	return l.Location, nil
}

// UnavailableSender models a device without SMS.
type UnavailableSender struct{}

func (UnavailableSender) Available(context.Context) bool { return false }

func (UnavailableSender) Send(context.Context, []string, string) error { return ErrSMSUnavailable }

// LogSender records alerts in the log instead of sending them. It is a dry
// run for local development without an SMS gateway; the body itself is
// redacted like any other message.
type LogSender struct {
	Log *logger.Logger
}

func (LogSender) Available(context.Context) bool { return true }

func (s LogSender) Send(_ context.Context, to []string, body string) error {
	log := s.Log
	if log == nil {
		log = logger.NewNop()
	}
	log.Info("sms not sent (log sender)", "recipients", len(to), "message", body)
	return nil
}

var (
	_ domain.Locator   = NoLocator{}
	_ domain.Locator   = StaticLocator{}
	_ domain.SMSSender = UnavailableSender{}
	_ domain.SMSSender = LogSender{}
)

package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/money_billing/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Now is the service clock. Nil means time.Now.
	Now func() time.Time
	// RateLocation decides which calendar day "today" is for rate lookups. Nil means UTC.
	RateLocation *time.Location
}

// CurrentTime returns the service clock reading in UTC.
func (s *BaseService) CurrentTime() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// RateDay returns today's date in RateLocation as a UTC midnight.
func (s *BaseService) RateDay() time.Time {
	loc := s.RateLocation
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := s.CurrentTime().In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

package billing

import (
	"context"
	"sync"

	"checkout-be/internal/address"
	"checkout-be/internal/logger"

	"go.uber.org/zap"
)

type Alert struct {
	Scope   UpdateKey
	Field   string
	Message string
	Code    string
}

// Alerts shows transient notifications for failed updates.
type Alerts interface {
	ShowErrors(ctx context.Context, errs address.FieldErrors, scope UpdateKey)
}

// AlertFeed queues alerts until the presenter picks them up.
type AlertFeed struct {
	mu      sync.Mutex
	pending []Alert
}

func NewAlertFeed() *AlertFeed {
	return &AlertFeed{}
}

func (f *AlertFeed) ShowErrors(ctx context.Context, errs address.FieldErrors, scope UpdateKey) {
	log := logger.FromCtx(ctx).With(zap.String("scope", string(scope)))

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, fe := range errs {
		log.Warn("update failed",
			zap.String("field", fe.Field),
			zap.String("code", fe.Code),
			zap.String("message", fe.Message),
		)
		f.pending = append(f.pending, Alert{
			Scope:   scope,
			Field:   fe.Field,
			Message: fe.Message,
			Code:    fe.Code,
		})
	}
}

// Drain hands out the queued alerts once.
func (f *AlertFeed) Drain() []Alert {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.pending
	f.pending = nil
	return out
}

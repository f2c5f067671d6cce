// Package notification contains Notifier implementations. Delivery is
// best-effort everywhere: a failed send is logged and swallowed, never
// propagated to the caller.
package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/petrodist/fuel-orders/internal/domain/customer"
)

var _ customer.Notifier = (*LogNotifier)(nil)

// LogNotifier writes customer notifications to the structured log. It stands
// in for a real mail or messaging integration.
type LogNotifier struct {
	lg *zap.Logger
}

// NewLogNotifier returns a LogNotifier writing through lg.
func NewLogNotifier(lg *zap.Logger) *LogNotifier {
	return &LogNotifier{lg: lg}
}

// SendWelcome logs a welcome event for a freshly registered customer.
func (n *LogNotifier) SendWelcome(_ context.Context, c *customer.Customer) bool {
	n.lg.Info("welcome message sent",
		zap.String("customer_id", c.ID),
		zap.String("email", c.Email.String()),
	)
	return true
}

// SendOrderConfirmation logs an order confirmation event.
func (n *LogNotifier) SendOrderConfirmation(_ context.Context, c *customer.Customer, orderID, total string) bool {
	n.lg.Info("order confirmation sent",
		zap.String("customer_id", c.ID),
		zap.String("email", c.Email.String()),
		zap.String("order_id", orderID),
		zap.String("total", total),
	)
	return true
}

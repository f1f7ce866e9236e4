package communication

import (
	"context"
	"fmt"

	"github.com/propmanager/backend/internal/domain/maintenance"
	"github.com/propmanager/backend/internal/domain/messaging"
	"github.com/propmanager/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MaintenanceStatusHandler tells the requester when an admin moves their
// maintenance request along, by sending a message from that admin.
type MaintenanceStatusHandler struct {
	messages messaging.Repository
	logger   *zap.Logger
}

// NewMaintenanceStatusHandler creates a new handler for maintenance status events
func NewMaintenanceStatusHandler(messages messaging.Repository, logger *zap.Logger) *MaintenanceStatusHandler {
	return &MaintenanceStatusHandler{messages: messages, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *MaintenanceStatusHandler) EventTypes() []string {
	return []string{maintenance.EventTypeStatusChanged}
}

// Handle processes a StatusChangedEvent
func (h *MaintenanceStatusHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*maintenance.StatusChangedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", maintenance.EventTypeStatusChanged),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			maintenance.EventTypeStatusChanged, event.EventType())
	}

	// The requester changed their own request; nobody to tell.
	if changed.ChangedBy == changed.TenantID {
		return nil
	}

	body := fmt.Sprintf("Your maintenance request %q is now %s.", changed.Title, changed.To)
	m, err := messaging.NewMessage(changed.ChangedBy, changed.TenantID, "Maintenance update", body)
	if err != nil {
		return fmt.Errorf("build maintenance notification: %w", err)
	}
	if err := h.messages.Create(ctx, m); err != nil {
		return fmt.Errorf("store maintenance notification: %w", err)
	}

	h.logger.Info("Maintenance notification sent",
		zap.String("request_id", changed.RequestID.String()),
		zap.String("tenant_id", changed.TenantID.String()),
		zap.String("status", string(changed.To)),
	)
	return nil
}

var _ shared.EventHandler = (*MaintenanceStatusHandler)(nil)

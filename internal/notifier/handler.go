// Package notifier turns marketplace events from the broker into email and
// SMS notifications.
package notifier

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/internal/infrastructure/messaging"
)

// Bindings are the routing keys the notifier subscribes to
var Bindings = []string{
	string(domain.UserRegisteredEvent),
	string(domain.MemberAddedEvent),
	string(domain.ReviewCreatedEvent),
}

// Handler implements messaging.Handler
type Handler struct {
	users         domain.UserRepository
	notifications domain.NotificationService
	logger        *zap.Logger
}

func NewHandler(users domain.UserRepository, notifications domain.NotificationService, logger *zap.Logger) *Handler {
	return &Handler{
		users:         users,
		notifications: notifications,
		logger:        logger.Named("notifier"),
	}
}

// Handle dispatches one event by routing key
func (h *Handler) Handle(ctx context.Context, routingKey string, body []byte) error {
	switch domain.EventType(routingKey) {
	case domain.UserRegisteredEvent:
		return h.userRegistered(body)
	case domain.MemberAddedEvent:
		return h.memberAdded(ctx, body)
	case domain.ReviewCreatedEvent:
		return h.reviewCreated(ctx, body)
	}
	return fmt.Errorf("%w: %s", messaging.ErrUnknownRoutingKey, routingKey)
}

func (h *Handler) userRegistered(body []byte) error {
	_, payload, err := domain.DecodePayload[domain.UserRegistered](body)
	if err != nil {
		return err
	}
	if payload.Email == "" {
		return nil
	}
	return h.notifications.SendEmail(payload.Email,
		"Welcome to Quezi",
		fmt.Sprintf("Hi %s, your Quezi account is ready.", payload.Name),
	)
}

func (h *Handler) memberAdded(ctx context.Context, body []byte) error {
	_, payload, err := domain.DecodePayload[domain.MemberAdded](body)
	if err != nil {
		return err
	}

	user, ok, err := h.lookup(ctx, payload.UserID)
	if !ok {
		return err
	}
	return h.notifications.SendEmail(user.Email,
		"You joined "+payload.OrganizationName,
		fmt.Sprintf("Hi %s, you were added to %s as %s.", user.Name, payload.OrganizationName, payload.Role),
	)
}

func (h *Handler) reviewCreated(ctx context.Context, body []byte) error {
	_, payload, err := domain.DecodePayload[domain.ReviewCreated](body)
	if err != nil {
		return err
	}

	pro, ok, err := h.lookup(ctx, payload.ProfessionalID)
	if !ok {
		return err
	}
	if pro.Phone == "" {
		h.logger.Debug("no phone for review notice", zap.Uint("professional_id", pro.ID))
		return nil
	}
	return h.notifications.SendSMS(pro.Phone,
		fmt.Sprintf("Quezi: you received a new %d-star review.", payload.Rating),
	)
}

// lookup loads the recipient. A deleted user is not an error: the event is
// dropped rather than requeued forever.
func (h *Handler) lookup(ctx context.Context, id uint) (*domain.User, bool, error) {
	user, err := h.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			h.logger.Info("recipient gone, dropping event", zap.Uint("user_id", id))
			return nil, false, nil
		}
		return nil, false, err
	}
	return user, true, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"photogram-api/apperrors"
	"photogram-api/metrics"
	"photogram-api/models"
	"photogram-api/repositories"
)

type SubscriptionService struct {
	db            *gorm.DB
	subscriptions *repositories.SubscriptionRepository
	log           *slog.Logger
}

func NewSubscriptionService(db *gorm.DB, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		db:            db,
		subscriptions: repositories.NewSubscriptionRepository(db),
		log:           log,
	}
}

// Toggle subscribes userID to targetID, or removes an existing subscription.
func (s *SubscriptionService) Toggle(ctx context.Context, userID, targetID string) (*models.SubscriptionResult, error) {
	db := s.db.WithContext(ctx)
	if _, err := findUser(db, targetID); err != nil {
		return nil, err
	}
	if userID == targetID {
		return nil, apperrors.ErrSelfSubscription
	}

	subscribed, err := s.subscriptions.WithTx(db).Toggle(userID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle subscription: %w", err)
	}

	metrics.SubscriptionsToggledTotal.WithLabelValues(metrics.State(subscribed, "subscribed", "unsubscribed")).Inc()
	s.log.Debug("Subscription toggled",
		slog.String("user_id", userID),
		slog.String("subscribed_to_id", targetID),
		slog.Bool("subscribed", subscribed))

	return &models.SubscriptionResult{IsSubscribed: subscribed}, nil
}

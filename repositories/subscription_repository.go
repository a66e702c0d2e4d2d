package repositories

import (
	"gorm.io/gorm"

	"photogram-api/models"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) WithTx(tx *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: tx}
}

// Toggle subscribes userID to targetID, or unsubscribes when already subscribed.
func (r *SubscriptionRepository) Toggle(userID, targetID string) (subscribed bool, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		subscribed, err = toggle(tx, &models.Subscription{},
			&models.Subscription{UserID: userID, SubscribedToID: targetID},
			"user_id = ? AND subscribed_to_id = ?", userID, targetID)
		return err
	})
	return subscribed, err
}

// SubscribedToIDs lists the users userID follows.
func (r *SubscriptionRepository) SubscribedToIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Subscription{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("subscribed_to_id", &ids).Error
	return ids, err
}

func (r *SubscriptionRepository) IsSubscribed(userID, targetID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND subscribed_to_id = ?", userID, targetID).
		Count(&count).Error
	return count > 0, err
}

// Counts returns how many users follow userID and how many userID follows.
func (r *SubscriptionRepository) Counts(userID string) (subscribers, subscriptions int64, err error) {
	if err = r.db.Model(&models.Subscription{}).Where("subscribed_to_id = ?", userID).Count(&subscribers).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.Model(&models.Subscription{}).Where("user_id = ?", userID).Count(&subscriptions).Error; err != nil {
		return 0, 0, err
	}
	return subscribers, subscriptions, nil
}

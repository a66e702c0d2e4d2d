package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"photogram-api/apperrors"
	"photogram-api/forms"
	"photogram-api/models"
	"photogram-api/policy"
	"photogram-api/repositories"
	"photogram-api/storage"
)

type ProfileService struct {
	db            *gorm.DB
	subscriptions *repositories.SubscriptionRepository
	media         storage.Storage
	log           *slog.Logger
}

func NewProfileService(db *gorm.DB, media storage.Storage, log *slog.Logger) *ProfileService {
	return &ProfileService{
		db:            db,
		subscriptions: repositories.NewSubscriptionRepository(db),
		media:         media,
		log:           log,
	}
}

// Get returns the profile of userID with the users it subscribes to.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.ProfileView, error) {
	db := s.db.WithContext(ctx)

	var profile models.Profile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err, apperrors.ErrProfileNotFound, "profile")
	}
	return s.view(db, &profile)
}

// Create adds a profile for userID. A user has at most one profile.
func (s *ProfileService) Create(ctx context.Context, userID string, form forms.ProfileForm, avatar *multipart.FileHeader) (*models.ProfileView, error) {
	db := s.db.WithContext(ctx)

	var existing int64
	if err := db.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check profile: %w", err)
	}
	if existing > 0 {
		return nil, apperrors.ErrProfileExists
	}

	profile := models.Profile{
		ID:       uuid.NewString(),
		UserID:   userID,
		FullName: form.FullName,
		Bio:      form.Bio,
	}

	file, err := s.uploadAvatar(ctx, userID, avatar)
	if err != nil {
		return nil, err
	}
	if file != nil {
		profile.Avatar = &file.URL
		profile.AvatarKey = file.Key
	}

	if err := db.Create(&profile).Error; err != nil {
		if file != nil {
			removeFiles(ctx, s.media, []storedFile{*file}, s.log)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrProfileExists
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.log.Info("Profile created", slog.String("user_id", userID))
	return s.view(db, &profile)
}

// Update edits a profile. Only its owner may do so. A new avatar replaces the old one.
func (s *ProfileService) Update(ctx context.Context, userID, profileID string, form forms.ProfileForm, avatar *multipart.FileHeader) (*models.ProfileView, error) {
	db := s.db.WithContext(ctx)

	var profile models.Profile
	if err := db.First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, notFound(err, apperrors.ErrProfileNotFound, "profile")
	}
	if err := policy.Require(policy.CanModifyProfile(userID, &profile)); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"full_name": form.FullName,
		"bio":       form.Bio,
	}

	file, err := s.uploadAvatar(ctx, userID, avatar)
	if err != nil {
		return nil, err
	}
	oldKey := profile.AvatarKey
	if file != nil {
		updates["avatar"] = file.URL
		updates["avatar_key"] = file.Key
	}

	if err := db.Model(&profile).Updates(updates).Error; err != nil {
		if file != nil {
			removeFiles(ctx, s.media, []storedFile{*file}, s.log)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if file != nil && oldKey != "" {
		removeFiles(ctx, s.media, []storedFile{{Key: oldKey}}, s.log)
	}

	if err := db.First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, notFound(err, apperrors.ErrProfileNotFound, "profile")
	}
	return s.view(db, &profile)
}

// Public returns what viewerID sees on userID's page.
func (s *ProfileService) Public(ctx context.Context, viewerID, userID string) (*models.PublicProfile, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Preload("Profile").First(&user, "id = ?", userID).Error; err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound, "user")
	}

	subs := s.subscriptions.WithTx(db)
	subscribers, subscriptions, err := subs.Counts(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	isSubscribed, err := subs.IsSubscribed(viewerID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check subscription: %w", err)
	}

	var posts int64
	if err := db.Model(&models.Post{}).Where("author_id = ?", userID).Count(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	public := &models.PublicProfile{
		User:               summarize(user),
		HasProfile:         user.Profile != nil,
		PostsCount:         posts,
		SubscribersCount:   subscribers,
		SubscriptionsCount: subscriptions,
		IsSubscribed:       isSubscribed,
	}
	if user.Profile != nil {
		public.Bio = user.Profile.Bio
	}
	return public, nil
}

func (s *ProfileService) view(db *gorm.DB, profile *models.Profile) (*models.ProfileView, error) {
	owner, err := findUser(db, profile.UserID)
	if err != nil {
		return nil, err
	}

	ids, err := s.subscriptions.WithTx(db).SubscribedToIDs(profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}

	subscriptions := make([]models.UserSummary, 0, len(ids))
	if len(ids) > 0 {
		var users []models.User
		if err := db.Preload("Profile").Where("id IN ?", ids).Find(&users).Error; err != nil {
			return nil, fmt.Errorf("failed to load subscribed users: %w", err)
		}
		byID := make(map[string]models.User, len(users))
		for _, u := range users {
			byID[u.ID] = u
		}
		for _, id := range ids {
			if u, ok := byID[id]; ok {
				subscriptions = append(subscriptions, summarize(u))
			}
		}
	}

	return &models.ProfileView{
		Profile:       *profile,
		Username:      owner.Username,
		Subscriptions: subscriptions,
	}, nil
}

func (s *ProfileService) uploadAvatar(ctx context.Context, userID string, avatar *multipart.FileHeader) (*storedFile, error) {
	if avatar == nil {
		return nil, nil
	}
	file, err := uploadFile(ctx, s.media, "avatars/"+userID, avatar)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

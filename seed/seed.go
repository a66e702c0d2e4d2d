// Package seed fills an empty database with fake users, posts and interactions
// for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"photogram-api/models"
)

// Password is shared by every seeded account.
const Password = "password123"

// Tagger attaches comma-separated tags to posts and comments inside tx.
type Tagger interface {
	TagPost(tx *gorm.DB, postID, raw string) error
	TagComment(tx *gorm.DB, commentID, raw string) error
}

type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	// Seed makes the generated data reproducible. Zero picks a random seed.
	Seed int64
}

func DefaultOptions() Options {
	return Options{
		Users:           10,
		PostsPerUser:    3,
		CommentsPerPost: 2,
	}
}

type Summary struct {
	Users         int
	Posts         int
	Comments      int
	Likes         int
	Subscriptions int
	Skipped       bool
}

// Run seeds db unless it already contains users.
func Run(ctx context.Context, db *gorm.DB, tagger Tagger, opts Options, log *slog.Logger) (Summary, error) {
	var userCount int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&userCount).Error; err != nil {
		return Summary{}, fmt.Errorf("failed to count users: %w", err)
	}
	if userCount > 0 {
		log.Info("Database already has data, skipping seed")
		return Summary{Skipped: true}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.DefaultCost)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to hash seed password: %w", err)
	}

	faker := gofakeit.New(opts.Seed)
	var summary Summary

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, err := createUsers(tx, faker, opts.Users, string(hash))
		if err != nil {
			return err
		}
		summary.Users = len(users)

		if summary.Subscriptions, err = createSubscriptions(tx, faker, users); err != nil {
			return err
		}

		for _, user := range users {
			for i := 0; i < opts.PostsPerUser; i++ {
				post, err := createPost(tx, faker, tagger, user.ID)
				if err != nil {
					return err
				}
				summary.Posts++

				for j := 0; j < opts.CommentsPerPost; j++ {
					commenter := users[faker.Number(0, len(users)-1)]
					if err := createComment(tx, faker, tagger, post.ID, commenter.ID); err != nil {
						return err
					}
					summary.Comments++
				}

				liked, err := likePost(tx, faker, post.ID, users)
				if err != nil {
					return err
				}
				summary.Likes += liked
			}
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	log.Info("Database seeded",
		slog.Int("users", summary.Users),
		slog.Int("posts", summary.Posts),
		slog.Int("comments", summary.Comments),
		slog.Int("likes", summary.Likes),
		slog.Int("subscriptions", summary.Subscriptions),
	)
	return summary, nil
}

func createUsers(tx *gorm.DB, faker *gofakeit.Faker, n int, passwordHash string) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		username := models.NormalizeUsername(fmt.Sprintf("%s%d", faker.Username(), i))
		user := models.User{
			ID:       uuid.NewString(),
			Username: username,
			Email:    username + "@example.com",
			Password: passwordHash,
		}
		if err := tx.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", username, err)
		}

		profile := models.Profile{
			ID:       uuid.NewString(),
			UserID:   user.ID,
			FullName: faker.Name(),
			Bio:      faker.Sentence(12),
		}
		if err := tx.Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to create profile for %s: %w", username, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// createSubscriptions lets every user follow a random subset of the others.
func createSubscriptions(tx *gorm.DB, faker *gofakeit.Faker, users []models.User) (int, error) {
	created := 0
	for _, user := range users {
		for _, other := range users {
			if other.ID == user.ID || !faker.Bool() {
				continue
			}
			sub := models.Subscription{UserID: user.ID, SubscribedToID: other.ID}
			if err := tx.Create(&sub).Error; err != nil {
				return 0, fmt.Errorf("failed to create subscription: %w", err)
			}
			created++
		}
	}
	return created, nil
}

func createPost(tx *gorm.DB, faker *gofakeit.Faker, tagger Tagger, authorID string) (*models.Post, error) {
	post := &models.Post{
		ID:       uuid.NewString(),
		AuthorID: authorID,
		Caption:  truncate(faker.Sentence(6), 255),
	}
	if err := tx.Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	for i := 0; i < faker.Number(1, 3); i++ {
		image := models.PostImage{
			PostID: post.ID,
			URL:    fmt.Sprintf("https://picsum.photos/seed/%s-%d/600/600", post.ID, i),
		}
		if err := tx.Create(&image).Error; err != nil {
			return nil, fmt.Errorf("failed to create post image: %w", err)
		}
	}

	if err := tagger.TagPost(tx, post.ID, randomTags(faker)); err != nil {
		return nil, err
	}
	return post, nil
}

func createComment(tx *gorm.DB, faker *gofakeit.Faker, tagger Tagger, postID, userID string) error {
	comment := models.Comment{
		ID:      uuid.NewString(),
		PostID:  postID,
		UserID:  userID,
		Content: faker.Sentence(10),
	}
	if err := tx.Create(&comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	if faker.Bool() {
		return tagger.TagComment(tx, comment.ID, randomTags(faker))
	}
	return nil
}

func likePost(tx *gorm.DB, faker *gofakeit.Faker, postID string, users []models.User) (int, error) {
	liked := 0
	for _, user := range users {
		if !faker.Bool() {
			continue
		}
		like := models.PostLike{PostID: postID, UserID: user.ID}
		if err := tx.Create(&like).Error; err != nil {
			return 0, fmt.Errorf("failed to create like: %w", err)
		}
		liked++
	}
	return liked, nil
}

func randomTags(faker *gofakeit.Faker) string {
	n := faker.Number(1, 3)
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, strings.ToLower(faker.Word()))
	}
	return strings.Join(words, ", ")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"photogram-api/apperrors"
	"photogram-api/forms"
	"photogram-api/metrics"
	"photogram-api/models"
	"photogram-api/policy"
	"photogram-api/repositories"
)

type CommentService struct {
	db      *gorm.DB
	tags    *TagService
	tagRepo *repositories.TagRepository
	likes   *repositories.LikeRepository
	log     *slog.Logger
}

func NewCommentService(db *gorm.DB, log *slog.Logger) *CommentService {
	return &CommentService{
		db:      db,
		tags:    NewTagService(db),
		tagRepo: repositories.NewTagRepository(db),
		likes:   repositories.NewLikeRepository(db),
		log:     log,
	}
}

// List returns the comments of a post, oldest first.
func (s *CommentService) List(ctx context.Context, viewerID, postID string) ([]models.CommentView, error) {
	db := s.db.WithContext(ctx)
	if _, err := findPost(db, postID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := db.Preload("User.Profile").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}

	return s.views(db, viewerID, comments)
}

func (s *CommentService) Create(ctx context.Context, userID, postID string, form forms.CommentForm) (*models.CommentView, error) {
	db := s.db.WithContext(ctx)
	if _, err := findPost(db, postID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:      uuid.NewString(),
		PostID:  postID,
		UserID:  userID,
		Content: form.Content,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		return s.tags.TagComment(tx, comment.ID, form.Tags)
	})
	if err != nil {
		return nil, err
	}

	metrics.CommentsCreatedTotal.Inc()
	s.log.Info("Comment created",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", postID),
		slog.String("user_id", userID))

	return s.get(db, userID, postID, comment.ID)
}

// Update edits the content and appends tags. Allowed for the comment author and the post author.
func (s *CommentService) Update(ctx context.Context, userID, postID, commentID string, form forms.CommentForm) (*models.CommentView, error) {
	db := s.db.WithContext(ctx)
	post, comment, err := s.authorize(db, userID, postID, commentID)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(comment).Update("content", form.Content).Error; err != nil {
			return fmt.Errorf("failed to update comment: %w", err)
		}
		return s.tags.TagComment(tx, comment.ID, form.Tags)
	})
	if err != nil {
		return nil, err
	}

	return s.get(db, userID, post.ID, comment.ID)
}

// Delete removes the comment with its tags and likes. Allowed for the comment author and the post author.
func (s *CommentService) Delete(ctx context.Context, userID, postID, commentID string) error {
	db := s.db.WithContext(ctx)
	_, comment, err := s.authorize(db, userID, postID, commentID)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", comment.ID).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", comment.ID).Delete(&models.CommentTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(comment).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.log.Info("Comment deleted", slog.String("comment_id", comment.ID), slog.String("user_id", userID))
	return nil
}

func (s *CommentService) authorize(db *gorm.DB, userID, postID, commentID string) (*models.Post, *models.Comment, error) {
	post, err := findPost(db, postID)
	if err != nil {
		return nil, nil, err
	}
	comment, err := findComment(db, postID, commentID)
	if err != nil {
		return nil, nil, err
	}
	if err := policy.Require(policy.CanModifyComment(userID, post, comment)); err != nil {
		return nil, nil, err
	}
	return post, comment, nil
}

func (s *CommentService) get(db *gorm.DB, viewerID, postID, commentID string) (*models.CommentView, error) {
	var comment models.Comment
	if err := db.Preload("User.Profile").First(&comment, "id = ? AND post_id = ?", commentID, postID).Error; err != nil {
		return nil, notFound(err, apperrors.ErrCommentNotFound, "comment")
	}

	views, err := s.views(db, viewerID, []models.Comment{comment})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *CommentService) views(db *gorm.DB, viewerID string, comments []models.Comment) ([]models.CommentView, error) {
	views := make([]models.CommentView, 0, len(comments))
	if len(comments) == 0 {
		return views, nil
	}

	ids := make([]string, 0, len(comments))
	for _, comment := range comments {
		ids = append(ids, comment.ID)
	}

	tagNames, err := s.tagRepo.WithTx(db).NamesForComments(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}

	likes := s.likes.WithTx(db)
	likeCounts, err := likes.CountCommentLikes(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	liked, err := likes.LikedComments(viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}

	for _, comment := range comments {
		views = append(views, models.CommentView{
			ID:         comment.ID,
			PostID:     comment.PostID,
			Author:     summarize(comment.User),
			Content:    comment.Content,
			Tags:       nonNil(tagNames[comment.ID]),
			LikesCount: likeCounts[comment.ID],
			IsLiked:    liked[comment.ID],
			CreatedAt:  comment.CreatedAt,
			UpdatedAt:  comment.UpdatedAt,
		})
	}
	return views, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"photogram-api/metrics"
	"photogram-api/models"
	"photogram-api/repositories"
)

type LikeService struct {
	db    *gorm.DB
	likes *repositories.LikeRepository
	log   *slog.Logger
}

func NewLikeService(db *gorm.DB, log *slog.Logger) *LikeService {
	return &LikeService{
		db:    db,
		likes: repositories.NewLikeRepository(db),
		log:   log,
	}
}

// TogglePostLike likes the post if userID has not liked it yet, otherwise removes the like.
func (s *LikeService) TogglePostLike(ctx context.Context, userID, postID string) (*models.LikeResult, error) {
	db := s.db.WithContext(ctx)
	if _, err := findPost(db, postID); err != nil {
		return nil, err
	}

	liked, count, err := s.likes.WithTx(db).TogglePostLike(postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle post like: %w", err)
	}

	metrics.LikesToggledTotal.WithLabelValues("post", metrics.State(liked, "liked", "unliked")).Inc()
	s.log.Debug("Post like toggled",
		slog.String("post_id", postID),
		slog.String("user_id", userID),
		slog.Bool("liked", liked))

	return &models.LikeResult{IsLiked: liked, LikesCount: count}, nil
}

// ToggleCommentLike does the same for a comment, which must belong to postID.
func (s *LikeService) ToggleCommentLike(ctx context.Context, userID, postID, commentID string) (*models.LikeResult, error) {
	db := s.db.WithContext(ctx)
	if _, err := findPost(db, postID); err != nil {
		return nil, err
	}
	if _, err := findComment(db, postID, commentID); err != nil {
		return nil, err
	}

	liked, count, err := s.likes.WithTx(db).ToggleCommentLike(commentID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle comment like: %w", err)
	}

	metrics.LikesToggledTotal.WithLabelValues("comment", metrics.State(liked, "liked", "unliked")).Inc()
	s.log.Debug("Comment like toggled",
		slog.String("comment_id", commentID),
		slog.String("user_id", userID),
		slog.Bool("liked", liked))

	return &models.LikeResult{IsLiked: liked, LikesCount: count}, nil
}

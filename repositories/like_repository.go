package repositories

import (
	"gorm.io/gorm"

	"photogram-api/models"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) WithTx(tx *gorm.DB) *LikeRepository {
	return &LikeRepository{db: tx}
}

// TogglePostLike flips userID's like on postID and returns the new state and total count.
func (r *LikeRepository) TogglePostLike(postID, userID string) (liked bool, count int64, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		liked, err = toggle(tx, &models.PostLike{},
			&models.PostLike{PostID: postID, UserID: userID},
			"post_id = ? AND user_id = ?", postID, userID)
		if err != nil {
			return err
		}
		return tx.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	})
	return liked, count, err
}

// ToggleCommentLike flips userID's like on commentID and returns the new state and total count.
func (r *LikeRepository) ToggleCommentLike(commentID, userID string) (liked bool, count int64, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		liked, err = toggle(tx, &models.CommentLike{},
			&models.CommentLike{CommentID: commentID, UserID: userID},
			"comment_id = ? AND user_id = ?", commentID, userID)
		if err != nil {
			return err
		}
		return tx.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error
	})
	return liked, count, err
}

type countRow struct {
	TargetID string
	Total    int64
}

// CountPostLikes returns like totals keyed by post id. Posts without likes are absent.
func (r *LikeRepository) CountPostLikes(postIDs []string) (map[string]int64, error) {
	return countBy(r.db.Model(&models.PostLike{}), "post_id", postIDs)
}

func (r *LikeRepository) CountCommentLikes(commentIDs []string) (map[string]int64, error) {
	return countBy(r.db.Model(&models.CommentLike{}), "comment_id", commentIDs)
}

// LikedPosts returns the subset of postIDs liked by userID.
func (r *LikeRepository) LikedPosts(userID string, postIDs []string) (map[string]bool, error) {
	return likedBy(r.db.Model(&models.PostLike{}), "post_id", userID, postIDs)
}

func (r *LikeRepository) LikedComments(userID string, commentIDs []string) (map[string]bool, error) {
	return likedBy(r.db.Model(&models.CommentLike{}), "comment_id", userID, commentIDs)
}

func countBy(q *gorm.DB, column string, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []countRow
	err := q.Select(column+" AS target_id, COUNT(*) AS total").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.TargetID] = row.Total
	}
	return counts, nil
}

func likedBy(q *gorm.DB, column, userID string, ids []string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if userID == "" || len(ids) == 0 {
		return liked, nil
	}

	var targets []string
	if err := q.Where("user_id = ? AND "+column+" IN ?", userID, ids).Pluck(column, &targets).Error; err != nil {
		return nil, err
	}

	for _, id := range targets {
		liked[id] = true
	}
	return liked, nil
}

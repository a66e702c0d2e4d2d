package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"mime/multipart"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"photogram-api/forms"
	"photogram-api/metrics"
	"photogram-api/models"
	"photogram-api/policy"
	"photogram-api/repositories"
	"photogram-api/storage"
)

type PostService struct {
	db            *gorm.DB
	tags          *TagService
	tagRepo       *repositories.TagRepository
	likes         *repositories.LikeRepository
	subscriptions *repositories.SubscriptionRepository
	media         storage.Storage
	log           *slog.Logger
}

func NewPostService(db *gorm.DB, media storage.Storage, log *slog.Logger) *PostService {
	return &PostService{
		db:            db,
		tags:          NewTagService(db),
		tagRepo:       repositories.NewTagRepository(db),
		likes:         repositories.NewLikeRepository(db),
		subscriptions: repositories.NewSubscriptionRepository(db),
		media:         media,
		log:           log,
	}
}

// Create stores the images first, then writes the post, its images and its tags in one transaction.
func (s *PostService) Create(ctx context.Context, userID string, form forms.PostForm, images []*multipart.FileHeader) (*models.PostView, error) {
	postID := uuid.NewString()

	files, err := uploadFiles(ctx, s.media, "posts/"+postID, images)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		ID:       postID,
		AuthorID: userID,
		Caption:  form.Caption,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		if err := addImages(tx, postID, files); err != nil {
			return err
		}
		return s.tags.TagPost(tx, postID, form.Tags)
	})
	if err != nil {
		removeFiles(ctx, s.media, files, s.log)
		return nil, err
	}

	metrics.PostsCreatedTotal.Inc()
	s.log.Info("Post created",
		slog.String("post_id", postID),
		slog.String("author_id", userID),
		slog.Int("images", len(files)))

	return s.Get(ctx, userID, postID)
}

// Update changes the caption and appends any new images and tags. Only the author may edit.
func (s *PostService) Update(ctx context.Context, userID, postID string, form forms.PostForm, images []*multipart.FileHeader) (*models.PostView, error) {
	post, err := findPost(s.db.WithContext(ctx), postID)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanModifyPost(userID, post)); err != nil {
		return nil, err
	}

	files, err := uploadFiles(ctx, s.media, "posts/"+postID, images)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(post).Update("caption", form.Caption).Error; err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}
		if err := addImages(tx, postID, files); err != nil {
			return err
		}
		return s.tags.TagPost(tx, postID, form.Tags)
	})
	if err != nil {
		removeFiles(ctx, s.media, files, s.log)
		return nil, err
	}

	return s.Get(ctx, userID, postID)
}

// Delete removes the post together with its images, tags, likes and comments. Only the author may delete.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	post, err := findPost(s.db.WithContext(ctx), postID)
	if err != nil {
		return err
	}
	if err := policy.Require(policy.CanModifyPost(userID, post)); err != nil {
		return err
	}

	var images []models.PostImage
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Find(&images).Error; err != nil {
			return err
		}

		comments := tx.Model(&models.Comment{}).Select("id").Where("post_id = ?", postID)
		steps := []struct {
			model interface{}
			query string
			arg   interface{}
		}{
			{&models.CommentLike{}, "comment_id IN (?)", comments},
			{&models.CommentTag{}, "comment_id IN (?)", comments},
			{&models.Comment{}, "post_id = ?", postID},
			{&models.PostLike{}, "post_id = ?", postID},
			{&models.PostTag{}, "post_id = ?", postID},
			{&models.PostImage{}, "post_id = ?", postID},
		}
		for _, step := range steps {
			if err := tx.Where(step.query, step.arg).Delete(step.model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(post).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	files := make([]storedFile, 0, len(images))
	for _, img := range images {
		if img.Key != "" {
			files = append(files, storedFile{Key: img.Key, URL: img.URL})
		}
	}
	removeFiles(ctx, s.media, files, s.log)

	s.log.Info("Post deleted", slog.String("post_id", postID), slog.String("author_id", userID))
	return nil
}

// Get returns one post as seen by viewerID.
func (s *PostService) Get(ctx context.Context, viewerID, postID string) (*models.PostView, error) {
	db := s.db.WithContext(ctx)
	post, err := findPost(db, postID)
	if err != nil {
		return nil, err
	}

	views, err := s.views(db, viewerID, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context, viewerID string, page, limit int) (*models.FeedResponse, error) {
	db := s.db.WithContext(ctx)
	return s.page(db, db.Model(&models.Post{}), viewerID, page, limit)
}

// Feed returns posts by the users viewerID subscribes to, newest first.
func (s *PostService) Feed(ctx context.Context, viewerID string, page, limit int) (*models.FeedResponse, error) {
	db := s.db.WithContext(ctx)

	authorIDs, err := s.subscriptions.WithTx(db).SubscribedToIDs(viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	if len(authorIDs) == 0 {
		return newFeedResponse([]models.PostView{}, page, limit, 0), nil
	}

	return s.page(db, db.Model(&models.Post{}).Where("author_id IN ?", authorIDs), viewerID, page, limit)
}

func (s *PostService) page(db, query *gorm.DB, viewerID string, page, limit int) (*models.FeedResponse, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	var posts []models.Post
	err := query.Session(&gorm.Session{}).
		Order("created_at DESC").
		Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	views, err := s.views(db, viewerID, posts)
	if err != nil {
		return nil, err
	}
	return newFeedResponse(views, page, limit, total), nil
}

// views loads authors, images, tag names and counters for posts in a fixed number of queries.
func (s *PostService) views(db *gorm.DB, viewerID string, posts []models.Post) ([]models.PostView, error) {
	views := make([]models.PostView, 0, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	ids := make([]string, 0, len(posts))
	authorIDs := make([]string, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
		authorIDs = append(authorIDs, post.AuthorID)
	}

	var authors []models.User
	if err := db.Preload("Profile").Where("id IN ?", authorIDs).Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}
	authorByID := make(map[string]models.User, len(authors))
	for _, author := range authors {
		authorByID[author.ID] = author
	}

	var images []models.PostImage
	if err := db.Where("post_id IN ?", ids).Order("id ASC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	imagesByPost := make(map[string][]string, len(posts))
	for _, img := range images {
		imagesByPost[img.PostID] = append(imagesByPost[img.PostID], img.URL)
	}

	tagNames, err := s.tagRepo.WithTx(db).NamesForPosts(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}

	likes := s.likes.WithTx(db)
	likeCounts, err := likes.CountPostLikes(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	liked, err := likes.LikedPosts(viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}

	commentCounts, err := countComments(db, ids)
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		views = append(views, models.PostView{
			ID:            post.ID,
			Caption:       post.Caption,
			Author:        summarize(authorByID[post.AuthorID]),
			Images:        nonNil(imagesByPost[post.ID]),
			Tags:          nonNil(tagNames[post.ID]),
			LikesCount:    likeCounts[post.ID],
			CommentsCount: commentCounts[post.ID],
			IsLiked:       liked[post.ID],
			CreatedAt:     post.CreatedAt,
			UpdatedAt:     post.UpdatedAt,
		})
	}
	return views, nil
}

func addImages(tx *gorm.DB, postID string, files []storedFile) error {
	if len(files) == 0 {
		return nil
	}
	images := make([]models.PostImage, 0, len(files))
	for _, file := range files {
		images = append(images, models.PostImage{PostID: postID, URL: file.URL, Key: file.Key})
	}
	if err := tx.Create(&images).Error; err != nil {
		return fmt.Errorf("failed to save post images: %w", err)
	}
	return nil
}

func countComments(db *gorm.DB, postIDs []string) (map[string]int64, error) {
	var rows []struct {
		PostID string
		Total  int64
	}
	err := db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}

func newFeedResponse(posts []models.PostView, page, limit int, total int64) *models.FeedResponse {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return &models.FeedResponse{
		Posts:      posts,
		Page:       page,
		Limit:      limit,
		Total:      total,
		HasMore:    page < totalPages,
		TotalPages: totalPages,
	}
}

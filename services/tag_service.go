package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"photogram-api/repositories"
)

type TagService struct {
	tags *repositories.TagRepository
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{
		tags: repositories.NewTagRepository(db),
	}
}

// ParseTagNames splits a comma-separated string, trims each piece and drops empty ones.
// Order and duplicates are kept.
func ParseTagNames(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// TagPost associates every tag named in raw with the post. A name that appears twice
// produces two join rows pointing at the same tag.
func (s *TagService) TagPost(tx *gorm.DB, postID, raw string) error {
	repo := s.tags.WithTx(tx)
	for _, name := range ParseTagNames(raw) {
		tag, err := repo.GetOrCreate(name)
		if err != nil {
			return fmt.Errorf("failed to get or create tag %q: %w", name, err)
		}
		if err := repo.AttachToPost(postID, tag.ID); err != nil {
			return fmt.Errorf("failed to tag post: %w", err)
		}
	}
	return nil
}

func (s *TagService) TagComment(tx *gorm.DB, commentID, raw string) error {
	repo := s.tags.WithTx(tx)
	for _, name := range ParseTagNames(raw) {
		tag, err := repo.GetOrCreate(name)
		if err != nil {
			return fmt.Errorf("failed to get or create tag %q: %w", name, err)
		}
		if err := repo.AttachToComment(commentID, tag.ID); err != nil {
			return fmt.Errorf("failed to tag comment: %w", err)
		}
	}
	return nil
}

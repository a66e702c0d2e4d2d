package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"photogram-api/models"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) WithTx(tx *gorm.DB) *TagRepository {
	return &TagRepository{db: tx}
}

// GetOrCreate returns the tag with exactly this name, creating it if needed.
func (r *TagRepository) GetOrCreate(name string) (*models.Tag, error) {
	tag := models.Tag{Name: name}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&tag).Error
	if err != nil {
		return nil, err
	}

	var stored models.Tag
	if err := r.db.Where("name = ?", name).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// AttachToPost always adds a new join row, even when the tag is already on the post.
func (r *TagRepository) AttachToPost(postID string, tagID uint) error {
	return r.db.Create(&models.PostTag{PostID: postID, TagID: tagID}).Error
}

func (r *TagRepository) AttachToComment(commentID string, tagID uint) error {
	return r.db.Create(&models.CommentTag{CommentID: commentID, TagID: tagID}).Error
}

type tagNameRow struct {
	TargetID string
	Name     string
}

// NamesForPosts returns tag names per post in join order, duplicates included.
func (r *TagRepository) NamesForPosts(postIDs []string) (map[string][]string, error) {
	return r.namesFor("post_tags", "post_id", postIDs)
}

func (r *TagRepository) NamesForComments(commentIDs []string) (map[string][]string, error) {
	return r.namesFor("comment_tags", "comment_id", commentIDs)
}

func (r *TagRepository) namesFor(table, column string, ids []string) (map[string][]string, error) {
	names := make(map[string][]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []tagNameRow
	err := r.db.Table(table).
		Select(table+"."+column+" AS target_id, tags.name AS name").
		Joins("JOIN tags ON tags.id = "+table+".tag_id").
		Where(table+"."+column+" IN ?", ids).
		Order(table + ".id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		names[row.TargetID] = append(names[row.TargetID], row.Name)
	}
	return names, nil
}

package services

import (
	"github.com/miniblog-app/miniblog/pkg/internal/database"
	"github.com/miniblog-app/miniblog/pkg/internal/models"
	"gorm.io/gorm"
)

func FilterCommentNewestFirst(tx *gorm.DB) *gorm.DB {
	return tx.Order("created_at DESC").Order("id DESC")
}

// ListComment is the global, cross-post listing.
func ListComment() ([]models.Comment, error) {
	var items []models.Comment
	if err := FilterCommentNewestFirst(database.C).
		Preload("Account").
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

func NewComment(user models.Account, postID uint, content string) (models.Comment, error) {
	item := models.Comment{
		Content:   content,
		AccountID: user.ID,
		PostID:    postID,
	}

	if err := database.C.Create(&item).Error; err != nil {
		return item, err
	}

	return item, nil
}

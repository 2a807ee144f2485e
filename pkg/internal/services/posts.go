package services

import (
	"github.com/miniblog-app/miniblog/pkg/internal/database"
	"github.com/miniblog-app/miniblog/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

func PreloadPostGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Account").
		Preload("Categories")
}

// Listings are newest first; the id breaks ties between rows created
// within the same tick.
func FilterPostNewestFirst(tx *gorm.DB) *gorm.DB {
	return tx.Order("created_at DESC").Order("id DESC")
}

func ListPost() ([]models.Post, error) {
	var items []models.Post
	if err := PreloadPostGeneral(FilterPostNewestFirst(database.C)).
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

func GetPost(id uint) (models.Post, error) {
	var item models.Post
	if err := PreloadPostGeneral(database.C).
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return FilterCommentNewestFirst(tx)
		}).
		Preload("Comments.Account").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}

	return item, nil
}

// NewPost creates a post owned by user. Category ids that do not match
// an existing category are dropped, not rejected. The post row and its
// association rows land in one transaction.
func NewPost(user models.Account, title, content string, categories []uint) (models.Post, error) {
	item := models.Post{
		Title:     title,
		Content:   content,
		Language:  DetectLanguage(content),
		AccountID: user.ID,
	}

	if len(categories) > 0 {
		var matched []models.Category
		if err := database.C.
			Where("id IN ?", lo.Uniq(categories)).
			Find(&matched).Error; err != nil {
			return item, err
		}
		item.Categories = matched
	}

	if err := database.C.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&item).Error
	}); err != nil {
		return item, err
	}

	log.Debug().Uint("post", item.ID).Uint("account", user.ID).Msg("The post is posted.")
	return item, nil
}

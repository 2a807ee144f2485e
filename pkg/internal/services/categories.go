package services

import (
	"errors"

	"github.com/miniblog-app/miniblog/pkg/internal/database"
	"github.com/miniblog-app/miniblog/pkg/internal/models"
	"gorm.io/gorm"
)

var ErrDuplicateCategory = errors.New("category name is already taken")

func ListCategory() ([]models.Category, error) {
	var categories []models.Category
	err := database.C.Order("name ASC").Find(&categories).Error

	return categories, err
}

func GetCategoryWithID(id uint) (models.Category, error) {
	var category models.Category
	if err := database.C.Where(models.Category{
		BaseModel: models.BaseModel{ID: id},
	}).First(&category).Error; err != nil {
		return category, err
	}
	return category, nil
}

func NewCategory(name string) (models.Category, error) {
	category := models.Category{
		Name: name,
	}

	if err := database.C.Create(&category).Error; err != nil {
		if isUniqueViolation(err) {
			return category, ErrDuplicateCategory
		}
		return category, err
	}

	return category, nil
}

// DeleteCategory removes the category together with its association
// rows. Nothing survives a failure halfway through.
func DeleteCategory(category models.Category) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM post_categories WHERE category_id = ?",
			category.ID,
		).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}

package models

type Category struct {
	BaseModel

	Name string `json:"name" gorm:"size:50;uniqueIndex"`
}

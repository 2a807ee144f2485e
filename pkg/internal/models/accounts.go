package models

// Account deletion is unsupported: posts and comments keep a hard
// foreign key on the author row.
type Account struct {
	BaseModel

	Name     string `json:"name" gorm:"size:50;uniqueIndex"`
	Email    string `json:"email" gorm:"size:120;uniqueIndex"`
	Password string `json:"-" gorm:"size:256"`
}

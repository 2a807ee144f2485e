package models

type Post struct {
	BaseModel

	Title    string `json:"title" gorm:"size:200"`
	Content  string `json:"content" gorm:"type:text"`
	Language string `json:"language"`

	Categories []Category `json:"categories" gorm:"many2many:post_categories"`
	Comments   []Comment  `json:"comments" gorm:"foreignKey:PostID"`

	AccountID uint    `json:"account_id"`
	Account   Account `json:"account"`
}

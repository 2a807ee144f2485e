package models

type Comment struct {
	BaseModel

	Content string `json:"content" gorm:"type:text"`

	AccountID uint    `json:"account_id"`
	Account   Account `json:"account"`
	PostID    uint    `json:"post_id"`
}

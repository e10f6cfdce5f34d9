package models

type Event struct {
	Model

	ImageURL    string `gorm:"column:image_url;not null" json:"imageUrl"` // 图床返回的持久地址
	ExternalRef string `gorm:"column:external_ref" json:"externalRef"`    // 图床的删除句柄，为空时删除记录不会调用图床
}

package models

import "time"

type Notice struct {
	Model

	Title   string    `gorm:"column:title;size:255;not null" json:"title"` // 标题，最长 255 个字符
	Content string    `gorm:"column:content;not null" json:"content"`      // 正文
	Date    time.Time `gorm:"column:date;index" json:"date"`               // 公告日期，未提供时为创建时间
}

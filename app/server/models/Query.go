package models

// 留言处理状态
const (
	QueryStatusNew        = "new"
	QueryStatusInProgress = "in-progress"
	QueryStatusResolved   = "resolved"
	QueryStatusClosed     = "closed"
)

// 留言优先级
const (
	QueryPriorityLow    = "low"
	QueryPriorityMedium = "medium"
	QueryPriorityHigh   = "high"
	QueryPriorityUrgent = "urgent"
)

// Query 是前台联系表单提交的留言
type Query struct {
	Model

	Name    string `gorm:"column:name;not null" json:"name"`
	Email   string `gorm:"column:email;not null" json:"email"`
	Subject string `gorm:"column:subject;not null" json:"subject"`
	Message string `gorm:"column:message;not null" json:"message"`

	Status     string `gorm:"column:status;default:new" json:"status"`
	Priority   string `gorm:"column:priority;default:medium" json:"priority"`
	AdminNotes string `gorm:"column:admin_notes" json:"adminNotes"`
}

package handlers

import (
	"college-portal/app/server/models"
	"time"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type ErrorMessage struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessMessage struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type DataResponse[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
}

type ListResponse[T any] struct {
	Status  string `json:"status"`
	Data    []T    `json:"data"`
	Total   int64  `json:"total"`
	PageMax *int64 `json:"pageMax,omitempty"` // 只有分页时返回
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginUser struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type MeResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"isAdmin"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type PasswordUpdateRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type NoticeCreateRequest struct {
	Title   string  `json:"title" validate:"required,max=255"`
	Content string  `json:"content" validate:"required"`
	Date    *string `json:"date"`
}

type NoticeUpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Date    *string `json:"date"`
}

type QueryCreateRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Subject  string `json:"subject" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

type QueryUpdateRequest struct {
	Status     *string `json:"status"`
	Priority   *string `json:"priority"`
	AdminNotes *string `json:"adminNotes"`
}

type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

var (
	queryStatuses = map[string]bool{
		models.QueryStatusNew:        true,
		models.QueryStatusInProgress: true,
		models.QueryStatusResolved:   true,
		models.QueryStatusClosed:     true,
	}
	queryPriorities = map[string]bool{
		models.QueryPriorityLow:    true,
		models.QueryPriorityMedium: true,
		models.QueryPriorityHigh:   true,
		models.QueryPriorityUrgent: true,
	}
)

package models

import (
	"fmt"
	"github.com/alexedwards/argon2id"
	"gorm.io/gorm"
)

type Account struct {
	Model

	Username string `gorm:"column:username;uniqueIndex;not null" json:"username"` // 用户名，全局唯一
	IsAdmin  bool   `gorm:"column:is_admin" json:"isAdmin"`                       // 是否为管理员：只有管理员可以修改内容

	Password string `gorm:"column:password;not null" json:"-"` // 密码，只保存 argon2id hash

	plainPassword string // 等待写入的明文密码，不落库
}

// SetPassword 记录新的明文密码，保存时由 BeforeSave 换成 hash
func (a *Account) SetPassword(password string) {
	a.plainPassword = password
}

// BeforeSave 只处理通过 SetPassword 设置的明文，不根据 Password 的内容猜测
func (a *Account) BeforeSave(_ *gorm.DB) error {
	if a.plainPassword == "" {
		return nil
	}

	hash, err := argon2id.CreateHash(a.plainPassword, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	a.Password = hash
	a.plainPassword = ""

	return nil
}

// CheckPassword 校验明文密码
func (a *Account) CheckPassword(password string) (bool, error) {
	match, _, err := argon2id.CheckHash(password, a.Password)
	return match, err
}

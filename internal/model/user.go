package model

import "time"

// User 用户（身份认证由外部系统负责，这里只消费其稳定 ID）
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Username  string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email     string    `gorm:"type:varchar(200);uniqueIndex;not null"`
	FullName  string    `gorm:"type:varchar(200)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名
func (User) TableName() string { return "users" }

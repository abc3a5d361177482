package model

import "time"

// 内置系统账号。
const (
	AdminUsername = "admin"
	APIUsername   = "api_user"
)

// User 对应数据库中的 'users' 表，是认证链解析出的本地身份。
// 第三方认证通过的用户会按用户名惰性创建。
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"type:varchar(191);uniqueIndex;not null" json:"username"`
	Password  string     `gorm:"type:varchar(191)" json:"-"`
	Role      string     `gorm:"type:varchar(32);default:USER" json:"role"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (User) TableName() string {
	return "users"
}

package models

type User struct {
	BaseUUIDModel
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"type:varchar(100);not null"             json:"-"`
	DisplayName  string `gorm:"type:varchar(200)"                      json:"displayName"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the cache-backed record behind a reviewer's bearer token.
type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

package models

// AdminUser - учетная запись админки. Публичной регистрации нет, первый админ создается из конфига.
type AdminUser struct {
	BaseModel
	Email        string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
}

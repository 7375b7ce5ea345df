package model

import "golang.org/x/crypto/bcrypt"

// Owner is the root tenant. Brands and staff carry its ID.
type Owner struct {
	BaseModel
	Name              string `gorm:"type:varchar(255);not null" json:"name"`
	Email             string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password          string `gorm:"type:varchar(255);not null" json:"-"`
	Phone             string `gorm:"type:varchar(20)" json:"phone"`
	IsPasswordChanged bool   `gorm:"not null;default:false" json:"is_password_changed"`
	Status            string `gorm:"type:varchar(20);not null;default:active" json:"status"`
}

// SetPassword hashes and sets the owner's password
func (o *Owner) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	o.Password = string(hashed)
	return nil
}

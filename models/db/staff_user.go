package dbmodels

import (
	"fmt"
	"strings"

	"crewing-backend/models"
)

type StaffUser struct {
	BaseModel
	FirstName string `gorm:"type:varchar(255)"`
	LastName  string `gorm:"type:varchar(255)"`
	Email     string `gorm:"type:varchar(255);index"`
	Phone     string `gorm:"type:varchar(255)"`
	Role      models.UserRole `gorm:"type:varchar(100)"`
}

func (u StaffUser) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%v %v", u.FirstName, u.LastName))
}

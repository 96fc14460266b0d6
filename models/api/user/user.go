package userapimodels

import (
	"strings"

	"github.com/pkg/errors"
	"refdesk-backend/models"
)

type UserData struct {
	Email       string          `json:"email"`
	Password    string          `json:"password,omitempty"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Designation string          `json:"designation"`
	Role        models.UserRole `json:"role"`
}

func (r UserData) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if strings.TrimSpace(r.FirstName) == "" {
		return errors.New("first name is required")
	}
	switch r.Role {
	case models.AdminRole, models.DistributorRole, models.StaffRole:
	default:
		return errors.Errorf("unknown role (%v)", r.Role)
	}
	return nil
}

type UserView struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	FullName    string          `json:"full_name"`
	Designation string          `json:"designation"`
	Role        models.UserRole `json:"role"`
	RoleName    string          `json:"role_name"`
	IsActive    bool            `json:"is_active"`
}

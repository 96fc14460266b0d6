package userapimodels

import (
	dbmodels "refdesk-backend/models/db"
)

func UserConvert(rec dbmodels.User) UserView {
	return UserView{
		ID:          rec.ID,
		Email:       rec.Email,
		FirstName:   rec.FirstName,
		LastName:    rec.LastName,
		FullName:    rec.GetFullName(),
		Designation: rec.Designation,
		Role:        rec.Role,
		RoleName:    rec.Role.ToHuman(),
		IsActive:    rec.IsActive,
	}
}

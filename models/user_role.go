package models

type UserRole string

const (
	AdminRole       UserRole = "ADMIN_ROLE"
	DistributorRole UserRole = "DISTRIBUTOR_ROLE"
	StaffRole       UserRole = "STAFF_ROLE"
)

var roleHumanName = map[UserRole]string{
	AdminRole:       "Administrator",
	DistributorRole: "Distributor",
	StaffRole:       "Staff member",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == AdminRole
}

const SystemUser = "System"

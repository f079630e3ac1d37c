package models

type UserRole string

const (
	StaffingRole UserRole = "STAFFING_ROLE"
	ManagerRole  UserRole = "MANAGER_ROLE"
	AdminRole    UserRole = "ADMIN_ROLE"
)

var roleHumanName = map[UserRole]string{
	StaffingRole: "Staffing officer",
	ManagerRole:  "Crewing manager",
	AdminRole:    "Administrator",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

const SystemUser = "System"

package models

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleWorker UserRole = "worker"
)

var roleHumanName = map[UserRole]string{
	UserRoleAdmin:  "Administrator",
	UserRoleWorker: "Worker",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

func (r UserRole) IsWorker() bool {
	return r == UserRoleWorker
}

func (r UserRole) IsValid() bool {
	_, ok := roleHumanName[r]
	return ok
}

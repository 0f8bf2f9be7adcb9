package domain

// Permission is a named capability attached to permission groups.
type Permission struct {
	ID       int64
	Codename string
	Name     string
}

// PermissionGroup is a named role. Groups are managed outside the API and
// are read-only here.
type PermissionGroup struct {
	ID          int64
	Role        string
	Permissions []Permission

	// Users is populated by expanded reads only.
	Users []User
}

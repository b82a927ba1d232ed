package entity

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleTechnician Role = "technician"
	RoleViewer     Role = "viewer"
)

// Roles is the fixed set of known roles, most privileged first.
var Roles = []Role{RoleAdmin, RoleManager, RoleTechnician, RoleViewer}

func (r Role) IsValid() bool {
	for _, known := range Roles {
		if known == r {
			return true
		}
	}
	return false
}

type Permission string

const (
	PermissionCreate Permission = "create"
	PermissionRead   Permission = "read"
	PermissionUpdate Permission = "update"
	PermissionDelete Permission = "delete"
)

var Permissions = []Permission{PermissionCreate, PermissionRead, PermissionUpdate, PermissionDelete}

func (p Permission) IsValid() bool {
	switch p {
	case PermissionCreate, PermissionRead, PermissionUpdate, PermissionDelete:
		return true
	}
	return false
}

// AccessControlEntry is the CRUD permission quad of one role.
type AccessControlEntry struct {
	Create bool
	Read   bool
	Update bool
	Delete bool
}

func (e AccessControlEntry) Get(p Permission) bool {
	switch p {
	case PermissionCreate:
		return e.Create
	case PermissionRead:
		return e.Read
	case PermissionUpdate:
		return e.Update
	case PermissionDelete:
		return e.Delete
	}
	return false
}

func (e *AccessControlEntry) Set(p Permission, value bool) {
	switch p {
	case PermissionCreate:
		e.Create = value
	case PermissionRead:
		e.Read = value
	case PermissionUpdate:
		e.Update = value
	case PermissionDelete:
		e.Delete = value
	}
}

// AccessControls maps each role to its permissions.
type AccessControls map[Role]AccessControlEntry

// DefaultAccessControls grants admin everything and every other role read-only access.
func DefaultAccessControls() AccessControls {
	acl := make(AccessControls, len(Roles))
	for _, role := range Roles {
		if role == RoleAdmin {
			acl[role] = AccessControlEntry{Create: true, Read: true, Update: true, Delete: true}
			continue
		}
		acl[role] = AccessControlEntry{Read: true}
	}
	return acl
}

func (a AccessControls) Clone() AccessControls {
	if a == nil {
		return nil
	}
	out := make(AccessControls, len(a))
	for role, entry := range a {
		out[role] = entry
	}
	return out
}

// Allows reports whether role holds permission. Roles without an entry hold nothing.
func (a AccessControls) Allows(role Role, p Permission) bool {
	entry, ok := a[role]
	if !ok {
		return false
	}
	return entry.Get(p)
}

package authz

// DynamicServerPermission is the claim type checked by the authorization
// middleware for dynamically secured routes. DynamicClientPermission is the
// claim type of the permissions token handed to the client UI; it is not a
// security boundary.
const (
	DynamicServerPermission = "DynamicServerPermission"
	DynamicClientPermission = "DynamicClientPermission"
)

// Admin bypasses dynamic permission checks entirely.
const RoleAdmin = "Admin"

// Permission is a tagged (type, value) pair identifying one dynamic grant.
// Call sites build them through the constructors below instead of passing
// free-form strings around.
type Permission struct {
	Type  string
	Value string
}

func (p Permission) String() string { return p.Type + ":" + p.Value }

// ServerPermission tags value as a server-side dynamic permission.
func ServerPermission(value string) Permission {
	return Permission{Type: DynamicServerPermission, Value: value}
}

// Dynamic permission values, one per secured action group.
const (
	UsersView   = "users:view"
	UsersCreate = "users:create"
	UsersUpdate = "users:update"
	UsersDelete = "users:delete"

	RolesView   = "roles:view"
	RolesManage = "roles:manage"

	ClaimsManage = "claims:manage"

	MessagesView = "messages:view"
	MessagesSend = "messages:send"

	SupportView    = "support:view"
	SupportRespond = "support:respond"

	FoldersManage = "folders:manage"
	FilesUpload   = "files:upload"
	FilesView     = "files:view"

	ContentsView   = "contents:view"
	ContentsManage = "contents:manage"

	ReportsView = "reports:view"
)

// AllPermissionValues lists every assignable dynamic permission value, used
// by the claims admin UI and the seeder.
func AllPermissionValues() []string {
	return []string{
		UsersView, UsersCreate, UsersUpdate, UsersDelete,
		RolesView, RolesManage,
		ClaimsManage,
		MessagesView, MessagesSend,
		SupportView, SupportRespond,
		FoldersManage, FilesUpload, FilesView,
		ContentsView, ContentsManage,
		ReportsView,
	}
}

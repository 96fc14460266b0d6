package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	UsersModule         Module = "USERS"
	TemplatesModule     Module = "TEMPLATES"
	WorkflowModule      Module = "WORKFLOW"
	ReferencesModule    Module = "REFERENCES"
	SettingsModule      Module = "SETTINGS"
	NotificationsModule Module = "NOTIFICATIONS"
	AuditModule         Module = "AUDIT"
	ExportModule        Module = "EXPORT"
)

type Permission string

const (
	ViewPermission   Permission = "VIEW"
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ManagePermission Permission = "MANAGE"
	FlowPermission   Permission = "FLOW"
)

package rbac

import (
	"refdesk-backend/models"
)

var (
	AdminRoleSet            = []models.UserRole{models.AdminRole}
	AdminDistributorRoleSet = []models.UserRole{models.AdminRole, models.DistributorRole}
	AllRoles                = []models.UserRole{models.AdminRole, models.DistributorRole, models.StaffRole}
)

func (i *impl) initRules() {
	i.addUsersRbac()
	i.addTemplateRbac()
	i.addWorkflowRbac()
	i.addReferenceRbac()
	i.addNotificationRbac()
	i.addSettingsRbac()
	i.addAuditRbac()
	i.addAttachmentRbac()
	i.addExportRbac()
}

func (i *impl) addUsersRbac() {
	//VIEW
	i.RegisterRule(models.UsersModule, models.ViewPermission, AllRoles, "/api/v1/users/list [get]", nil)
	i.RegisterRule(models.UsersModule, models.ViewPermission, AllRoles, "/api/v1/users/permissions [get]", nil)
	i.RegisterRule(models.UsersModule, models.ViewPermission, AllRoles, "/api/v1/users/{id} [get]", nil)
	//MANAGE
	i.RegisterRule(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users [post]", nil)
	i.RegisterRule(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users/{id} [put]", nil)
	i.RegisterRule(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users/{id} [delete]", nil)
}

func (i *impl) addTemplateRbac() {
	//VIEW
	i.RegisterRule(models.TemplatesModule, models.ViewPermission, AllRoles, "/api/v1/template/list [post]", nil)
	i.RegisterRule(models.TemplatesModule, models.ViewPermission, AllRoles, "/api/v1/template/{id} [get]", nil)
	//CREATE/EDIT
	i.RegisterRule(models.TemplatesModule, models.CreatePermission, AdminDistributorRoleSet, "/api/v1/template [post]", nil)
	i.RegisterRule(models.TemplatesModule, models.CreatePermission, AdminDistributorRoleSet, "/api/v1/template/{id}/clone [post]", nil)
	i.RegisterRule(models.TemplatesModule, models.EditPermission, AdminDistributorRoleSet, "/api/v1/template/{id} [put]", nil)
	i.RegisterRule(models.TemplatesModule, models.EditPermission, AdminDistributorRoleSet, "/api/v1/template/{id} [delete]", nil)
	//MANAGE
	i.RegisterRule(models.TemplatesModule, models.ManagePermission, AdminDistributorRoleSet, "/api/v1/template/{id}/share [post]", nil)
}

func (i *impl) addWorkflowRbac() {
	//VIEW
	i.RegisterRule(models.WorkflowModule, models.ViewPermission, AllRoles, "/api/v1/workflow/inbox [post]", nil)
	i.RegisterRule(models.WorkflowModule, models.ViewPermission, AllRoles, "/api/v1/workflow/sent [post]", nil)
	i.RegisterRule(models.WorkflowModule, models.ViewPermission, AllRoles, "/api/v1/workflow/chain/{id} [get]", nil)
	i.RegisterRule(models.WorkflowModule, models.ViewPermission, AllRoles, "/api/v1/workflow/submission/{id} [get]", nil)
	//FLOW
	i.RegisterRule(models.WorkflowModule, models.FlowPermission, AllRoles, "/api/v1/workflow/draft [post]", nil)
	i.RegisterRule(models.WorkflowModule, models.FlowPermission, AllRoles, "/api/v1/workflow/delegate [post]", nil)
	i.RegisterRule(models.WorkflowModule, models.FlowPermission, AllRoles, "/api/v1/workflow/mark-back [post]", nil)
	i.RegisterRule(models.WorkflowModule, models.FlowPermission, AllRoles, "/api/v1/workflow/approve [post]", nil)
	i.RegisterRule(models.WorkflowModule, models.FlowPermission, AllRoles, "/api/v1/workflow/mark-final [post]", nil)
	i.RegisterRule(models.WorkflowModule, models.FlowPermission, AllRoles, "/api/v1/workflow/submit-distributor [post]", nil)
	i.RegisterRule(models.WorkflowModule, models.EditPermission, AllRoles, "/api/v1/workflow/{id}/read [put]", nil)
}

func (i *impl) addReferenceRbac() {
	//VIEW
	i.RegisterRule(models.ReferencesModule, models.ViewPermission, AllRoles, "/api/v1/reference/list [post]", nil)
	i.RegisterRule(models.ReferencesModule, models.ViewPermission, AllRoles, "/api/v1/reference/{id} [get]", nil)
	//CREATE/EDIT
	i.RegisterRule(models.ReferencesModule, models.CreatePermission, AllRoles, "/api/v1/reference [post]", nil)
	i.RegisterRule(models.ReferencesModule, models.EditPermission, AllRoles, "/api/v1/reference/{id} [put]", nil)
	i.RegisterRule(models.ReferencesModule, models.EditPermission, AllRoles, "/api/v1/reference/{id}/move [put]", nil)
	i.RegisterRule(models.ReferencesModule, models.EditPermission, AllRoles, "/api/v1/reference/{id}/close [put]", nil)
	//MANAGE
	i.RegisterRule(models.ReferencesModule, models.ManagePermission, AdminRoleSet, "/api/v1/reference/{id} [delete]", nil)
}

func (i *impl) addNotificationRbac() {
	i.RegisterRule(models.NotificationsModule, models.ViewPermission, AllRoles, "/api/v1/notification/list [post]", nil)
	i.RegisterRule(models.NotificationsModule, models.ViewPermission, AllRoles, "/api/v1/notification/unread-count [get]", nil)
	i.RegisterRule(models.NotificationsModule, models.EditPermission, AllRoles, "/api/v1/notification/{id}/read [put]", nil)
	i.RegisterRule(models.NotificationsModule, models.EditPermission, AllRoles, "/api/v1/notification/read-all [put]", nil)
}

func (i *impl) addSettingsRbac() {
	i.RegisterRule(models.SettingsModule, models.ViewPermission, AdminRoleSet, "/api/v1/settings [get]", nil)
	i.RegisterRule(models.SettingsModule, models.ManagePermission, AdminRoleSet, "/api/v1/settings/{code} [put]", nil)
}

func (i *impl) addAuditRbac() {
	i.RegisterRule(models.AuditModule, models.ViewPermission, AdminRoleSet, "/api/v1/audit/list [post]", nil)
}

func (i *impl) addAttachmentRbac() {
	i.RegisterRule(models.WorkflowModule, models.ViewPermission, AllRoles, "/api/v1/attachment/{id} [get]", nil)
	i.RegisterRule(models.WorkflowModule, models.ViewPermission, AllRoles, "/api/v1/attachment/list/{owner_type}/{owner_id} [get]", nil)
	i.RegisterRule(models.WorkflowModule, models.EditPermission, AllRoles, "/api/v1/attachment/{owner_type}/{owner_id} [post]", nil)
	i.RegisterRule(models.WorkflowModule, models.EditPermission, AllRoles, "/api/v1/attachment/{id} [delete]", nil)
}

func (i *impl) addExportRbac() {
	i.RegisterRule(models.ExportModule, models.ViewPermission, AllRoles, "/api/v1/export/references.xlsx [get]", nil)
	i.RegisterRule(models.ExportModule, models.ViewPermission, AdminDistributorRoleSet, "/api/v1/export/template/{id}/submissions.xlsx [get]", nil)
	i.RegisterRule(models.ExportModule, models.ViewPermission, AllRoles, "/api/v1/export/submission/{id}/receipt.pdf [get]", nil)
}

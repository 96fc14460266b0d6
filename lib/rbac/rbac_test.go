package rbac

import (
	"testing"

	"refdesk-backend/models"

	"github.com/stretchr/testify/require"
)

func TestRbac(t *testing.T) {
	t.Run(`pathToRegex check`, func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/workflow/{id}/read [put]")
		require.Nil(t, err)
		require.Equal(t, PUT, method)
		r1 := pathToRegex(path)

		validUri := "/api/v1/workflow/123-321/read"
		isMatch := r1.MatchString(validUri)
		require.Equal(t, true, isMatch)

		invalidUri := "/api/v1/workflow/read"
		isMatch = r1.MatchString(invalidUri)
		require.Equal(t, false, isMatch)

		path, method, err = parseSwaggerPattern("/api/v1/attachment/{owner_type}/{owner_id} [post]")
		require.Nil(t, err)
		require.Equal(t, POST, method)
		r2 := pathToRegex(path)

		validUri = "/api/v1/attachment/assignment/qwe-ewr123-wr-12"
		isMatch = r2.MatchString(validUri)
		require.Equal(t, true, isMatch)

		invalidUri = "/api/v1/attachment/assignment"
		isMatch = r2.MatchString(invalidUri)
		require.Equal(t, false, isMatch)
	})

	t.Run(`rule lookup by role`, func(t *testing.T) {
		i := &impl{
			rules:       map[HTTPMethod]*PathRule{},
			permissions: map[models.UserRole]map[models.Module][]models.Permission{},
		}
		err := i.RegisterRule(models.ReferencesModule, models.ManagePermission, AdminRoleSet, "/api/v1/reference/{id} [delete]", nil)
		require.Nil(t, err)

		handler, found := i.GetRuleFunc("DELETE", "/api/v1/reference/abc-123")
		require.True(t, found)
		require.True(t, handler("user-1", models.AdminRole, "/api/v1/reference/abc-123"))
		require.False(t, handler("user-2", models.StaffRole, "/api/v1/reference/abc-123"))

		_, found = i.GetRuleFunc("GET", "/api/v1/reference/abc-123")
		require.False(t, found)

		permissions := i.GetPermissions(models.AdminRole)
		require.Contains(t, permissions[models.ReferencesModule], models.ManagePermission)
		require.Empty(t, i.GetPermissions(models.StaffRole))
	})
}

package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSettingsSnapshot(t *testing.T) {
	t.Run(`defaults apply on an empty map`, func(t *testing.T) {
		snapshot := ParseSettingsSnapshot(map[SystemSettingCode]string{})
		require.Empty(t, snapshot.ApprovalDesignations)
		require.False(t, snapshot.AllowChainRedelegation)
		require.False(t, snapshot.EmailEnabled)
		require.Equal(t, 90, snapshot.ArchiveAfterDays)
		require.Equal(t, 365, snapshot.PurgeAfterDays)
	})

	t.Run(`values are parsed`, func(t *testing.T) {
		snapshot := ParseSettingsSnapshot(map[SystemSettingCode]string{
			ApprovalDesignationsSetting:   "Director, Deputy Director, ,Registrar",
			AllowChainRedelegationSetting: "true",
			ReferenceArchiveAfterSetting:  "30",
			ReferencePurgeAfterSetting:    "180",
			NotificationEmailSetting:      "true",
			NotificationSenderSetting:     "noreply@refdesk.local",
		})
		require.Equal(t, []string{"Director", "Deputy Director", "Registrar"}, snapshot.ApprovalDesignations)
		require.True(t, snapshot.AllowChainRedelegation)
		require.True(t, snapshot.EmailEnabled)
		require.Equal(t, 30, snapshot.ArchiveAfterDays)
		require.Equal(t, 180, snapshot.PurgeAfterDays)
		require.Equal(t, "noreply@refdesk.local", snapshot.SenderEmail)
	})

	t.Run(`bad values fall back`, func(t *testing.T) {
		snapshot := ParseSettingsSnapshot(map[SystemSettingCode]string{
			AllowChainRedelegationSetting: "sometimes",
			ReferenceArchiveAfterSetting:  "-5",
			ReferencePurgeAfterSetting:    "none",
		})
		require.False(t, snapshot.AllowChainRedelegation)
		require.Equal(t, 90, snapshot.ArchiveAfterDays)
		require.Equal(t, 365, snapshot.PurgeAfterDays)
	})
}

func TestHasApprovalAuthority(t *testing.T) {
	snapshot := SettingsSnapshot{ApprovalDesignations: []string{"Director", " Deputy Director "}}

	require.True(t, snapshot.HasApprovalAuthority("director"))
	require.True(t, snapshot.HasApprovalAuthority("DEPUTY DIRECTOR"))
	require.False(t, snapshot.HasApprovalAuthority("Clerk"))
	require.False(t, snapshot.HasApprovalAuthority(""))
}

package models

import (
	"strconv"
	"strings"
)

type SystemSettingCode string

const (
	ApprovalDesignationsSetting   SystemSettingCode = "approval_designations"    // designations allowed to approve/finalize forms
	AllowChainRedelegationSetting SystemSettingCode = "allow_chain_redelegation" // whether delegating back to an earlier chain member is legal
	ReferenceArchiveAfterSetting  SystemSettingCode = "reference_archive_after_days"
	ReferencePurgeAfterSetting    SystemSettingCode = "reference_purge_after_days"
	NotificationEmailSetting      SystemSettingCode = "notification_email_enabled"
	NotificationSenderSetting     SystemSettingCode = "notification_sender_email"
)

// SettingsSnapshot is an immutable view of the system configuration, loaded once
// per request so that permission checks do not race with settings updates.
type SettingsSnapshot struct {
	ApprovalDesignations   []string
	AllowChainRedelegation bool
	ArchiveAfterDays       int
	PurgeAfterDays         int
	EmailEnabled           bool
	SenderEmail            string
}

func (s SettingsSnapshot) HasApprovalAuthority(designation string) bool {
	designation = strings.TrimSpace(strings.ToLower(designation))
	if designation == "" {
		return false
	}
	for _, allowed := range s.ApprovalDesignations {
		if strings.TrimSpace(strings.ToLower(allowed)) == designation {
			return true
		}
	}
	return false
}

func ParseSettingsSnapshot(values map[SystemSettingCode]string) SettingsSnapshot {
	snapshot := SettingsSnapshot{
		ArchiveAfterDays: 90,
		PurgeAfterDays:   365,
	}
	if list, ok := values[ApprovalDesignationsSetting]; ok && list != "" {
		for _, designation := range strings.Split(list, ",") {
			designation = strings.TrimSpace(designation)
			if designation != "" {
				snapshot.ApprovalDesignations = append(snapshot.ApprovalDesignations, designation)
			}
		}
	}
	snapshot.AllowChainRedelegation = parseBoolSetting(values[AllowChainRedelegationSetting], false)
	snapshot.EmailEnabled = parseBoolSetting(values[NotificationEmailSetting], false)
	snapshot.SenderEmail = values[NotificationSenderSetting]
	if days, err := strconv.Atoi(values[ReferenceArchiveAfterSetting]); err == nil && days > 0 {
		snapshot.ArchiveAfterDays = days
	}
	if days, err := strconv.Atoi(values[ReferencePurgeAfterSetting]); err == nil && days > 0 {
		snapshot.PurgeAfterDays = days
	}
	return snapshot
}

func parseBoolSetting(value string, fallback bool) bool {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

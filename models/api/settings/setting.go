package settingsapimodels

import (
	"github.com/pkg/errors"
	"refdesk-backend/models"
)

type SystemSettingView struct {
	ID    string                   `json:"id"`
	Name  string                   `json:"name"`
	Code  models.SystemSettingCode `json:"code"`
	Value string                   `json:"value"`
}

type SystemSettingUpdate struct {
	Code  models.SystemSettingCode `json:"code"`
	Value string                   `json:"value"`
}

func (r SystemSettingUpdate) Validate() error {
	if r.Code == "" {
		return errors.New("setting code is required")
	}
	return nil
}

package notificationapimodels

import (
	"time"

	"refdesk-backend/models"
	apimodels "refdesk-backend/models/api"
	dbmodels "refdesk-backend/models/db"
)

type NotificationFilter struct {
	OnlyUnread bool `json:"only_unread,omitempty"`
	apimodels.Pagination
}

type NotificationView struct {
	ID        string                  `json:"id"`
	Code      models.NotificationCode `json:"code"`
	Title     string                  `json:"title"`
	Body      string                  `json:"body,omitempty"`
	RefID     string                  `json:"ref_id,omitempty"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

func NotificationConvert(rec dbmodels.Notification) NotificationView {
	return NotificationView{
		ID:        rec.ID,
		Code:      rec.Code,
		Title:     rec.Title,
		Body:      rec.Body,
		RefID:     rec.RefID,
		IsRead:    rec.IsRead,
		CreatedAt: rec.CreatedAt,
	}
}

package notificationhandler

import (
	log "github.com/sirupsen/logrus"
	"refdesk-backend/db"
	notificationstore "refdesk-backend/lib/notification/store"
	settingshandler "refdesk-backend/lib/settings"
	"refdesk-backend/lib/smtp"
	usersstore "refdesk-backend/lib/users/store"
	"refdesk-backend/models"
	notificationapimodels "refdesk-backend/models/api/notification"
	dbmodels "refdesk-backend/models/db"
)

type Provider interface {
	// Send is fire-and-forget: failures are logged, never propagated, so a
	// failed notification can not roll back the operation that produced it.
	Send(userID string, code models.NotificationCode, title, body, refID string)
	List(userID string, onlyUnread bool, page, limit int) ([]notificationapimodels.NotificationView, error)
	UnreadCount(userID string) (int64, error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     notificationstore.NewInstance(db.DB),
		userStore: usersstore.NewInstance(db.DB),
		settings:  settingshandler.Instance,
	}
}

type impl struct {
	store     notificationstore.Provider
	userStore usersstore.Provider
	settings  settingshandler.Provider
}

func (i impl) getLogger(userID string, code models.NotificationCode) *log.Entry {
	return log.
		WithField("user_id", userID).
		WithField("event_code", code)
}

func (i impl) Send(userID string, code models.NotificationCode, title, body, refID string) {
	logger := i.getLogger(userID, code)
	rec := dbmodels.Notification{
		UserID: userID,
		Code:   code,
		Title:  title,
		Body:   body,
		RefID:  refID,
	}
	if _, err := i.store.Create(rec); err != nil {
		logger.WithError(err).Error("failed to store notification")
		return
	}
	i.sendEmail(userID, title, body)
}

func (i impl) sendEmail(userID, title, body string) {
	logger := log.WithField("user_id", userID)
	snapshot, err := i.settings.Snapshot()
	if err != nil {
		return
	}
	if !snapshot.EmailEnabled || snapshot.SenderEmail == "" {
		return
	}
	user, err := i.userStore.GetByID(userID)
	if err != nil {
		logger.WithError(err).Error("failed to load notification recipient")
		return
	}
	if user == nil || user.Email == "" {
		return
	}
	if err := smtp.Instance.SendEMail(snapshot.SenderEmail, user.Email, body, title); err != nil {
		logger.WithError(err).Error("failed to send notification email")
	}
}

func (i impl) List(userID string, onlyUnread bool, page, limit int) ([]notificationapimodels.NotificationView, error) {
	recList, err := i.store.List(userID, onlyUnread, page, limit)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("failed to list notifications")
		return nil, err
	}
	result := make([]notificationapimodels.NotificationView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, notificationapimodels.NotificationConvert(rec))
	}
	return result, nil
}

func (i impl) UnreadCount(userID string) (int64, error) {
	return i.store.UnreadCount(userID)
}

func (i impl) MarkRead(userID, id string) error {
	return i.store.MarkRead(userID, id)
}

func (i impl) MarkAllRead(userID string) error {
	return i.store.MarkAllRead(userID)
}

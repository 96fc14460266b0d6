package usershandler

import (
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"refdesk-backend/db"
	usersstore "refdesk-backend/lib/users/store"
	"refdesk-backend/models"
	userapimodels "refdesk-backend/models/api/user"
	dbmodels "refdesk-backend/models/db"
)

type Provider interface {
	Create(data userapimodels.UserData) (id string, err error)
	GetByID(id string) (userapimodels.UserView, error)
	Update(id string, data userapimodels.UserData) error
	Deactivate(id string) error
	List() ([]userapimodels.UserView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store usersstore.Provider
}

func (i impl) Create(data userapimodels.UserData) (id string, err error) {
	logger := log.WithField("email", data.Email)
	exist, err := i.store.ExistByEmail(data.Email)
	if err != nil {
		logger.WithError(err).Error("failed to check user email")
		return "", err
	}
	if exist {
		return "", models.NewConflictError("a user with this email already exists")
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.WithError(err).Error("failed to hash password")
		return "", err
	}
	rec := dbmodels.User{
		Email:        data.Email,
		PasswordHash: string(passwordHash),
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Designation:  data.Designation,
		Role:         data.Role,
		IsActive:     true,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("failed to create user")
		return "", err
	}
	logger.WithField("rec_id", id).Info("user created")
	return id, nil
}

func (i impl) GetByID(id string) (userapimodels.UserView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	if rec == nil {
		return userapimodels.UserView{}, models.NewNotFoundError("user not found")
	}
	return userapimodels.UserConvert(*rec), nil
}

func (i impl) Update(id string, data userapimodels.UserData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.NewNotFoundError("user not found")
	}
	updMap := map[string]interface{}{
		"email":       data.Email,
		"first_name":  data.FirstName,
		"last_name":   data.LastName,
		"designation": data.Designation,
		"role":        data.Role,
	}
	if data.Password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		updMap["password_hash"] = string(passwordHash)
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		log.WithField("rec_id", id).WithError(err).Error("failed to update user")
		return err
	}
	log.WithField("rec_id", id).Info("user updated")
	return nil
}

func (i impl) Deactivate(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.NewNotFoundError("user not found")
	}
	err = i.store.Update(id, map[string]interface{}{"is_active": false})
	if err != nil {
		log.WithField("rec_id", id).WithError(err).Error("failed to deactivate user")
		return err
	}
	log.WithField("rec_id", id).Info("user deactivated")
	return nil
}

func (i impl) List() ([]userapimodels.UserView, error) {
	recList, err := i.store.List()
	if err != nil {
		log.WithError(err).Error("failed to list users")
		return nil, err
	}
	result := make([]userapimodels.UserView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, userapimodels.UserConvert(rec))
	}
	return result, nil
}

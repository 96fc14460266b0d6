package authhandler

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"refdesk-backend/db"
	usersstore "refdesk-backend/lib/users/store"
	authutils "refdesk-backend/lib/utils/auth-utils"
	"refdesk-backend/models"
	authapimodels "refdesk-backend/models/api/auth"
	userapimodels "refdesk-backend/models/api/user"
)

type Provider interface {
	Login(email, password string) (response authapimodels.JWTResponse, err error)
	RefreshToken(refreshToken string) (response authapimodels.JWTResponse, err error)
	Me(ctx *fiber.Ctx) (userapimodels.UserView, error)
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

func (i impl) Login(email, password string) (response authapimodels.JWTResponse, err error) {
	logger := log.WithField("email", email)
	user, err := i.store.GetByEmail(email)
	if err != nil {
		logger.WithError(err).Error("failed to look up user by email")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || !user.IsActive {
		logger.Debug("login rejected, unknown or inactive user")
		return authapimodels.JWTResponse{}, models.NewUnauthorizedError("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		logger.Debug("login rejected, password mismatch")
		return authapimodels.JWTResponse{}, models.NewUnauthorizedError("invalid credentials")
	}
	return i.issueTokens(user.ID, user.GetFullName(), user.Role, user.Designation)
}

func (i impl) RefreshToken(refreshToken string) (response authapimodels.JWTResponse, err error) {
	claims, err := authutils.ParseToken(refreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, models.NewUnauthorizedError("invalid refresh token")
	}
	userID, _ := claims["sub"].(string)
	user, err := i.store.GetByID(userID)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || !user.IsActive {
		return authapimodels.JWTResponse{}, models.NewUnauthorizedError("invalid refresh token")
	}
	return i.issueTokens(user.ID, user.GetFullName(), user.Role, user.Designation)
}

func (i impl) Me(ctx *fiber.Ctx) (userapimodels.UserView, error) {
	claims := authutils.GetClaims(ctx)
	userID, _ := claims["sub"].(string)
	user, err := i.store.GetByID(userID)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	if user == nil {
		return userapimodels.UserView{}, models.NewUnauthorizedError("unknown user")
	}
	return userapimodels.UserConvert(*user), nil
}

func (i impl) issueTokens(userID, name string, role models.UserRole, designation string) (authapimodels.JWTResponse, error) {
	accessToken, err := authutils.GetToken(userID, name, role, designation)
	if err != nil {
		log.WithError(err).Error("failed to sign access token")
		return authapimodels.JWTResponse{}, err
	}
	refreshToken, err := authutils.GetRefreshToken(userID, name)
	if err != nil {
		log.WithError(err).Error("failed to sign refresh token")
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

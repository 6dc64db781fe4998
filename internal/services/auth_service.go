package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/wizardsmarket/wizards/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrMagicLinkInvalid       = errors.New("magic link invalid")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	FindByGoogleID(googleID string) (models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
	SetMagicLinkNonce(userID uint, nonce string) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates the minimal identity row. Name, country and role all
// arrive later through onboarding and profile editing.
func (service *AuthService) Register(email string, password string) (models.User, error) {
	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrEmailAlreadyRegistered
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{Email: email, PasswordHash: string(passwordHash)}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, ErrEmailAlreadyRegistered
	}
	return user, nil
}

func (service *AuthService) Authenticate(email string, password string) (models.User, error) {
	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// ResolveGoogleUser finds or creates the identity for a Google sign-in,
// linking the Google subject to an existing account with the same email.
func (service *AuthService) ResolveGoogleUser(googleID string, email string) (models.User, error) {
	if user, err := service.users.FindByGoogleID(googleID); err == nil {
		return user, nil
	}

	if user, err := service.users.FindByNormalizedEmail(email); err == nil {
		user.GoogleID = googleID
		if err := service.users.Save(&user); err != nil {
			return models.User{}, err
		}
		return user, nil
	}

	user := models.User{Email: email, GoogleID: googleID}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// IssueMagicLinkNonce stores a fresh one-time nonce for the account behind the
// email. The nonce is embedded in the emailed token and cleared on use, so a
// link works exactly once.
func (service *AuthService) IssueMagicLinkNonce(email string) (models.User, string, error) {
	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, "", err
	}

	nonce := uuid.NewString()
	if err := service.users.SetMagicLinkNonce(user.ID, nonce); err != nil {
		return models.User{}, "", err
	}
	user.MagicLinkNonce = nonce
	return user, nonce, nil
}

// ConsumeMagicLinkNonce validates and burns the nonce for a verified link.
func (service *AuthService) ConsumeMagicLinkNonce(userID uint, nonce string) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, ErrMagicLinkInvalid
	}
	if nonce == "" || user.MagicLinkNonce != nonce {
		return models.User{}, ErrMagicLinkInvalid
	}
	if err := service.users.SetMagicLinkNonce(user.ID, ""); err != nil {
		return models.User{}, err
	}
	return user, nil
}

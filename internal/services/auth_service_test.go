package services

import (
	"errors"
	"testing"

	"github.com/wizardsmarket/wizards/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type stubAuthUsers struct {
	byEmail  map[string]models.User
	byID     map[uint]models.User
	byGoogle map[string]models.User
	nextID   uint
	nonces   map[uint]string
}

func newStubAuthUsers() *stubAuthUsers {
	return &stubAuthUsers{
		byEmail:  map[string]models.User{},
		byID:     map[uint]models.User{},
		byGoogle: map[string]models.User{},
		nonces:   map[uint]string{},
		nextID:   1,
	}
}

func (stub *stubAuthUsers) ExistsByNormalizedEmail(email string) (bool, error) {
	_, ok := stub.byEmail[email]
	return ok, nil
}

func (stub *stubAuthUsers) FindByNormalizedEmail(email string) (models.User, error) {
	user, ok := stub.byEmail[email]
	if !ok {
		return models.User{}, errors.New("not found")
	}
	return user, nil
}

func (stub *stubAuthUsers) FindByID(userID uint) (models.User, error) {
	user, ok := stub.byID[userID]
	if !ok {
		return models.User{}, errors.New("not found")
	}
	if nonce, ok := stub.nonces[userID]; ok {
		user.MagicLinkNonce = nonce
	}
	return user, nil
}

func (stub *stubAuthUsers) FindByGoogleID(googleID string) (models.User, error) {
	user, ok := stub.byGoogle[googleID]
	if !ok {
		return models.User{}, errors.New("not found")
	}
	return user, nil
}

func (stub *stubAuthUsers) Create(user *models.User) error {
	user.ID = stub.nextID
	stub.nextID++
	stub.byEmail[user.Email] = *user
	stub.byID[user.ID] = *user
	if user.GoogleID != "" {
		stub.byGoogle[user.GoogleID] = *user
	}
	return nil
}

func (stub *stubAuthUsers) Save(user *models.User) error {
	stub.byEmail[user.Email] = *user
	stub.byID[user.ID] = *user
	if user.GoogleID != "" {
		stub.byGoogle[user.GoogleID] = *user
	}
	return nil
}

func (stub *stubAuthUsers) SetMagicLinkNonce(userID uint, nonce string) error {
	stub.nonces[userID] = nonce
	return nil
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	service := NewAuthService(newStubAuthUsers())
	if _, err := service.Register("ada@example.com", "StrongPass1"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := service.Register("ada@example.com", "StrongPass1"); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	t.Parallel()

	service := NewAuthService(newStubAuthUsers())
	user, err := service.Register("ada@example.com", "StrongPass1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.PasswordHash == "" || user.PasswordHash == "StrongPass1" {
		t.Fatalf("password must be stored hashed, got %q", user.PasswordHash)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("StrongPass1")) != nil {
		t.Fatal("stored hash does not verify the original password")
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	t.Parallel()

	users := newStubAuthUsers()
	service := NewAuthService(users)
	if _, err := service.Register("ada@example.com", "StrongPass1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := service.Authenticate("ada@example.com", "WrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Authenticate("ghost@example.com", "StrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateRejectsPasswordlessAccounts(t *testing.T) {
	t.Parallel()

	users := newStubAuthUsers()
	googleOnly := models.User{Email: "sso@example.com", GoogleID: "g-1"}
	if err := users.Create(&googleOnly); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	service := NewAuthService(users)
	if _, err := service.Authenticate("sso@example.com", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for SSO-only account, got %v", err)
	}
}

func TestResolveGoogleUserLinksExistingAccount(t *testing.T) {
	t.Parallel()

	users := newStubAuthUsers()
	service := NewAuthService(users)
	registered, err := service.Register("ada@example.com", "StrongPass1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	resolved, err := service.ResolveGoogleUser("google-123", "ada@example.com")
	if err != nil {
		t.Fatalf("ResolveGoogleUser() error = %v", err)
	}
	if resolved.ID != registered.ID {
		t.Fatalf("resolved user id = %d, want existing account %d", resolved.ID, registered.ID)
	}
	if resolved.GoogleID != "google-123" {
		t.Fatalf("google id not linked, got %q", resolved.GoogleID)
	}
}

func TestResolveGoogleUserCreatesFreshAccount(t *testing.T) {
	t.Parallel()

	service := NewAuthService(newStubAuthUsers())
	resolved, err := service.ResolveGoogleUser("google-456", "new@example.com")
	if err != nil {
		t.Fatalf("ResolveGoogleUser() error = %v", err)
	}
	if resolved.ID == 0 || resolved.Email != "new@example.com" {
		t.Fatalf("expected fresh account, got %+v", resolved)
	}
}

func TestMagicLinkNonceWorksExactlyOnce(t *testing.T) {
	t.Parallel()

	users := newStubAuthUsers()
	service := NewAuthService(users)
	registered, err := service.Register("ada@example.com", "StrongPass1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, nonce, err := service.IssueMagicLinkNonce("ada@example.com")
	if err != nil {
		t.Fatalf("IssueMagicLinkNonce() error = %v", err)
	}
	if nonce == "" {
		t.Fatal("expected a nonce")
	}

	if _, err := service.ConsumeMagicLinkNonce(registered.ID, "bogus"); !errors.Is(err, ErrMagicLinkInvalid) {
		t.Fatalf("wrong nonce: expected ErrMagicLinkInvalid, got %v", err)
	}

	if _, err := service.ConsumeMagicLinkNonce(registered.ID, nonce); err != nil {
		t.Fatalf("first consume failed: %v", err)
	}
	if _, err := service.ConsumeMagicLinkNonce(registered.ID, nonce); !errors.Is(err, ErrMagicLinkInvalid) {
		t.Fatalf("second consume: expected ErrMagicLinkInvalid, got %v", err)
	}
}

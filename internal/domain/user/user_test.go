package user

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/example/shoe-store/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu        sync.Mutex
	users     map[string]*User
	lookupErr error
	createErr error

	CreateCalls []*User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*User)}
}

func (f *fakeStore) CreateUser(ctx context.Context, u *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls = append(f.CreateCalls, u)
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[u.Username]; ok {
		return ErrUsernameTaken
	}
	f.users[u.Username] = u
	return nil
}

func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	u, ok := f.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func newTestUserService() (*Service, *fakeStore) {
	store := newFakeStore()
	return NewService(store), store
}

func validForm() RegistrationForm {
	return RegistrationForm{
		Username:  "alice",
		Email:     "alice@example.com",
		Password1: "correct-horse",
		Password2: "correct-horse",
	}
}

// ============================================
// Email Validation Tests
// ============================================

func TestIsValidEmail_ValidEmails(t *testing.T) {
	validEmails := []string{
		"test@example.com",
		"user.name@domain.org",
		"user+tag@example.com",
		"user123@test.co.jp",
		"a@b.cd",
		"user_name@domain.com",
		"USER@EXAMPLE.COM",
		"test@subdomain.example.com",
	}

	for _, email := range validEmails {
		t.Run(email, func(t *testing.T) {
			assert.True(t, isValidEmail(email), "Expected %s to be valid", email)
		})
	}
}

func TestIsValidEmail_InvalidEmails(t *testing.T) {
	invalidEmails := []string{
		"",
		"notanemail",
		"@example.com",
		"user@",
		"user@.com",
		"user@domain",
		"user@domain.",
		"user space@example.com",
		"user@exam ple.com",
	}

	for _, email := range invalidEmails {
		t.Run(email, func(t *testing.T) {
			assert.False(t, isValidEmail(email), "Expected %s to be invalid", email)
		})
	}
}

// ============================================
// Register Tests
// ============================================

func TestService_Register_Success(t *testing.T) {
	service, store := newTestUserService()

	u, err := service.Register(context.Background(), validForm())

	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.False(t, u.CreatedAt.IsZero())
	assert.NotEqual(t, "correct-horse", u.PasswordHash)
	assert.True(t, auth.CheckPassword("correct-horse", u.PasswordHash))
	require.Len(t, store.CreateCalls, 1)
}

func TestService_Register_EmailOptional(t *testing.T) {
	service, _ := newTestUserService()
	form := validForm()
	form.Email = ""

	u, err := service.Register(context.Background(), form)

	require.NoError(t, err)
	assert.Empty(t, u.Email)
}

func TestService_Register_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *RegistrationForm)
		field  string
	}{
		{"missing username", func(f *RegistrationForm) { f.Username = "" }, "username"},
		{"username with spaces", func(f *RegistrationForm) { f.Username = "al ice" }, "username"},
		{"username too long", func(f *RegistrationForm) {
			b := make([]byte, 151)
			for i := range b {
				b[i] = 'a'
			}
			f.Username = string(b)
		}, "username"},
		{"bad email", func(f *RegistrationForm) { f.Email = "not-an-email" }, "email"},
		{"missing password1", func(f *RegistrationForm) { f.Password1 = "" }, "password1"},
		{"missing password2", func(f *RegistrationForm) { f.Password2 = "" }, "password2"},
		{"mismatch", func(f *RegistrationForm) { f.Password2 = "different-horse" }, "password2"},
		{"too short", func(f *RegistrationForm) { f.Password1, f.Password2 = "short", "short" }, "password2"},
		{"too short in characters", func(f *RegistrationForm) { f.Password1, f.Password2 = "пароль1", "пароль1" }, "password2"},
		{"too long for bcrypt", func(f *RegistrationForm) {
			long := strings.Repeat("x", auth.MaxPasswordBytes+1)
			f.Password1, f.Password2 = long, long
		}, "password2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := newTestUserService()
			form := validForm()
			tt.mutate(&form)

			u, err := service.Register(context.Background(), form)

			assert.Nil(t, u)
			var formErrs FormErrors
			require.True(t, errors.As(err, &formErrs))
			assert.NotEmpty(t, formErrs[tt.field])
			assert.Empty(t, store.CreateCalls)
		})
	}
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()

	_, err := service.Register(ctx, validForm())
	require.NoError(t, err)

	_, err = service.Register(ctx, validForm())

	var formErrs FormErrors
	require.True(t, errors.As(err, &formErrs))
	assert.Equal(t, []string{"A user with that username already exists."}, formErrs["username"])
}

func TestService_Register_CreateRace(t *testing.T) {
	service, store := newTestUserService()
	store.createErr = ErrUsernameTaken

	_, err := service.Register(context.Background(), validForm())

	var formErrs FormErrors
	require.True(t, errors.As(err, &formErrs))
	assert.Contains(t, formErrs, "username")
}

func TestService_Register_StoreFailure(t *testing.T) {
	service, store := newTestUserService()
	boom := errors.New("connection refused")
	store.lookupErr = boom

	_, err := service.Register(context.Background(), validForm())

	assert.ErrorIs(t, err, boom)
	var formErrs FormErrors
	assert.False(t, errors.As(err, &formErrs))
}

func TestFormErrors_Error(t *testing.T) {
	errs := FormErrors{}
	errs.Add("username", "required")
	errs.Add("email", "invalid")

	assert.Equal(t, "invalid form: email: invalid; username: required", errs.Error())
}

// ============================================
// Authenticate Tests
// ============================================

func TestService_Authenticate_Success(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()
	registered, err := service.Register(ctx, validForm())
	require.NoError(t, err)

	u, err := service.Authenticate(ctx, "alice", "correct-horse")

	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
}

func TestService_Authenticate_Rejections(t *testing.T) {
	service, store := newTestUserService()
	ctx := context.Background()
	_, err := service.Register(ctx, validForm())
	require.NoError(t, err)

	hash, err := auth.HashPassword("inactive-pass")
	require.NoError(t, err)
	store.users["dormant"] = &User{ID: "u-2", Username: "dormant", PasswordHash: hash, IsActive: false}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "wrong-horse"},
		{"unknown user", "nobody", "correct-horse"},
		{"empty username", "", "correct-horse"},
		{"empty password", "alice", ""},
		{"inactive user", "dormant", "inactive-pass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := service.Authenticate(ctx, tt.username, tt.password)
			assert.Nil(t, u)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestService_Authenticate_StoreFailure(t *testing.T) {
	service, store := newTestUserService()
	boom := errors.New("timeout")
	store.lookupErr = boom

	_, err := service.Authenticate(context.Background(), "alice", "correct-horse")

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// ============================================
// Events
// ============================================

func TestEventTypes(t *testing.T) {
	assert.Equal(t, EventUserRegistered, UserRegistered{}.EventType())
	assert.Equal(t, EventUserLoggedIn, UserLoggedIn{}.EventType())
	assert.Equal(t, EventUserLoggedOut, UserLoggedOut{}.EventType())
}

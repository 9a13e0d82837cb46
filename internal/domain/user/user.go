package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/example/shoe-store/internal/auth"
	"github.com/google/uuid"
)

const maxUsernameLength = 150

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

var (
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}$`)
)

// User is a registered storefront account.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Store persists accounts. CreateUser returns ErrUsernameTaken on a
// duplicate username; GetUserByUsername returns ErrUserNotFound.
type Store interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// RegistrationForm is the submitted sign-up form.
type RegistrationForm struct {
	Username  string
	Email     string
	Password1 string
	Password2 string
}

// FormErrors maps form fields to validation messages.
type FormErrors map[string][]string

func (e FormErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FormErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e[f], " "))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Service handles account registration and credential checks
type Service struct {
	store Store
	now   func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewService creates a new user service
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func isValidEmail(email string) bool {
	if len(email) > 254 {
		return false
	}
	return emailPattern.MatchString(email)
}

func (s *Service) validate(ctx context.Context, form RegistrationForm) (FormErrors, error) {
	errs := FormErrors{}

	switch {
	case form.Username == "":
		errs.Add("username", "This field is required.")
	case utf8.RuneCountInString(form.Username) > maxUsernameLength:
		errs.Add("username", fmt.Sprintf("Ensure this value has at most %d characters.", maxUsernameLength))
	case !usernamePattern.MatchString(form.Username):
		errs.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	default:
		_, err := s.store.GetUserByUsername(ctx, form.Username)
		switch {
		case err == nil:
			errs.Add("username", "A user with that username already exists.")
		case !errors.Is(err, ErrUserNotFound):
			return nil, fmt.Errorf("lookup username: %w", err)
		}
	}

	if form.Email != "" && !isValidEmail(form.Email) {
		errs.Add("email", "Enter a valid email address.")
	}

	if form.Password1 == "" {
		errs.Add("password1", "This field is required.")
	}
	if form.Password2 == "" {
		errs.Add("password2", "This field is required.")
	}
	if form.Password1 != "" && form.Password2 != "" {
		if form.Password1 != form.Password2 {
			errs.Add("password2", "The two password fields didn't match.")
		} else {
			switch auth.ValidatePassword(form.Password2) {
			case auth.ErrPasswordTooShort:
				errs.Add("password2", fmt.Sprintf("This password is too short. It must contain at least %d characters.", auth.MinPasswordLength))
			case auth.ErrPasswordTooLong:
				errs.Add("password2", fmt.Sprintf("This password is too long. It must contain at most %d bytes.", auth.MaxPasswordBytes))
			}
		}
	}

	return errs, nil
}

// Register validates the form and creates an active account. Validation
// problems are returned as FormErrors.
func (s *Service) Register(ctx context.Context, form RegistrationForm) (*User, error) {
	errs, err := s.validate(ctx, form)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errs
	}

	passwordHash, err := auth.HashPassword(form.Password1)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New().String(),
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, FormErrors{"username": {"A user with that username already exists."}}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate checks credentials. Every rejection is reported as
// ErrInvalidCredentials so callers cannot tell which part was wrong.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Spend the same bcrypt time as a real check.
			auth.CheckPassword(password, s.dummyPasswordHash())
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !auth.CheckPassword(password, u.PasswordHash) || !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = auth.HashPassword(uuid.New().String())
	})
	return s.dummyHash
}

package user

import "time"

const (
	EventUserRegistered = "UserRegistered"
	EventUserLoggedIn   = "UserLoggedIn"
	EventUserLoggedOut  = "UserLoggedOut"
)

// UserRegistered is emitted when a new account is created
type UserRegistered struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

func (UserRegistered) EventType() string { return EventUserRegistered }

// UserLoggedIn is emitted when user successfully logs in
type UserLoggedIn struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	SessionID string    `json:"session_id"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	LoggedAt  time.Time `json:"logged_at"`
}

func (UserLoggedIn) EventType() string { return EventUserLoggedIn }

// UserLoggedOut is emitted when user logs out
type UserLoggedOut struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	LoggedAt  time.Time `json:"logged_at"`
}

func (UserLoggedOut) EventType() string { return EventUserLoggedOut }

package auth

import "context"

// Identity is the authenticated principal as the rest of the system sees
// it. DisplayName may be empty; callers fall back to Email.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

const (
	CodeNoAccount       = "no_account"
	CodeWrongPassword   = "wrong_password"
	CodeEmailInUse      = "email_in_use"
	CodeWeakPassword    = "weak_password"
	CodeTooManyAttempts = "too_many_attempts"
	CodeInvalidSession  = "invalid_session"
)

var userMessages = map[string]string{
	CodeNoAccount:       "No account found for this email.",
	CodeWrongPassword:   "Incorrect password. Please try again.",
	CodeEmailInUse:      "An account with this email already exists.",
	CodeWeakPassword:    "Password must be at least 6 characters long.",
	CodeTooManyAttempts: "Too many attempts. Please wait a moment and retry.",
	CodeInvalidSession:  "Your session has expired. Please sign in again.",
}

// UserMessage maps a coded authentication error to a user-facing string,
// with a fallback for anything unrecognized.
func UserMessage(code string) string {
	if msg, ok := userMessages[code]; ok {
		return msg
	}
	return "An unexpected error occurred. Please try again."
}

type SignUpRequest struct {
	Email       string
	Password    string
	DisplayName string
	Role        string

	// employer-only
	BusinessName        string
	BusinessAddress     string
	ContactPhone        string
	IsLegallyRegistered bool
}

type Authenticator interface {
	SignUp(ctx context.Context, req SignUpRequest) (*Identity, string, error)
	SignIn(ctx context.Context, email, password string) (*Identity, string, error)
	SignOut(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
	IdentityFromToken(ctx context.Context, token string) (*Identity, error)
}

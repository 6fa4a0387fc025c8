package auth

import (
	"context"
	"time"

	"github.com/OBATA-VTU/oGig/internal/domain/faults"
	"github.com/OBATA-VTU/oGig/internal/domain/models"
	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// StateChangedTopic carries a *Identity on sign-in and nil on sign-out.
var StateChangedTopic = "AuthStateChangedEvent"

const (
	sessionTTL        = 24 * time.Hour
	maxSignInAttempts = 5
	attemptsWindowTTL = 10 * time.Minute
	minPasswordLength = 6
)

type credentialsRepository interface {
	Add(ctx context.Context, credential models.Credential) error
	GetByEmail(ctx context.Context, email string) (*models.Credential, error)
	UpdatePassword(ctx context.Context, uid string, passwordHash string) error
}

type signUpProfileRepository interface {
	Add(ctx context.Context, profile models.UserProfile) error
	GetByUID(ctx context.Context, uid string) (*models.UserProfile, error)
}

// Local authenticates against credentials held in the record store.
// Sessions are opaque tokens held in memory; restarting the process
// signs everyone out.
type Local struct {
	credentials credentialsRepository
	profiles    signUpProfileRepository
	bus         EventBus.Bus
	sessions    *gocache.Cache
	attempts    *gocache.Cache
}

func NewLocal(credentials credentialsRepository, profiles signUpProfileRepository, bus EventBus.Bus) (*Local, error) {
	if credentials == nil {
		return nil, errors.New("credentials repository is nil")
	}
	if profiles == nil {
		return nil, errors.New("profiles repository is nil")
	}
	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	return &Local{
		credentials: credentials,
		profiles:    profiles,
		bus:         bus,
		sessions:    gocache.New(sessionTTL, 2*sessionTTL),
		attempts:    gocache.New(attemptsWindowTTL, 2*attemptsWindowTTL),
	}, nil
}

// SignUp creates the credential and the profile record in one step. The
// profile starts with empty skill, portfolio and follow sets and its
// role is never changed afterwards.
func (l *Local) SignUp(ctx context.Context, req SignUpRequest) (*Identity, string, error) {

	if len(req.Password) < minPasswordLength {
		return nil, "", faults.New(faults.Authentication, CodeWeakPassword)
	}

	role, err := models.ToUserRole(req.Role)
	if err != nil {
		return nil, "", faults.Wrap(faults.Validation, err, "sign-up rejected")
	}

	existing, err := l.credentials.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", faults.Wrap(faults.Transient, err, "credential lookup failed")
	}
	if existing != nil {
		return nil, "", faults.New(faults.Authentication, CodeEmailInUse)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to hash password")
	}

	uid := uuid.NewString()
	if err = l.credentials.Add(ctx, models.Credential{
		UID:          uid,
		Email:        req.Email,
		PasswordHash: string(hash),
	}); err != nil {
		return nil, "", faults.Wrap(faults.Transient, err, "failed to store credential")
	}

	profile := models.UserProfile{
		UID:         uid,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Role:        role,
	}
	if role == models.RoleEmployer {
		profile.BusinessName = req.BusinessName
		profile.BusinessAddress = req.BusinessAddress
		profile.ContactPhone = req.ContactPhone
		profile.IsLegallyRegistered = req.IsLegallyRegistered
	}

	if err = l.profiles.Add(ctx, profile); err != nil {
		return nil, "", faults.Wrap(faults.Transient, err, "failed to store profile")
	}

	identity := &Identity{UID: uid, Email: req.Email, DisplayName: req.DisplayName}
	return identity, l.openSession(identity), nil
}

func (l *Local) SignIn(ctx context.Context, email, password string) (*Identity, string, error) {

	if count, found := l.attempts.Get(email); found && count.(int) >= maxSignInAttempts {
		return nil, "", faults.New(faults.Authentication, CodeTooManyAttempts)
	}

	credential, err := l.credentials.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", faults.Wrap(faults.Transient, err, "credential lookup failed")
	}
	if credential == nil {
		l.recordFailedAttempt(email)
		return nil, "", faults.New(faults.Authentication, CodeNoAccount)
	}

	if bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)) != nil {
		l.recordFailedAttempt(email)
		return nil, "", faults.New(faults.Authentication, CodeWrongPassword)
	}

	profile, err := l.profiles.GetByUID(ctx, credential.UID)
	if err != nil {
		return nil, "", faults.Wrap(faults.Transient, err, "profile lookup failed")
	}

	identity := &Identity{UID: credential.UID, Email: credential.Email}
	if profile != nil {
		identity.DisplayName = profile.DisplayName
	}

	l.attempts.Delete(email)
	return identity, l.openSession(identity), nil
}

func (l *Local) SignOut(_ context.Context, token string) error {
	l.sessions.Delete(token)
	l.bus.Publish(StateChangedTopic, (*Identity)(nil))
	return nil
}

// ResetPassword replaces the stored hash for an existing account.
func (l *Local) ResetPassword(ctx context.Context, email, newPassword string) error {

	if len(newPassword) < minPasswordLength {
		return faults.New(faults.Authentication, CodeWeakPassword)
	}

	credential, err := l.credentials.GetByEmail(ctx, email)
	if err != nil {
		return faults.Wrap(faults.Transient, err, "credential lookup failed")
	}
	if credential == nil {
		return faults.New(faults.Authentication, CodeNoAccount)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	if err = l.credentials.UpdatePassword(ctx, credential.UID, string(hash)); err != nil {
		return faults.Wrap(faults.Transient, err, "failed to update password")
	}

	log.Infof("password reset for account %v", credential.UID)
	return nil
}

func (l *Local) IdentityFromToken(_ context.Context, token string) (*Identity, error) {
	value, found := l.sessions.Get(token)
	if !found {
		return nil, faults.New(faults.Authentication, CodeInvalidSession)
	}
	identity := value.(Identity)
	return &identity, nil
}

func (l *Local) openSession(identity *Identity) string {
	token := uuid.NewString()
	l.sessions.Set(token, *identity, gocache.DefaultExpiration)
	l.bus.Publish(StateChangedTopic, identity)
	return token
}

func (l *Local) recordFailedAttempt(email string) {
	count := 0
	if value, found := l.attempts.Get(email); found {
		count = value.(int)
	}
	l.attempts.Set(email, count+1, gocache.DefaultExpiration)
}

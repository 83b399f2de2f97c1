// Package auth implements the login, signup and password recovery flow in
// front of the profiles stored in the document.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"fjacquet/khoroch-khata/internal/ledger"
	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
)

var (
	ErrUnknownEmail      = errors.New("no profile uses this email")
	ErrWrongPassword     = errors.New("wrong password")
	ErrPasswordTooShort  = errors.New("password is too short")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrInvalidEmail      = errors.New("email must contain @")
	ErrEmailRegistered   = errors.New("email is already registered")
	ErrInvalidTransition = errors.New("action not allowed in the current step")
)

// Mode is the top-level state of the gate.
type Mode int

const (
	ModeLoggedOut Mode = iota
	ModeLogin
	ModeSignup
	ModeRecovery
	ModeLoggedIn
)

func (m Mode) String() string {
	switch m {
	case ModeLoggedOut:
		return "loggedOut"
	case ModeLogin:
		return "login"
	case ModeSignup:
		return "signup"
	case ModeRecovery:
		return "recovery"
	case ModeLoggedIn:
		return "loggedIn"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Step is the position inside a mode.
type Step int

const (
	StepNone Step = iota
	StepCredentials
	StepName
	StepAvatar
	StepCurrency
	StepEmail
	StepNewPassword
)

// Accounts is the slice of the ledger the gate needs.
type Accounts interface {
	State() models.AppState
	SwitchProfile(ctx context.Context, id string) error
	CompleteOnboarding(ctx context.Context, in ledger.OnboardingInput) (models.Profile, error)
	SetCredential(ctx context.Context, email, credential string) error
}

// Gate walks a user through login, signup or recovery until a profile is
// logged in. Errors leave the gate in the same step so input can be retried.
type Gate struct {
	accounts  Accounts
	hasher    Hasher
	minLength int
	logger    logging.Logger

	mode    Mode
	step    Step
	signup  ledger.OnboardingInput
	pending string
	email   string
	profile models.Profile
	reset   bool
}

// NewGate creates a gate in the logged-out state. minLength below the
// floor of six is raised to six.
func NewGate(accounts Accounts, hasher Hasher, minLength int, logger logging.Logger) *Gate {
	if minLength < 6 {
		minLength = 6
	}
	return &Gate{
		accounts:  accounts,
		hasher:    hasher,
		minLength: minLength,
		logger:    logging.OrDefault(logger),
	}
}

func (g *Gate) Mode() Mode { return g.mode }
func (g *Gate) Step() Step { return g.step }

// Profile returns the logged-in profile.
func (g *Gate) Profile() (models.Profile, bool) {
	return g.profile, g.mode == ModeLoggedIn
}

// PasswordReset reports whether the last recovery finished successfully.
// It is cleared by the next Choose.
func (g *Gate) PasswordReset() bool { return g.reset }

// Choose switches between login, signup and recovery.
func (g *Gate) Choose(m Mode) error {
	if g.mode == ModeLoggedIn {
		return ErrInvalidTransition
	}
	g.reset = false
	g.signup = ledger.OnboardingInput{}
	g.pending = ""
	g.email = ""
	switch m {
	case ModeLogin, ModeSignup:
		g.mode, g.step = m, StepCredentials
	case ModeRecovery:
		g.mode, g.step = m, StepEmail
	case ModeLoggedOut:
		g.mode, g.step = m, StepNone
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Login checks email and password against the stored profiles and makes
// the matching profile active.
func (g *Gate) Login(ctx context.Context, email, password string) error {
	if g.mode != ModeLogin {
		return ErrInvalidTransition
	}
	p, ok := g.profileByEmail(strings.TrimSpace(email))
	if !ok {
		return ErrUnknownEmail
	}
	if !Verify(p.Password, password) {
		g.logger.WithField(logging.FieldProfileID, p.ID).Warn("Login failed")
		return ErrWrongPassword
	}
	if err := g.accounts.SwitchProfile(ctx, p.ID); err != nil {
		return err
	}
	g.enter(p)
	return nil
}

// SubmitSignup validates the credentials of a new account and moves on to
// the profile details.
func (g *Gate) SubmitSignup(email, password string) error {
	if g.mode != ModeSignup || g.step != StepCredentials {
		return ErrInvalidTransition
	}
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if _, taken := g.profileByEmail(email); taken {
		return ErrEmailRegistered
	}
	if err := g.checkLength(password); err != nil {
		return err
	}
	g.signup.Email = email
	g.pending = password
	g.step = StepName
	return nil
}

// SubmitName records the display name.
func (g *Gate) SubmitName(name string) error {
	if g.mode != ModeSignup || g.step != StepName {
		return ErrInvalidTransition
	}
	if strings.TrimSpace(name) == "" {
		return ledger.ErrInvalidProfileName
	}
	g.signup.Name = strings.TrimSpace(name)
	g.step = StepAvatar
	return nil
}

// SubmitAvatar records an emoji avatar and an optional image.
func (g *Gate) SubmitAvatar(avatar, image string) error {
	if g.mode != ModeSignup || g.step != StepAvatar {
		return ErrInvalidTransition
	}
	g.signup.Avatar = avatar
	g.signup.Image = image
	g.step = StepCurrency
	return nil
}

// SubmitCurrency finishes signup: the profile is created, made active and
// logged in.
func (g *Gate) SubmitCurrency(ctx context.Context, symbol string) error {
	if g.mode != ModeSignup || g.step != StepCurrency {
		return ErrInvalidTransition
	}
	credential, err := g.hasher.Hash(g.pending)
	if err != nil {
		return err
	}
	in := g.signup
	in.Credential = credential
	in.CurrencySymbol = symbol
	p, err := g.accounts.CompleteOnboarding(ctx, in)
	if err != nil {
		return err
	}
	g.pending = ""
	g.enter(p)
	return nil
}

// Back returns to the previous signup step.
func (g *Gate) Back() error {
	if g.mode != ModeSignup {
		return ErrInvalidTransition
	}
	switch g.step {
	case StepName:
		g.step = StepCredentials
	case StepAvatar:
		g.step = StepName
	case StepCurrency:
		g.step = StepAvatar
	default:
		return ErrInvalidTransition
	}
	return nil
}

// SubmitRecoveryEmail starts a password reset for an existing profile.
func (g *Gate) SubmitRecoveryEmail(email string) error {
	if g.mode != ModeRecovery || g.step != StepEmail {
		return ErrInvalidTransition
	}
	email = strings.TrimSpace(email)
	if _, ok := g.profileByEmail(email); !ok {
		return ErrUnknownEmail
	}
	g.email = email
	g.step = StepNewPassword
	return nil
}

// SubmitNewPassword stores the new password and returns to login.
func (g *Gate) SubmitNewPassword(ctx context.Context, password, confirm string) error {
	if g.mode != ModeRecovery || g.step != StepNewPassword {
		return ErrInvalidTransition
	}
	if err := g.checkLength(password); err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	credential, err := g.hasher.Hash(password)
	if err != nil {
		return err
	}
	if err := g.accounts.SetCredential(ctx, g.email, credential); err != nil {
		return err
	}
	g.logger.Info("Password reset")
	g.mode, g.step = ModeLogin, StepCredentials
	g.email = ""
	g.reset = true
	return nil
}

func (g *Gate) profileByEmail(email string) (models.Profile, bool) {
	st := g.accounts.State()
	return st.ProfileByEmail(email)
}

func (g *Gate) checkLength(password string) error {
	if utf8.RuneCountInString(password) < g.minLength {
		return fmt.Errorf("%w: need at least %d characters", ErrPasswordTooShort, g.minLength)
	}
	return nil
}

func (g *Gate) enter(p models.Profile) {
	g.mode, g.step = ModeLoggedIn, StepNone
	g.profile = p
	g.logger.WithField(logging.FieldProfileID, p.ID).Info("Logged in")
}

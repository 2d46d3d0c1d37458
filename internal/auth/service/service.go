// Package service implements registration, login and the OTP-based
// password-change flow.
package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"designhub_backend/internal/auth/otp"
	"designhub_backend/internal/auth/transport"
	"designhub_backend/internal/email"
	"designhub_backend/internal/events"
	userrepo "designhub_backend/internal/users/repository"
	usersvc "designhub_backend/internal/users/service"
	usertransport "designhub_backend/internal/users/transport"
	"designhub_backend/platform/apperr"
	"designhub_backend/platform/config"
	"designhub_backend/platform/logger"
	"designhub_backend/platform/phone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	opRegister       = "auth.service.register"
	opLogin          = "auth.service.login"
	opRequestOTP     = "auth.service.request_otp"
	opVerifyOTP      = "auth.service.verify_otp"
	opChangePassword = "auth.service.change_password"

	accessTokenType = "access"

	msgInvalidCredentials = "invalid email or password"
	msgInvalidCode        = "invalid or expired verification code"
	msgTooManyAttempts    = "too many attempts, request a new code"
)

// UserStore is the user persistence surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, p userrepo.CreateParams) (userrepo.User, error)
	GetByEmail(ctx context.Context, email string) (userrepo.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (userrepo.User, error)
	SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	TouchLastActive(ctx context.Context, id uuid.UUID) error
}

// OTPStore holds hashed one-time codes keyed by email.
type OTPStore interface {
	Save(ctx context.Context, identifier, codeHash string, ttl time.Duration) error
	Get(ctx context.Context, identifier string) (string, error)
	Delete(ctx context.Context, identifier string) error
}

// AttemptCounter tracks failed verifications per identifier.
type AttemptCounter interface {
	Increment(ctx context.Context, identifier string) (int64, error)
	Reset(ctx context.Context, identifier string) error
}

// Service implements the auth operations.
type Service struct {
	users    UserStore
	otps     OTPStore
	attempts AttemptCounter
	mail     email.Sender
	bus      events.Bus
	cfg      config.AuthServiceConfig
	log      *logger.Logger
}

// New creates an auth service.
func New(users UserStore, otps OTPStore, attempts AttemptCounter, mail email.Sender, bus events.Bus, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{
		users:    users,
		otps:     otps,
		attempts: attempts,
		mail:     mail,
		bus:      bus,
		cfg:      cfg,
		log:      log,
	}
}

// Register creates an account and returns a signed access token.
func (s *Service) Register(ctx context.Context, req transport.RegisterRequest) (transport.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "hash password failed", err).WithOp(opRegister)
	}

	var contactNo *string
	if req.ContactNo != nil && *req.ContactNo != "" {
		normalized := phone.NormalizeE164(*req.ContactNo)
		contactNo = &normalized
	}

	user, err := s.users.Create(ctx, userrepo.CreateParams{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        normalizeEmail(req.Email),
		ContactNo:    contactNo,
		PasswordHash: string(hash),
		Role:         req.Role,
	})
	if err != nil {
		return transport.AuthResponse{}, err
	}

	s.log.AuthEvent("register", user.Email, true, "")
	s.bus.Publish(ctx, events.UserRegistered{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
	})
	if err := s.mail.SendWelcomeEmail(ctx, user.Email, user.FullName); err != nil {
		s.log.SideEffectFailed(opRegister, "welcome_email", err)
	}

	token, err := s.signAccessToken(user.ID, user.Role)
	if err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "sign token failed", err).WithOp(opRegister)
	}
	return transport.AuthResponse{Token: token, User: usersvc.ToResponse(user)}, nil
}

// Login verifies credentials and returns a signed access token. The
// error is the same whether the account is missing or the password is
// wrong.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		s.log.AuthEvent("login", req.Email, false, "unknown email")
		return transport.AuthResponse{}, apperr.Unauthorized(msgInvalidCredentials).WithOp(opLogin)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.AuthEvent("login", user.Email, false, "wrong password")
		return transport.AuthResponse{}, apperr.Unauthorized(msgInvalidCredentials).WithOp(opLogin)
	}

	if err := s.users.TouchLastActive(ctx, user.ID); err != nil {
		s.log.SideEffectFailed(opLogin, "touch_last_active", err)
	}
	s.log.AuthEvent("login", user.Email, true, "")

	token, err := s.signAccessToken(user.ID, user.Role)
	if err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "sign token failed", err).WithOp(opLogin)
	}
	return transport.AuthResponse{Token: token, User: usersvc.ToResponse(user)}, nil
}

// RequestPasswordOTP generates a one-time code, stores it hashed with
// an expiry and emails it. The response does not reveal whether the
// email exists.
func (s *Service) RequestPasswordOTP(ctx context.Context, req transport.RequestOTPRequest) error {
	identifier := normalizeEmail(req.Email)
	user, err := s.users.GetByEmail(ctx, identifier)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			s.log.AuthEvent("otp_request", identifier, false, "unknown email")
			return nil
		}
		return err
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "generate otp failed", err).WithOp(opRequestOTP)
	}

	ttl := s.cfg.GetOTPTTL()
	if err := s.otps.Save(ctx, identifier, otp.HashCode(code), ttl); err != nil {
		return err
	}
	if err := s.attempts.Reset(ctx, identifier); err != nil {
		s.log.SideEffectFailed(opRequestOTP, "reset_attempts", err)
	}

	if err := s.mail.SendOTPEmail(ctx, user.Email, code, ttl); err != nil {
		return apperr.Wrap(apperr.KindInternal, "send otp email failed", err).WithOp(opRequestOTP)
	}
	s.log.AuthEvent("otp_request", identifier, true, "")
	return nil
}

// VerifyPasswordOTP checks a code without consuming it, so the client
// can gate the new-password form.
func (s *Service) VerifyPasswordOTP(ctx context.Context, req transport.VerifyOTPRequest) error {
	return s.checkOTP(ctx, normalizeEmail(req.Email), req.Code, opVerifyOTP)
}

// ChangePassword verifies the code, consumes it and replaces the
// stored password hash.
func (s *Service) ChangePassword(ctx context.Context, req transport.ChangePasswordRequest) error {
	identifier := normalizeEmail(req.Email)
	if err := s.checkOTP(ctx, identifier, req.Code, opChangePassword); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, identifier)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "hash password failed", err).WithOp(opChangePassword)
	}
	if err := s.users.SetPasswordHash(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	// The code is single use. Cleanup failures leave it to expire.
	if err := s.otps.Delete(ctx, identifier); err != nil {
		s.log.SideEffectFailed(opChangePassword, "consume_otp", err)
	}
	if err := s.attempts.Reset(ctx, identifier); err != nil {
		s.log.SideEffectFailed(opChangePassword, "reset_attempts", err)
	}

	s.log.AuthEvent("password_change", identifier, true, "")
	return nil
}

// Me returns the caller's own profile including the quiz answers.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (usertransport.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return usertransport.UserResponse{}, err
	}
	return usersvc.ToResponse(user), nil
}

func (s *Service) checkOTP(ctx context.Context, identifier, code, op string) error {
	attempts, err := s.attempts.Increment(ctx, identifier)
	if err != nil {
		return err
	}
	if attempts > int64(s.cfg.GetOTPMaxAttempts()) {
		// Burn the code once the budget is spent.
		if delErr := s.otps.Delete(ctx, identifier); delErr != nil {
			s.log.SideEffectFailed(op, "burn_otp", delErr)
		}
		s.log.AuthEvent("otp_verify", identifier, false, "attempt budget exceeded")
		return apperr.Unauthorized(msgTooManyAttempts).WithOp(op)
	}

	storedHash, err := s.otps.Get(ctx, identifier)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return apperr.Unauthorized(msgInvalidCode).WithOp(op)
		}
		return err
	}

	if subtle.ConstantTimeCompare([]byte(storedHash), []byte(otp.HashCode(code))) != 1 {
		s.log.AuthEvent("otp_verify", identifier, false, "code mismatch")
		return apperr.Unauthorized(msgInvalidCode).WithOp(op)
	}
	return nil
}

func (s *Service) signAccessToken(userID uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"type": accessTokenType,
		"role": role,
		"exp":  now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":  now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

func normalizeEmail(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

package service

import (
	"context"
	"testing"
	"time"

	"designhub_backend/internal/auth/otp"
	"designhub_backend/internal/auth/transport"
	"designhub_backend/internal/events"
	userrepo "designhub_backend/internal/users/repository"
	"designhub_backend/platform/apperr"
	"designhub_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	byEmail map[string]userrepo.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: make(map[string]userrepo.User)}
}

func (f *fakeUsers) Create(_ context.Context, p userrepo.CreateParams) (userrepo.User, error) {
	if _, exists := f.byEmail[p.Email]; exists {
		return userrepo.User{}, apperr.Conflict("an account with this email already exists")
	}
	u := userrepo.User{
		ID:           uuid.New(),
		FullName:     p.FullName,
		Email:        p.Email,
		ContactNo:    p.ContactNo,
		PasswordHash: p.PasswordHash,
		Role:         p.Role,
	}
	f.byEmail[p.Email] = u
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (userrepo.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return userrepo.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (userrepo.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return userrepo.User{}, apperr.NotFound("user not found")
}

func (f *fakeUsers) SetPasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	for email, u := range f.byEmail {
		if u.ID == id {
			u.PasswordHash = hash
			f.byEmail[email] = u
			return nil
		}
	}
	return apperr.NotFound("user not found")
}

func (f *fakeUsers) TouchLastActive(context.Context, uuid.UUID) error { return nil }

type fakeOTPs struct {
	hashes map[string]string
}

func newFakeOTPs() *fakeOTPs { return &fakeOTPs{hashes: make(map[string]string)} }

func (f *fakeOTPs) Save(_ context.Context, identifier, codeHash string, _ time.Duration) error {
	f.hashes[identifier] = codeHash
	return nil
}

func (f *fakeOTPs) Get(_ context.Context, identifier string) (string, error) {
	hash, ok := f.hashes[identifier]
	if !ok {
		return "", apperr.NotFound("no active verification code")
	}
	return hash, nil
}

func (f *fakeOTPs) Delete(_ context.Context, identifier string) error {
	delete(f.hashes, identifier)
	return nil
}

type fakeAttempts struct {
	counts map[string]int64
}

func newFakeAttempts() *fakeAttempts { return &fakeAttempts{counts: make(map[string]int64)} }

func (f *fakeAttempts) Increment(_ context.Context, identifier string) (int64, error) {
	f.counts[identifier]++
	return f.counts[identifier], nil
}

func (f *fakeAttempts) Reset(_ context.Context, identifier string) error {
	delete(f.counts, identifier)
	return nil
}

type fakeMailer struct {
	lastOTP     string
	lastOTPTo   string
	welcomeSent []string
}

func (f *fakeMailer) SendOTPEmail(_ context.Context, toEmail, code string, _ time.Duration) error {
	f.lastOTPTo = toEmail
	f.lastOTP = code
	return nil
}

func (f *fakeMailer) SendWelcomeEmail(_ context.Context, toEmail, _ string) error {
	f.welcomeSent = append(f.welcomeSent, toEmail)
	return nil
}

type testConfig struct{}

func (testConfig) GetJWTAccessSecret() string       { return "test-secret" }
func (testConfig) GetAccessTokenTTL() time.Duration { return 15 * time.Minute }
func (testConfig) GetOTPTTL() time.Duration         { return 10 * time.Minute }
func (testConfig) GetOTPMaxAttempts() int           { return 3 }

type testEnv struct {
	svc      *Service
	users    *fakeUsers
	otps     *fakeOTPs
	attempts *fakeAttempts
	mail     *fakeMailer
}

func newTestEnv() *testEnv {
	log := logger.New("test")
	env := &testEnv{
		users:    newFakeUsers(),
		otps:     newFakeOTPs(),
		attempts: newFakeAttempts(),
		mail:     &fakeMailer{},
	}
	env.svc = New(env.users, env.otps, env.attempts, env.mail, events.NewInMemoryBus(log), testConfig{}, log)
	return env
}

func register(t *testing.T, env *testEnv, emailAddr, password string) transport.AuthResponse {
	t.Helper()
	resp, err := env.svc.Register(context.Background(), transport.RegisterRequest{
		FullName: "Alice Doe",
		Email:    emailAddr,
		Password: password,
		Role:     "client",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return resp
}

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	env := newTestEnv()
	resp := register(t, env, "Alice@Example.com", "correct horse")

	if resp.Token == "" {
		t.Fatal("Register() should return a signed token")
	}
	stored := env.users.byEmail["alice@example.com"]
	if stored.PasswordHash == "correct horse" {
		t.Fatal("password must not be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if len(env.mail.welcomeSent) != 1 {
		t.Fatalf("welcome emails = %d, want 1", len(env.mail.welcomeSent))
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	env := newTestEnv()
	register(t, env, "alice@example.com", "correct horse")

	_, err := env.svc.Login(context.Background(), transport.LoginRequest{
		Email:    "alice@example.com",
		Password: "battery staple",
	})
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("kind = %v, want Unauthorized", apperr.GetKind(err))
	}
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Login(context.Background(), transport.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("kind = %v, want Unauthorized for unknown email too", apperr.GetKind(err))
	}
}

func TestOTPRequestStoresHashedCode(t *testing.T) {
	env := newTestEnv()
	register(t, env, "alice@example.com", "correct horse")

	if err := env.svc.RequestPasswordOTP(context.Background(), transport.RequestOTPRequest{Email: "alice@example.com"}); err != nil {
		t.Fatalf("RequestPasswordOTP() error = %v", err)
	}
	if env.mail.lastOTP == "" || len(env.mail.lastOTP) != 6 {
		t.Fatalf("emailed code = %q, want 6 digits", env.mail.lastOTP)
	}
	stored := env.otps.hashes["alice@example.com"]
	if stored == env.mail.lastOTP {
		t.Fatal("code must be stored hashed, not plaintext")
	}
	if stored != otp.HashCode(env.mail.lastOTP) {
		t.Fatal("stored hash does not match the emailed code")
	}
}

func TestOTPRequestForUnknownEmailSucceedsSilently(t *testing.T) {
	env := newTestEnv()

	if err := env.svc.RequestPasswordOTP(context.Background(), transport.RequestOTPRequest{Email: "nobody@example.com"}); err != nil {
		t.Fatalf("RequestPasswordOTP() error = %v, want nil to avoid account enumeration", err)
	}
	if env.mail.lastOTP != "" {
		t.Fatal("no email should be sent for an unknown account")
	}
}

func TestChangePasswordConsumesCode(t *testing.T) {
	env := newTestEnv()
	register(t, env, "alice@example.com", "correct horse")
	if err := env.svc.RequestPasswordOTP(context.Background(), transport.RequestOTPRequest{Email: "alice@example.com"}); err != nil {
		t.Fatalf("RequestPasswordOTP() error = %v", err)
	}
	code := env.mail.lastOTP

	err := env.svc.ChangePassword(context.Background(), transport.ChangePasswordRequest{
		Email:       "alice@example.com",
		Code:        code,
		NewPassword: "battery staple",
	})
	if err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if _, err := env.svc.Login(context.Background(), transport.LoginRequest{
		Email:    "alice@example.com",
		Password: "battery staple",
	}); err != nil {
		t.Fatalf("login with the new password failed: %v", err)
	}

	// The code is single use.
	err = env.svc.ChangePassword(context.Background(), transport.ChangePasswordRequest{
		Email:       "alice@example.com",
		Code:        code,
		NewPassword: "third password",
	})
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("kind = %v, want Unauthorized when reusing a consumed code", apperr.GetKind(err))
	}
}

func TestOTPAttemptBudgetBurnsCode(t *testing.T) {
	env := newTestEnv()
	register(t, env, "alice@example.com", "correct horse")
	if err := env.svc.RequestPasswordOTP(context.Background(), transport.RequestOTPRequest{Email: "alice@example.com"}); err != nil {
		t.Fatalf("RequestPasswordOTP() error = %v", err)
	}
	code := env.mail.lastOTP

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	for i := 0; i < 3; i++ {
		err := env.svc.VerifyPasswordOTP(context.Background(), transport.VerifyOTPRequest{Email: "alice@example.com", Code: wrong})
		if apperr.GetKind(err) != apperr.KindUnauthorized {
			t.Fatalf("attempt %d kind = %v, want Unauthorized", i+1, apperr.GetKind(err))
		}
	}

	// Budget exhausted: even the correct code no longer works.
	err := env.svc.VerifyPasswordOTP(context.Background(), transport.VerifyOTPRequest{Email: "alice@example.com", Code: code})
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("kind = %v, want Unauthorized after exhausting attempts", apperr.GetKind(err))
	}
	if _, ok := env.otps.hashes["alice@example.com"]; ok {
		t.Fatal("the code should be burned after the attempt budget is spent")
	}
}

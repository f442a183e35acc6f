package auth

import (
	"context"
	"errors"
	"fmt"

	"WishlistX/internal/cli/api"

	"go.uber.org/zap"
)

// ErrNoCredentials — в настройках нет телефона и пароля для тихого входа.
var ErrNoCredentials = errors.New("not signed in: run `wxcli login` or set WISHLISTX_PHONE and WISHLISTX_PASSWORD")

// Credentials — телефон и пароль из настроек.
type Credentials struct {
	Phone    string
	Password string
}

func (c Credentials) empty() bool { return c.Phone == "" || c.Password == "" }

// Exchanger обменивает учётные данные на токен. Реализуется api.Client.
type Exchanger interface {
	SignIn(ctx context.Context, phone, password string) (string, error)
	ConfirmSignup(ctx context.Context, phone, code string) (string, error)
}

// Session управляет жизненным циклом токена.
// EnsureToken и Reauthenticate используют только учётные данные из настроек;
// SignIn — явный одноразовый вход из команды login.
type Session struct {
	tokens *TokenStore
	creds  Credentials
	ex     Exchanger
	log    *zap.SugaredLogger
}

var _ api.Authenticator = (*Session)(nil)

func NewSession(tokens *TokenStore, creds Credentials, ex Exchanger, log *zap.SugaredLogger) *Session {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Session{tokens: tokens, creds: creds, ex: ex, log: log}
}

// EnsureToken возвращает сохранённый токен или выполняет вход по настройкам.
func (s *Session) EnsureToken(ctx context.Context) (string, error) {
	tok, ok, err := s.tokens.Get(ctx)
	if err != nil {
		return "", &api.AuthError{Op: "loadToken", Err: err}
	}
	if ok {
		return tok, nil
	}
	return s.exchange(ctx, s.creds)
}

// Reauthenticate всегда выполняет вход заново и сохраняет новый токен.
func (s *Session) Reauthenticate(ctx context.Context) (string, error) {
	return s.exchange(ctx, s.creds)
}

type loginInput struct {
	Phone    string `form:"phone" validate:"required,e164"`
	Password string `form:"password" validate:"required"`
}

// SignIn — интерактивный вход с явно переданными телефоном и паролем.
func (s *Session) SignIn(ctx context.Context, phone, password string) error {
	if err := api.Validate(loginInput{Phone: phone, Password: password}); err != nil {
		return err
	}
	_, err := s.signIn(ctx, Credentials{Phone: phone, Password: password})
	return err
}

// Verify подтверждает регистрацию кодом и сохраняет выданный токен.
func (s *Session) Verify(ctx context.Context, phone, code string) error {
	tok, err := s.ex.ConfirmSignup(ctx, phone, code)
	if err != nil {
		return err
	}
	if err := s.tokens.Set(ctx, tok); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	s.log.Infow("account verified", "phone", phone)
	return nil
}

// SignOut удаляет токен.
func (s *Session) SignOut(ctx context.Context) error {
	return s.tokens.Clear(ctx)
}

// Authenticated сообщает, есть ли сохранённый токен.
func (s *Session) Authenticated(ctx context.Context) (bool, error) {
	_, ok, err := s.tokens.Get(ctx)
	return ok, err
}

// exchange — вход по настройкам.
func (s *Session) exchange(ctx context.Context, c Credentials) (string, error) {
	if c.empty() {
		return "", &api.AuthError{Op: "signIn", Err: ErrNoCredentials}
	}
	return s.signIn(ctx, c)
}

func (s *Session) signIn(ctx context.Context, c Credentials) (string, error) {
	tok, err := s.ex.SignIn(ctx, c.Phone, c.Password)
	if err != nil {
		s.log.Warnw("sign-in failed", "phone", c.Phone, "error", err)
		return "", err
	}
	if err := s.tokens.Set(ctx, tok); err != nil {
		return "", &api.AuthError{Op: "signIn", Err: fmt.Errorf("saving auth: %w", err)}
	}
	s.log.Infow("signed in", "phone", c.Phone)
	return tok, nil
}

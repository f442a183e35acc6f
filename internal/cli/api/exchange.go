package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

type signInInput struct {
	Phone    string `form:"phone" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// SignIn обменивает телефон и пароль на токен (POST /auth/sign_in).
// Любая неудача возвращается как AuthError; 401 — ErrInvalidCredentials.
func (c *Client) SignIn(ctx context.Context, phone, password string) (string, error) {
	const op = "signIn"
	if err := checkInput(signInInput{Phone: phone, Password: password}); err != nil {
		return "", err
	}
	req := &request{
		op:     op,
		method: http.MethodPost,
		path:   "/auth/sign_in",
		form:   newForm().add("phone", phone).add("password", password).add("device_name", c.deviceName),
	}
	resp, err := c.send(ctx, req, "")
	if err != nil {
		return "", &AuthError{Op: op, Err: err}
	}
	return tokenFromResponse(op, resp, ErrInvalidCredentials)
}

// Signup — данные регистрации; подтверждение приходит кодом вне канала.
type Signup struct {
	Email                string `form:"email" validate:"required,email"`
	FirstName            string `form:"first_name" validate:"required"`
	LastName             string `form:"last_name" validate:"required"`
	Password             string `form:"password" validate:"required,min=8"`
	PasswordConfirmation string `form:"password_confirmation" validate:"required,eqfield=Password"`
	Phone                string `form:"phone" validate:"required,e164"`
}

// Signup регистрирует аккаунт (POST /auth). Токен не требуется.
func (c *Client) Signup(ctx context.Context, s Signup) error {
	const op = "signup"
	if err := checkInput(s); err != nil {
		return err
	}
	req := &request{
		op:         op,
		method:     http.MethodPost,
		path:       "/auth",
		apiVersion: true,
		form: newForm().
			add("email", s.Email).
			add("first_name", s.FirstName).
			add("last_name", s.LastName).
			add("password", s.Password).
			add("password_confirmation", s.PasswordConfirmation).
			add("phone", s.Phone),
	}
	resp, err := c.send(ctx, req, "")
	if err != nil {
		return err
	}
	return checkResponse(op, resp)
}

type confirmInput struct {
	Phone string `form:"phone" validate:"required,e164"`
	Code  string `form:"confirmation_token" validate:"required,alphanum"`
}

// ConfirmSignup подтверждает регистрацию кодом и возвращает токен из заголовка authorization.
func (c *Client) ConfirmSignup(ctx context.Context, phone, code string) (string, error) {
	const op = "confirmSignup"
	if err := checkInput(confirmInput{Phone: phone, Code: code}); err != nil {
		return "", err
	}
	req := &request{
		op:     op,
		method: http.MethodGet,
		path:   "/auth/confirmation",
		query:  url.Values{"confirmation_token": {code}},
	}
	resp, err := c.send(ctx, req, "")
	if err != nil {
		return "", &AuthError{Op: op, Err: err}
	}
	return tokenFromResponse(op, resp, ErrInvalidCode)
}

// tokenFromResponse достаёт токен из успешного ответа; 401 превращается в rejected.
func tokenFromResponse(op string, resp *response, rejected error) (string, error) {
	if resp.status == http.StatusUnauthorized {
		return "", &AuthError{Op: op, Err: rejected}
	}
	if err := checkResponse(op, resp); err != nil {
		return "", &AuthError{Op: op, Err: err}
	}
	token := bearerToken(resp.header.Get("Authorization"))
	if token == "" {
		return "", &AuthError{Op: op, Err: ErrNoToken}
	}
	return token, nil
}

// IsInvalidCredentials сообщает, что сервер отверг телефон/пароль.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

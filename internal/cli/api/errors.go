package api

import (
	"errors"
	"fmt"

	"WishlistX/internal/validate"
)

var (
	// ErrAuthentication — токен получить не удалось или сервер отклонил его даже после повторного входа.
	ErrAuthentication = errors.New("authentication failed")
	// ErrValidation — некорректный ввод, запрос не отправлялся.
	ErrValidation = errors.New("invalid input")
	// ErrInvalidCredentials — sign-in ответил 401.
	ErrInvalidCredentials = errors.New("invalid phone or password")
	// ErrInvalidCode — код подтверждения отклонён.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrNoToken — успешный ответ без заголовка authorization.
	ErrNoToken = errors.New("no authorization header in response")
	// ErrNoAuthenticator — клиент собран без сессии, а операция требует токен.
	ErrNoAuthenticator = errors.New("client has no authenticator")
)

// AuthError — ошибка аутентификации для операции Op.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + ErrAuthentication.Error()
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrAuthentication, e.Err)
}

func (e *AuthError) Unwrap() error        { return e.Err }
func (e *AuthError) Is(target error) bool { return target == ErrAuthentication }

// RequestError — ответ сервера не 2xx (кроме 401/403) либо success:false.
type RequestError struct {
	Op      string
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request failed with status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: request failed with status %d: %s", e.Op, e.Status, e.Message)
}

// TransportError — сетевая ошибка: запрос не дошёл или ответ не прочитан.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError — ошибка входных данных, обнаруженная до сетевого вызова.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Kind классифицирует результат операции.
type Kind int

const (
	KindNone Kind = iota
	KindAuthentication
	KindRequest
	KindTransport
	KindValidation
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "success"
	case KindAuthentication:
		return "authentication"
	case KindRequest:
		return "request"
	case KindTransport:
		return "transport"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// KindOf возвращает вид ошибки; nil означает успех.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var (
		ae *AuthError
		re *RequestError
		te *TransportError
		ve *ValidationError
	)
	switch {
	case errors.As(err, &ae), errors.Is(err, ErrAuthentication):
		return KindAuthentication
	case errors.As(err, &ve), errors.Is(err, ErrValidation):
		return KindValidation
	case errors.As(err, &re):
		return KindRequest
	case errors.As(err, &te):
		return KindTransport
	default:
		return KindUnknown
	}
}

// Validate проверяет структуру с тегами validate; ошибка — *ValidationError.
func Validate(s any) error { return checkInput(s) }

// checkInput прогоняет структуру через валидатор и превращает результат в ValidationError.
func checkInput(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fe validate.Errors
	if errors.As(err, &fe) && len(fe) > 0 {
		return &ValidationError{Field: fe[0].Field, Message: err.Error()}
	}
	return &ValidationError{Message: err.Error()}
}

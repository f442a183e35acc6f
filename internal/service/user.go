package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"WishlistX/internal/model"
	"WishlistX/internal/repo"
	"WishlistX/internal/validate"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SignupInput — данные регистрации.
type SignupInput struct {
	Email                string `form:"email" validate:"required,email"`
	FirstName            string `form:"first_name" validate:"required"`
	LastName             string `form:"last_name" validate:"required"`
	Password             string `form:"password" validate:"required,min=8"`
	PasswordConfirmation string `form:"password_confirmation" validate:"required,eqfield=Password"`
	Phone                string `form:"phone" validate:"required,e164"`
}

// maxCodeAttempts — сколько раз перевыпускается код при совпадении.
const maxCodeAttempts = 5

// UserService — регистрация, подтверждение телефона и вход.
type UserService struct {
	repo    repo.UserRepository
	log     *zap.SugaredLogger
	newCode func() (string, error)
}

func NewUserService(r repo.UserRepository, log *zap.SugaredLogger) *UserService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &UserService{repo: r, log: log, newCode: confirmationCode}
}

// Register создаёт неподтверждённого пользователя и выпускает код подтверждения.
// Код доставляется вне канала; здесь он только пишется в лог.
func (s *UserService) Register(ctx context.Context, in SignupInput) (*model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validate.Struct(in); err != nil {
		return nil, &InputError{Err: err}
	}
	existing, err := s.repo.GetUserByPhone(ctx, in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhoneTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	code, err := s.issueCode(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.CreateUser(ctx, &model.User{
		Phone:            in.Phone,
		Email:            in.Email,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Password:         string(hash),
		ConfirmationCode: &code,
	})
	if err != nil {
		return nil, err
	}
	s.log.Infow("confirmation code issued", "user_id", user.ID, "phone", user.Phone, "code", code)
	return user, nil
}

// Confirm подтверждает телефон по коду.
func (s *UserService) Confirm(ctx context.Context, code string) (*model.User, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidCode
	}
	user, err := s.repo.GetUserByConfirmationCode(ctx, code)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCode
	}
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkConfirmed(ctx, user.ID); err != nil {
		return nil, err
	}
	user.Confirmed = true
	return user, nil
}

// Login проверяет телефон и пароль подтверждённого пользователя.
func (s *UserService) Login(ctx context.Context, phone, password string) (*model.User, error) {
	user, err := s.repo.GetUserByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Confirmed {
		return nil, ErrNotConfirmed
	}
	return user, nil
}

// issueCode выпускает код, не совпадающий ни с одним ожидающим подтверждения.
func (s *UserService) issueCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := s.newCode()
		if err != nil {
			return "", err
		}
		_, err = s.repo.GetUserByConfirmationCode(ctx, code)
		if errors.Is(err, repo.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
		s.log.Debugw("confirmation code collision, regenerating", "attempt", i+1)
	}
	return "", ErrNoFreeCode
}

// confirmationCode — шестизначный код.
func confirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

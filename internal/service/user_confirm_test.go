package service

import (
	"context"
	"strings"
	"testing"

	"WishlistX/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func newUserServiceDB(t *testing.T) *UserService {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:s_" + name + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"}
	db, err := gorm.Open(dial, &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))
	return NewUserService(repo.NewUserRepository(db), nil)
}

// второй пользователь, которому выпал чужой ожидающий код, получает другой код
// и подтверждает только свой аккаунт
func TestUserService_ConfirmDoesNotCrossAccounts(t *testing.T) {
	ctx := context.Background()
	svc := newUserServiceDB(t)
	codes := []string{"123456", "123456", "777777"}
	svc.newCode = func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}

	a, err := svc.Register(ctx, validSignup())
	require.NoError(t, err)
	inB := validSignup()
	inB.Phone = "+491701234568"
	b, err := svc.Register(ctx, inB)
	require.NoError(t, err)
	require.NotNil(t, b.ConfirmationCode)
	assert.Equal(t, "777777", *b.ConfirmationCode)

	got, err := svc.Confirm(ctx, "777777")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	got, err = svc.Confirm(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	// код одноразовый
	_, err = svc.Confirm(ctx, "123456")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

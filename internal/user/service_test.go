package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHashesPassword(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	created, err := svc.Register(User{
		Email:     "ada@example.com",
		Password:  "correct horse",
		FirstName: "Ada",
		LastName:  "Obi",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", created.Password)
	assert.True(t, looksLikeBcrypt(created.Password))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	_, err := svc.Register(User{Email: "ada@example.com", Password: "pw", FirstName: "Ada", LastName: "Obi"})
	require.NoError(t, err)

	_, err = svc.Register(User{Email: "ada@example.com", Password: "pw2", FirstName: "A", LastName: "O"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	_, err := svc.Register(User{Email: "ada@example.com", Password: "correct horse", FirstName: "Ada", LastName: "Obi"})
	require.NoError(t, err)

	u, err := svc.Authenticate("ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)

	_, err = svc.Authenticate("ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// Update must not double-hash a password that is already a bcrypt digest.
func TestUpdateKeepsExistingHash(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	created, err := svc.Register(User{Email: "ada@example.com", Password: "correct horse", FirstName: "Ada", LastName: "Obi"})
	require.NoError(t, err)

	created.Phone = "08012345678"
	updated, err := svc.Update(created.ID, created)
	require.NoError(t, err)
	assert.Equal(t, created.Password, updated.Password)

	_, err = svc.Authenticate("ada@example.com", "correct horse")
	assert.NoError(t, err)
}

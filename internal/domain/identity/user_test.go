package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("Alice.Dev", "sup3rsecret")
	require.NoError(t, err)

	assert.Equal(t, "alice.dev", user.Username, "usernames are normalized to lowercase")
	assert.Equal(t, UserStatusActive, user.Status)
	assert.NotEqual(t, "sup3rsecret", user.PasswordHash)
	assert.True(t, user.VerifyPassword("sup3rsecret"))
	assert.False(t, user.VerifyPassword("wrong"))

	events := user.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeUserRegistered, events[0].EventType())
}

func TestNewUser_Validation(t *testing.T) {
	cases := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "sup3rsecret"},
		{"short username", "ab", "sup3rsecret"},
		{"bad characters", "alice dev!", "sup3rsecret"},
		{"empty password", "alice", ""},
		{"short password", "alice", "a1"},
		{"no digit in password", "alice", "onlyletters"},
		{"no letter in password", "alice", "12345678"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(tc.username, tc.password)
			assert.Error(t, err)
		})
	}
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser("alice", "oldpass1")
	require.NoError(t, err)

	err = user.ChangePassword("wrongpass", "newpass1")
	assert.Error(t, err)

	err = user.ChangePassword("oldpass1", "newpass1")
	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("newpass1"))
	assert.False(t, user.VerifyPassword("oldpass1"))
}

func TestUser_LoginFailureLocksAccount(t *testing.T) {
	user, err := NewUser("alice", "sup3rsecret")
	require.NoError(t, err)

	locked := user.RecordLoginFailure(3, time.Hour)
	assert.False(t, locked)
	locked = user.RecordLoginFailure(3, time.Hour)
	assert.False(t, locked)
	locked = user.RecordLoginFailure(3, time.Hour)
	assert.True(t, locked)

	assert.True(t, user.IsLocked())
	assert.False(t, user.CanLogin())
}

func TestUser_LockExpires(t *testing.T) {
	user, err := NewUser("alice", "sup3rsecret")
	require.NoError(t, err)

	user.RecordLoginFailure(1, -time.Minute)
	assert.False(t, user.IsLocked(), "an expired lock no longer blocks login")
	assert.True(t, user.CanLogin())
}

func TestUser_LoginSuccessResetsFailures(t *testing.T) {
	user, err := NewUser("alice", "sup3rsecret")
	require.NoError(t, err)

	user.RecordLoginFailure(5, time.Hour)
	user.RecordLoginSuccess("192.0.2.1")

	assert.Equal(t, 0, user.FailedAttempts)
	assert.Equal(t, "192.0.2.1", user.LastLoginIP)
	require.NotNil(t, user.LastLoginAt)
}

func TestUser_Deactivate(t *testing.T) {
	user, err := NewUser("alice", "sup3rsecret")
	require.NoError(t, err)

	require.NoError(t, user.Deactivate())
	assert.False(t, user.CanLogin())
	assert.Error(t, user.Deactivate())
}

func TestUser_SetEmail(t *testing.T) {
	user, err := NewUser("alice", "sup3rsecret")
	require.NoError(t, err)

	require.NoError(t, user.SetEmail("Alice@Example.COM"))
	assert.Equal(t, "alice@example.com", user.Email)

	assert.Error(t, user.SetEmail("not-an-email"))
}

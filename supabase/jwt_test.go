package supabase

import (
	"net/http/httptest"
	"testing"
	"time"

	"clementus360/daily-tracker/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFromToken_Verified(t *testing.T) {
	token, err := GenerateTestJWT("secret", userID, "me@example.com", time.Hour)
	require.NoError(t, err)

	user, err := UserFromToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "me@example.com", user.Email)

	_, err = UserFromToken(token, "other-secret")
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)
}

func TestUserFromToken_Unverified(t *testing.T) {
	token, err := GenerateTestJWT("whatever", userID, "", time.Hour)
	require.NoError(t, err)

	user, err := UserFromToken(token, "")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
}

func TestUserFromToken_Rejects(t *testing.T) {
	expired, err := GenerateTestJWT("secret", userID, "", -time.Hour)
	require.NoError(t, err)
	_, err = UserFromToken(expired, "secret")
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)

	notUUID, err := GenerateTestJWT("secret", "alice", "", time.Hour)
	require.NoError(t, err)
	_, err = UserFromToken(notUUID, "secret")
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)

	_, err = UserFromToken("not-a-jwt", "")
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	_, err := TokenFromRequest(r)
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)

	r.Header.Set("Authorization", "Basic abc")
	_, err = TokenFromRequest(r)
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)

	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, err := TokenFromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		parsed, err := ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	_, err := ParseRole("moderator")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestRole_ZeroValueIsInvalid(t *testing.T) {
	var r Role
	assert.False(t, r.Valid())

	_, err := json.Marshal(struct {
		Role Role `json:"role"`
	}{})
	assert.Error(t, err)
}

func TestRole_JSON(t *testing.T) {
	b, err := json.Marshal(map[string]Role{"role": RoleOrganizer})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"organizer"}`, string(b))

	var out struct {
		Role Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"admin"}`), &out))
	assert.Equal(t, RoleAdmin, out.Role)

	assert.Error(t, json.Unmarshal([]byte(`{"role":"root"}`), &out))
}

func TestRole_Scan(t *testing.T) {
	var r Role
	require.NoError(t, r.Scan([]byte("organizer")))
	assert.Equal(t, RoleOrganizer, r)
	require.NoError(t, r.Scan("user"))
	assert.Equal(t, RoleUser, r)
	assert.Error(t, r.Scan(int64(1)))

	v, err := RoleAdmin.Value()
	require.NoError(t, err)
	assert.Equal(t, "admin", v)
}

func TestChoices(t *testing.T) {
	assert.True(t, City("lahore").Valid())
	assert.True(t, City("dera ghazi khan").Valid())
	assert.False(t, City("Lahore").Valid())
	assert.True(t, Cause("water").Valid())
	assert.False(t, Cause("").Valid())
	assert.True(t, CategoryGeneral.Valid())
	assert.True(t, UpdateInfo.Valid())
	assert.True(t, StatusPending.Valid())
	assert.False(t, ProtestStatus("archived").Valid())
}

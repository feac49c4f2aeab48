package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
)

func TestUserCreateIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)

	in := CreateUserInput{Email: "new@test.local", Password: "secret123", Username: "newbie"}

	_, err := env.users.Create(env.operatorID, in)
	assert.ErrorIs(t, err, ErrForbidden)

	profile, err := env.users.Create(env.adminID, in)
	require.NoError(t, err)
	assert.Equal(t, "new@test.local", profile.Email)

	// A user created without an explicit role gets viewer capabilities.
	perms, err := env.auth.Permissions(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.Permissions{}, perms)
}

func TestUserCreateDuplicateEmailLeavesNoOrphan(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.Create(env.adminID, CreateUserInput{
		Email: "operator@test.local", Password: "secret123", Username: "operator2",
	})
	require.ErrorIs(t, err, ErrDuplicateEmail)

	var count int64
	require.NoError(t, env.db.Model(&entity.Profile{}).Where("username = ?", "operator2").Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateRoleUpsertsFlags(t *testing.T) {
	env := newTestEnv(t)

	role, err := env.users.UpdateRole(env.adminID, env.viewerID, entity.RoleManager, true, true, true, false)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, role.Role)
	assert.True(t, role.CanCheckin)
	assert.False(t, role.CanCheckout)

	perms, err := env.auth.Permissions(env.viewerID)
	require.NoError(t, err)
	assert.True(t, perms.CanEdit)
	assert.True(t, perms.CanCheckin)
	assert.False(t, perms.CanCheckout)
	assert.False(t, perms.IsAdmin)
}

func TestUpdateRoleUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.UpdateRole(env.adminID, "no-such-id", entity.RoleViewer, true, false, false, false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListUsersIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.List(env.viewerID)
	assert.ErrorIs(t, err, ErrForbidden)

	profiles, err := env.users.List(env.adminID)
	require.NoError(t, err)
	assert.Len(t, profiles, 3)
}

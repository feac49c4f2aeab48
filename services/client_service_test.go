package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
)

func TestClientCreateGating(t *testing.T) {
	env := newTestEnv(t)

	c := entity.Client{Name: "Viacao Nova", CNPJ: "11.222.333/0001-44"}
	assert.ErrorIs(t, env.clients.Create(env.viewerID, &c), ErrForbidden)
	require.NoError(t, env.clients.Create(env.operatorID, &c))
	assert.NotEmpty(t, c.ID)
}

func TestClientDuplicateCNPJ(t *testing.T) {
	env := newTestEnv(t)

	dup := entity.Client{Name: "Outro Nome", CNPJ: env.client.CNPJ}
	assert.ErrorIs(t, env.clients.Create(env.operatorID, &dup), ErrDuplicateCNPJ)
}

func TestClientUpdateIgnoresNonEditableKeys(t *testing.T) {
	env := newTestEnv(t)

	updated, err := env.clients.Update(env.operatorID, env.client.ID, map[string]any{
		"name":       "Transportes Ipiranga LTDA",
		"ID":         "hijacked",
		"id":         "hijacked",
		"CreatedAt":  "2001-01-01",
		"created_at": "2001-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, env.client.ID, updated.ID)
	assert.Equal(t, "Transportes Ipiranga LTDA", updated.Name)
}

func TestClientDeleteIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)

	assert.ErrorIs(t, env.clients.Delete(env.operatorID, env.client.ID), ErrForbidden)
	require.NoError(t, env.clients.Delete(env.adminID, env.client.ID))

	_, err := env.clients.Get(env.client.ID)
	assert.Error(t, err)
}

func TestClientListSearch(t *testing.T) {
	env := newTestEnv(t)

	other := entity.Client{Name: "Logistica Sul", CNPJ: "55.666.777/0001-88"}
	require.NoError(t, env.db.Create(&other).Error)

	byName, err := env.clients.List("ipiranga")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, env.client.ID, byName[0].ID)

	// Search by cnpj digits ignores the stored formatting.
	byCNPJ, err := env.clients.List("55666777")
	require.NoError(t, err)
	require.Len(t, byCNPJ, 1)
	assert.Equal(t, other.ID, byCNPJ[0].ID)
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
)

func TestAggregateEmptySet(t *testing.T) {
	s := Aggregate(nil)

	assert.Equal(t, 0, s.Total)
	require.Len(t, s.ByStatus, 4)
	for status, n := range s.ByStatus {
		assert.Equal(t, 0, n, "status %s", status)
	}
	assert.Empty(t, s.ByCreator)
}

func TestAggregateCounts(t *testing.T) {
	vehicles := []entity.Vehicle{
		{Status: entity.StatusAwaitingDropoff, CreatedBy: "u1"},
		{Status: entity.StatusCheckedIn, CreatedBy: "u1"},
		{Status: entity.StatusCheckedIn, CreatedBy: "u2"},
		{Status: entity.StatusCheckedOut, CreatedBy: ""},
	}

	s := Aggregate(vehicles)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.ByStatus[entity.StatusAwaitingDropoff])
	assert.Equal(t, 2, s.ByStatus[entity.StatusCheckedIn])
	assert.Equal(t, 1, s.ByStatus[entity.StatusCheckedOut])
	assert.Equal(t, 0, s.ByStatus[entity.StatusCancelled])

	assert.Equal(t, 2, s.ByCreator["u1"])
	assert.Equal(t, 1, s.ByCreator["u2"])
	assert.Equal(t, 1, s.ByCreator["unknown"])

	total := 0
	for _, n := range s.ByStatus {
		total += n
	}
	assert.Equal(t, s.Total, total)
}

func TestReportFilters(t *testing.T) {
	env := newTestEnv(t)

	other := entity.Client{Name: "Outro Cliente", CNPJ: "98.765.432/0001-10"}
	require.NoError(t, env.db.Create(&other).Error)

	env.seedVehicle(t, "AAA1111", entity.StatusCheckedIn)
	env.seedVehicle(t, "BBB2222", entity.StatusCheckedOut)
	v := entity.Vehicle{ClientID: other.ID, Plate: "CCC3333", Status: entity.StatusAwaitingDropoff, CreatedBy: env.adminID}
	require.NoError(t, env.db.Create(&v).Error)

	all, err := env.reports.Build("", "")
	require.NoError(t, err)
	assert.Equal(t, 3, all.Summary.Total)

	byClient, err := env.reports.Build(env.client.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, byClient.Summary.Total)

	byCreator, err := env.reports.Build("", env.adminID)
	require.NoError(t, err)
	assert.Equal(t, 1, byCreator.Summary.Total)
}

func TestRenderPDFProducesDocument(t *testing.T) {
	env := newTestEnv(t)
	env.seedVehicle(t, "DDD4444", entity.StatusCheckedIn)

	report, err := env.reports.Build("", "")
	require.NoError(t, err)

	pdf, err := env.reports.RenderPDF(report)
	require.NoError(t, err)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

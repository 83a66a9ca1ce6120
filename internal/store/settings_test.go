package store

import (
	"errors"
	"sync"
	"testing"

	"portfoliohub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProjectPhases_ReplacesWholesale(t *testing.T) {
	s := New(WithSeed(BaseSeed()))

	phases := []model.ProjectPhase{
		{ID: "a", Name: "Discovery", Order: 1, IsActive: true},
		{ID: "b", Name: "Delivery", Order: 2, IsActive: true},
	}
	s.UpdateProjectPhases(phases)

	phases[0].Name = "mutated by caller"
	assert.Equal(t, "Discovery", s.ProjectPhases()[0].Name)
	assert.Len(t, s.ProjectPhases(), 2)
}

func TestUpdateColumnConfig(t *testing.T) {
	s := New(WithSeed(BaseSeed()))

	s.UpdateColumnConfig([]model.ColumnConfig{{Key: "status", Label: "Status", Visible: true, Order: 1}})

	assert.Equal(t, []model.ColumnConfig{{Key: "status", Label: "Status", Visible: true, Order: 1}}, s.ColumnConfig())
}

func TestUpdateFiscalConfig(t *testing.T) {
	s := New(WithSeed(BaseSeed()))
	cfg := DefaultFiscalConfig()
	cfg.FiscalYear = 2025
	cfg.CurrentQuarter = 3

	s.UpdateFiscalConfig(cfg)

	assert.Equal(t, cfg, s.FiscalConfig())
	assert.Equal(t, cfg, s.Settings().FiscalConfig)
}

func TestMutateColumnConfig_ConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	for round := 0; round < 50; round++ {
		s := New(WithSeed(BaseSeed()))
		before := s.ColumnConfig()

		var wg sync.WaitGroup
		for i := range before {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, _, err := s.MutateColumnConfig(func(cols []model.ColumnConfig) ([]model.ColumnConfig, bool, error) {
					cols[i].Visible = !cols[i].Visible
					return cols, true, nil
				})
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		after := s.ColumnConfig()
		for i := range before {
			require.Equal(t, !before[i].Visible, after[i].Visible, "round %d column %s", round, before[i].Key)
		}
	}
}

func TestMutateColumnConfig_NoWriteOnErrorOrUnchanged(t *testing.T) {
	s := New(WithSeed(BaseSeed()))
	before := s.ColumnConfig()
	boom := errors.New("boom")

	out, changed, err := s.MutateColumnConfig(func(cols []model.ColumnConfig) ([]model.ColumnConfig, bool, error) {
		cols[0].Visible = !cols[0].Visible
		return cols, true, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, changed)
	assert.Equal(t, before, out)
	assert.Equal(t, before, s.ColumnConfig())

	_, changed, err = s.MutateColumnConfig(func(cols []model.ColumnConfig) ([]model.ColumnConfig, bool, error) {
		cols[0].Label = "changed"
		return cols, false, nil
	})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before, s.ColumnConfig())
}

func TestMutateProjectPhases(t *testing.T) {
	s := New(WithSeed(BaseSeed()))

	out, changed, err := s.MutateProjectPhases(func(phases []model.ProjectPhase) ([]model.ProjectPhase, bool, error) {
		return phases[:2], true, nil
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Len(t, out, 2)
	assert.Equal(t, out, s.ProjectPhases())
}

func TestMutateFiscalConfig(t *testing.T) {
	s := New(WithSeed(BaseSeed()))
	boom := errors.New("boom")

	_, err := s.MutateFiscalConfig(func(cfg model.FiscalConfig) (model.FiscalConfig, error) {
		cfg.FiscalYear = 1999
		return cfg, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2024, s.FiscalConfig().FiscalYear)

	cfg, err := s.MutateFiscalConfig(func(cfg model.FiscalConfig) (model.FiscalConfig, error) {
		cfg.CurrentQuarter = 3
		return cfg, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.CurrentQuarter)
	assert.Equal(t, cfg, s.FiscalConfig())
}

package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/domain"
	"github.com/velo-paris-dashboard/internal/pkg/errors"
	"github.com/velo-paris-dashboard/internal/usecase"
	"github.com/velo-paris-dashboard/internal/usecase/dto"
)

func newDashboardUseCase() *usecase.DashboardUseCase {
	table := sampleTable()
	return usecase.NewDashboardUseCase(
		usecase.NewDatasetUseCase(table, zap.NewNop()),
		newViewUseCase(table),
		zap.NewNop(),
	)
}

func TestDashboardUseCase_Build(t *testing.T) {
	uc := newDashboardUseCase()
	ctx := context.Background()

	t.Run("introduction by default", func(t *testing.T) {
		page, err := uc.Build(ctx, dto.DashboardRequest{})
		require.NoError(t, err)

		assert.Equal(t, domain.PageIntroduction, page.Page)
		assert.Equal(t, "Introduction", page.Title)
		require.Len(t, page.Pages, 5)
		assert.True(t, page.Pages[0].Selected)
		assert.Len(t, page.Contributors, 3)
		assert.Equal(t, 6, page.Summary.Rows)
		assert.Nil(t, page.Preview)
		assert.Nil(t, page.Views)
	})

	t.Run("exploration shows the first rows", func(t *testing.T) {
		page, err := uc.Build(ctx, dto.DashboardRequest{Page: "exploration"})
		require.NoError(t, err)

		assert.Equal(t, "Exploration des données", page.Title)
		require.NotNil(t, page.Preview)
		assert.Len(t, page.Preview.Rows, 6)
	})

	t.Run("visualisation without selection", func(t *testing.T) {
		page, err := uc.Build(ctx, dto.DashboardRequest{Page: "visualisation"})
		require.NoError(t, err)

		require.NotNil(t, page.Views)
		assert.Equal(t, dto.RenderNone, page.Views.Visualization.Kind)
		assert.Equal(t, dto.RenderNone, page.Views.Period.Kind)

		require.Len(t, page.Visualizations, 5)
		assert.True(t, page.Visualizations[0].Selected)
		assert.Equal(t, "Choisir un graphique", page.Visualizations[0].Label)
		for _, p := range page.Periods {
			assert.False(t, p.Selected, p.Value)
		}
	})

	t.Run("visualisation with both selections", func(t *testing.T) {
		page, err := uc.Build(ctx, dto.DashboardRequest{
			Page:        "visualisation",
			ViewRequest: dto.ViewRequest{Visualization: "counter-map", Period: "week"},
		})
		require.NoError(t, err)

		assert.Equal(t, dto.RenderMap, page.Views.Visualization.Kind)
		assert.Equal(t, dto.RenderChart, page.Views.Period.Kind)
		assert.True(t, page.Visualizations[3].Selected)
		assert.True(t, page.Periods[1].Selected)
		assert.Equal(t, "Semaine", page.Periods[1].Label)
	})

	t.Run("unknown page", func(t *testing.T) {
		_, err := uc.Build(ctx, dto.DashboardRequest{Page: "admin"})
		assert.ErrorIs(t, err, errors.ErrPageNotFound)
	})

	t.Run("unknown visualization", func(t *testing.T) {
		_, err := uc.Build(ctx, dto.DashboardRequest{
			Page:        "visualisation",
			ViewRequest: dto.ViewRequest{Visualization: "pie"},
		})
		assert.ErrorIs(t, err, errors.ErrInvalidView)
	})
}

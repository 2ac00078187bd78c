package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/domain"
	"github.com/velo-paris-dashboard/internal/pkg/errors"
	"github.com/velo-paris-dashboard/internal/usecase/dto"
)

// Contributor - автор проекта в боковой панели
type Contributor struct {
	Name string
	URL  string
}

var Contributors = []Contributor{
	{Name: "Cintyha Dina", URL: "https://www.linkedin.com/in/cintyha-dina-98396a97/"},
	{Name: "Pascal Paineau", URL: "https://www.linkedin.com/in/papaineau72/"},
	{Name: "Stephane Moisan", URL: "https://www.exemple.com"},
}

// Option - пункт выпадающего списка или радиокнопки
type Option struct {
	Value    string
	Label    string
	Selected bool
}

var visualizationLabels = map[domain.VisualizationKind]string{
	domain.VisualizationNone:           "Choisir un graphique",
	domain.VisualizationInstallsByYear: "Evolution de l'installation des compteurs par année",
	domain.VisualizationTrackLength:    "Evolution du nombre de kilomètres aménagés",
	domain.VisualizationCounterMap:     "Répartition des compteurs dans la ville",
	domain.VisualizationThresholdMap:   "Affichage des compteurs selon le nombre de passage",
}

var periodLabels = map[domain.PeriodKind]string{
	domain.PeriodDay:   "Jour",
	domain.PeriodWeek:  "Semaine",
	domain.PeriodMonth: "Mois",
	domain.PeriodYear:  "Année",
}

// DashboardPage - всё, что нужно шаблону страницы
type DashboardPage struct {
	Page           domain.Page
	Title          string
	Pages          []Option
	Contributors   []Contributor
	Summary        *domain.DatasetSummary
	Preview        *dto.PreviewResponse
	Visualizations []Option
	Periods        []Option
	Views          *dto.ViewPairResponse
}

// DashboardUseCase собирает страницу дашборда
type DashboardUseCase struct {
	dataset *DatasetUseCase
	views   *ViewUseCase
	logger  *zap.Logger
}

func NewDashboardUseCase(dataset *DatasetUseCase, views *ViewUseCase, logger *zap.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		dataset: dataset,
		views:   views,
		logger:  logger,
	}
}

func (uc *DashboardUseCase) Build(ctx context.Context, req dto.DashboardRequest) (*DashboardPage, error) {
	page, ok := domain.ParsePage(req.Page)
	if !ok {
		return nil, errors.ErrPageNotFound.WithDetails(map[string]interface{}{"page": req.Page})
	}

	out := &DashboardPage{
		Page:         page,
		Title:        page.Title(),
		Pages:        pageOptions(page),
		Contributors: Contributors,
		Summary:      uc.dataset.Summary(ctx),
	}

	switch page {
	case domain.PageExploration:
		out.Preview = uc.dataset.Preview(ctx, dto.PreviewRequest{Limit: DefaultPreviewLimit})

	case domain.PageVisualisation:
		views, err := uc.views.GetPair(ctx, req.ViewRequest)
		if err != nil {
			return nil, err
		}
		out.Views = views
		out.Visualizations = visualizationOptions(req.Visualization)
		out.Periods = periodOptions(req.Period)
	}

	return out, nil
}

func pageOptions(current domain.Page) []Option {
	opts := make([]Option, len(domain.Pages))
	for i, p := range domain.Pages {
		opts[i] = Option{Value: string(p), Label: p.Title(), Selected: p == current}
	}
	return opts
}

func visualizationOptions(selected string) []Option {
	if selected == "" {
		selected = string(domain.VisualizationNone)
	}
	opts := make([]Option, len(domain.VisualizationKinds))
	for i, k := range domain.VisualizationKinds {
		opts[i] = Option{Value: string(k), Label: visualizationLabels[k], Selected: string(k) == selected}
	}
	return opts
}

// periodOptions: по умолчанию ничего не выбрано
func periodOptions(selected string) []Option {
	opts := make([]Option, len(domain.PeriodKinds))
	for i, k := range domain.PeriodKinds {
		opts[i] = Option{Value: string(k), Label: periodLabels[k], Selected: string(k) == selected}
	}
	return opts
}

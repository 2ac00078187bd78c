package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/velo-paris-dashboard/internal/aggregator"
	"github.com/velo-paris-dashboard/internal/domain"
	"github.com/velo-paris-dashboard/internal/usecase/dto"
)

// Параметры карт
const (
	counterMapZoom   = 11
	thresholdMapZoom = 13
	thresholdMinZoom = 12
	thresholdMaxZoom = 18

	// радиус круга = сумма / radiusDivisor
	radiusDivisor = 100000

	colorHigh = "red"
	colorLow  = "green"

	counterTooltip = "Cliquez ici pour voir le nom du compteur"
	totalTooltip   = "Cliquez ici pour voir le nombre de passage"
)

// Цвета столбцов годового графика: по кварталу, по три месяца
var quarterColors = []string{"blue", "green", "yellow", "orange"}

// Presenter превращает представление в декларативное описание графика или карты
type Presenter struct {
	printer *message.Printer
}

func NewPresenter() *Presenter {
	return &Presenter{printer: message.NewPrinter(language.French)}
}

// Present - исчерпывающий разбор всех вариантов domain.View
func (p *Presenter) Present(view domain.View) (*dto.ViewResponse, error) {
	resp := &dto.ViewResponse{Key: view.Key(), Kind: dto.RenderNone}

	switch v := view.(type) {
	case domain.NoSelection:
		return resp, nil

	case domain.InstallsByYearView:
		labels := make([]string, len(v.Counts))
		values := make([]float64, len(v.Counts))
		for i, c := range v.Counts {
			labels[i] = strconv.Itoa(c.Year)
			values[i] = float64(c.Count)
		}
		setChart(resp, &dto.ChartSpec{
			Type:   dto.ChartBar,
			Title:  "Nombre de compteurs installés chaque année",
			XLabel: "Année d'installation",
			YLabel: "Nombre de compteurs",
			Labels: labels,
			Series: []dto.Series{{Name: "Compteurs", Values: values}},
		})

	case domain.TrackLengthView:
		labels := make([]string, len(v.Rows))
		values := make([]float64, len(v.Rows))
		for i, r := range v.Rows {
			labels[i] = strconv.Itoa(r.Year)
			values[i] = r.Km
		}
		setChart(resp, &dto.ChartSpec{
			Type:   dto.ChartBar,
			Title:  "Evolution du nombre de kilomètres aménagés",
			XLabel: "Année",
			YLabel: "Nombre de kilomètres aménagés",
			Labels: labels,
			Series: []dto.Series{{Name: "Linéaire en km", Values: values, Colors: []string{"blue"}}},
		})

	case domain.CounterMapView:
		markers := make([]dto.Marker, 0, len(v.Counters))
		for _, c := range v.Counters {
			// счётчик без координат на карту не попадает
			if c.Location == nil {
				continue
			}
			markers = append(markers, dto.Marker{
				Name:    c.Name,
				Lat:     c.Location.Lat,
				Lon:     c.Location.Lon,
				Popup:   c.Name,
				Tooltip: counterTooltip,
			})
		}
		setMap(resp, "Répartition des compteurs dans la ville", &dto.MapSpec{
			Center:  domain.ParisCenter,
			Zoom:    counterMapZoom,
			Markers: markers,
		})

	case domain.ThresholdMapView:
		circles := make([]dto.CircleMarker, len(v.Counters))
		for i, c := range v.Counters {
			traffic := aggregator.ClassifyThreshold(c.Total, v.Threshold)
			circles[i] = dto.CircleMarker{
				Name:    c.Name,
				Lat:     c.Location.Lat,
				Lon:     c.Location.Lon,
				Radius:  float64(c.Total) / radiusDivisor,
				Color:   trafficColor(traffic),
				Traffic: traffic,
				Total:   c.Total,
				Popup:   p.FormatCount(c.Total),
				Tooltip: totalTooltip,
			}
		}
		threshold := v.Threshold
		setMap(resp, "Affichage des compteurs selon le nombre de passage", &dto.MapSpec{
			Center:    domain.ParisCenter,
			Zoom:      thresholdMapZoom,
			MinZoom:   thresholdMinZoom,
			MaxZoom:   thresholdMaxZoom,
			Circles:   circles,
			Threshold: &threshold,
		})

	case domain.HourOfDayView:
		labels := make([]string, len(v.Means))
		values := make([]float64, len(v.Means))
		for i, m := range v.Means {
			labels[i] = m.Time
			values[i] = m.Mean
		}
		setChart(resp, &dto.ChartSpec{
			Type:   dto.ChartBar,
			Title:  "Sur une journée",
			XLabel: "Heure de comptage",
			YLabel: "Moyenne des passages",
			Labels: labels,
			Series: []dto.Series{{Name: "Comptage horaire", Values: values, Colors: []string{"green"}}},
		})

	case domain.MonthOfAprilView:
		labels, values := dateSeries(v.Days)
		setChart(resp, &dto.ChartSpec{
			Type:   dto.ChartLine,
			Title:  "Sur le mois d'avril 2023",
			XLabel: "Jour",
			YLabel: "Nombre de comptage",
			Labels: labels,
			Series: []dto.Series{{Name: "Comptage horaire", Values: values}},
		})

	case domain.YearView:
		labels := make([]string, len(v.Months))
		values := make([]float64, len(v.Months))
		colors := make([]string, len(v.Months))
		for i, m := range v.Months {
			labels[i] = m.Label
			values[i] = float64(m.Count)
			colors[i] = quarterColors[(i/3)%len(quarterColors)]
		}
		setChart(resp, &dto.ChartSpec{
			Type:   dto.ChartBar,
			Title:  "Sur une année",
			XLabel: "Mois",
			YLabel: "Nombre de comptage",
			Labels: labels,
			Series: []dto.Series{{Name: "Comptage horaire", Values: values, Colors: colors}},
		})

	case domain.FirstWeekOfJuneView:
		labels := make([]string, len(v.Weekdays))
		values := make([]float64, len(v.Weekdays))
		for i, w := range v.Weekdays {
			labels[i] = w.Name
			values[i] = float64(w.Count)
		}
		setChart(resp, &dto.ChartSpec{
			Type:   dto.ChartBar,
			Title:  "Sur la première semaine de juin",
			XLabel: "Jours de la semaine",
			YLabel: "Nombre de passages de vélos",
			Labels: labels,
			Series: []dto.Series{{Name: "Comptage horaire", Values: values, Colors: []string{"blue"}}},
		})

	default:
		return nil, fmt.Errorf("unsupported view %T", view)
	}

	data, err := json.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("marshal view %s: %w", view.Key(), err)
	}
	resp.Data = data

	return resp, nil
}

// FormatCount - число с французской группировкой разрядов
func (p *Presenter) FormatCount(n int64) string {
	return p.printer.Sprintf("%d", n)
}

func setChart(resp *dto.ViewResponse, chart *dto.ChartSpec) {
	resp.Kind = dto.RenderChart
	resp.Title = chart.Title
	resp.Chart = chart
}

func setMap(resp *dto.ViewResponse, title string, m *dto.MapSpec) {
	resp.Kind = dto.RenderMap
	resp.Title = title
	resp.Map = m
}

func trafficColor(t domain.Traffic) string {
	if t == domain.TrafficHigh {
		return colorHigh
	}
	return colorLow
}

func dateSeries(days []domain.DateCount) ([]string, []float64) {
	labels := make([]string, len(days))
	values := make([]float64, len(days))
	for i, d := range days {
		labels[i] = d.Date.String()
		values[i] = float64(d.Count)
	}
	return labels, values
}

package dto

import "github.com/velo-paris-dashboard/internal/domain"

// PreviewResponse - первые строки загруженной таблицы
type PreviewResponse struct {
	Rows  []domain.Reading `json:"rows"`
	Total int              `json:"total"`
}

// HealthResponse - состояние сервиса и зависимостей
type HealthResponse struct {
	Status         string            `json:"status"`
	DatasetVersion string            `json:"dataset_version"`
	Rows           int               `json:"rows"`
	Dependencies   map[string]string `json:"dependencies,omitempty"`
}

// ViewPairResponse - оба выбора страницы визуализации
type ViewPairResponse struct {
	Visualization *ViewResponse `json:"visualization"`
	Period        *ViewResponse `json:"period"`
}

// WarmupResponse - опубликованные запросы на прогрев кеша
type WarmupResponse struct {
	DatasetVersion string         `json:"dataset_version"`
	Requests       []WarmupTicket `json:"requests"`
}

type WarmupTicket struct {
	RequestID string `json:"request_id"`
	Kind      string `json:"kind"`
}

// CounterTotalsResponse - суммы по счётчикам и порог (75-й процентиль)
type CounterTotalsResponse struct {
	// nil, если счётчиков нет; в JSON - null
	Threshold *float64            `json:"threshold"`
	Counters  []ClassifiedCounter `json:"counters"`
}

type ClassifiedCounter struct {
	domain.CounterTotal
	Traffic domain.Traffic `json:"traffic"`
}

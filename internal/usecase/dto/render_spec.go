package dto

import (
	"encoding/json"

	"github.com/velo-paris-dashboard/internal/domain"
)

// RenderKind - чем рисовать представление на клиенте
type RenderKind string

const (
	RenderNone  RenderKind = "none"
	RenderChart RenderKind = "chart"
	RenderMap   RenderKind = "map"
)

// ViewResponse - декларативное описание одного представления.
// Заполнено ровно одно из Chart/Map, либо ни одного для RenderNone.
type ViewResponse struct {
	Key   string     `json:"key"`
	Kind  RenderKind `json:"kind"`
	Title string     `json:"title,omitempty"`
	Chart *ChartSpec `json:"chart,omitempty"`
	Map   *MapSpec   `json:"map,omitempty"`
	// Data - агрегат, из которого построено представление
	Data json.RawMessage `json:"data,omitempty"`
}

type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
)

// ChartSpec - упорядоченные пары (категория, значение) для bar/line графика
type ChartSpec struct {
	Type   ChartType `json:"type"`
	Title  string    `json:"title"`
	XLabel string    `json:"x_label,omitempty"`
	YLabel string    `json:"y_label,omitempty"`
	Labels []string  `json:"labels"`
	Series []Series  `json:"series"`
}

// Series - значения по Labels; Colors либо один цвет, либо по цвету на столбец
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors,omitempty"`
}

// MapSpec - карта с центром в Париже
type MapSpec struct {
	Center    domain.Point   `json:"center"`
	Zoom      int            `json:"zoom"`
	MinZoom   int            `json:"min_zoom,omitempty"`
	MaxZoom   int            `json:"max_zoom,omitempty"`
	Markers   []Marker       `json:"markers,omitempty"`
	Circles   []CircleMarker `json:"circles,omitempty"`
	Threshold *float64       `json:"threshold,omitempty"`
}

// Marker - метка счётчика
type Marker struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Popup   string  `json:"popup"`
	Tooltip string  `json:"tooltip"`
}

// CircleMarker - круг с радиусом пропорциональным сумме показаний
type CircleMarker struct {
	Name    string         `json:"name"`
	Lat     float64        `json:"lat"`
	Lon     float64        `json:"lon"`
	Radius  float64        `json:"radius"`
	Color   string         `json:"color"`
	Traffic domain.Traffic `json:"traffic"`
	Total   int64          `json:"total"`
	Popup   string         `json:"popup"`
	Tooltip string         `json:"tooltip"`
}

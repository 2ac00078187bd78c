package domain

import "strconv"

type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

func (p Point) String() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lon, 'f', -1, 64)
}

// Valid - широта в [-90, 90], долгота в [-180, 180]
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// ParisCenter - центр карт дашборда
var ParisCenter = Point{Lat: 48.856578, Lon: 2.351828}

// DatasetSummary - сводка по загруженной таблице
type DatasetSummary struct {
	Version   string `json:"version"`
	Rows      int    `json:"rows"`
	Dropped   int    `json:"dropped"`
	Counters  int    `json:"counters"`
	FirstDate *Date  `json:"first_date,omitempty"`
	LastDate  *Date  `json:"last_date,omitempty"`
	LoadedAt  string `json:"loaded_at"`
}

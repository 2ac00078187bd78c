package domain

// DateCount - сумма показаний за дату
type DateCount struct {
	Date  Date  `json:"date"`
	Count int64 `json:"count"`
}

// YearCount - количество строк с датой установки в данном году
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// Counter - счётчик после дедупликации по имени; Location может отсутствовать
type Counter struct {
	Name     string `json:"name"`
	Location *Point `json:"location,omitempty"`
}

// CounterTotal - сумма показаний по счётчику за весь период
type CounterTotal struct {
	Name     string `json:"name"`
	Location Point  `json:"location"`
	Total    int64  `json:"total"`
}

// TimeOfDayMean - среднее почасовое показание для времени суток
type TimeOfDayMean struct {
	Time string  `json:"time"`
	Mean float64 `json:"mean"`
}

// MonthCount - сумма показаний за месяц
type MonthCount struct {
	Month string `json:"month"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// WeekdayCount - сумма показаний по дню недели
type WeekdayCount struct {
	Weekday Weekday `json:"weekday"`
	Name    string  `json:"name"`
	Count   int64   `json:"count"`
}

// Traffic - класс счётчика относительно порога
type Traffic string

const (
	TrafficHigh Traffic = "high"
	TrafficLow  Traffic = "low"
)

// TrackLength - протяжённость велодорожек на конец года
type TrackLength struct {
	Year int     `json:"year"`
	Km   float64 `json:"km"`
}

// TrackLengths - статическая таблица протяжённости велосипедной сети Парижа
var TrackLengths = []TrackLength{
	{2004, 292.8}, {2005, 327.3}, {2006, 370.9}, {2007, 399.3}, {2008, 439.5},
	{2009, 446.2}, {2010, 647.5}, {2011, 654.8}, {2012, 677}, {2013, 732.5},
	{2014, 737.5}, {2015, 742.1}, {2016, 779.8}, {2017, 835.6}, {2018, 912.6},
	{2019, 1037.05}, {2020, 1136.3}, {2021, 1170.8}, {2022, 1202.5},
}

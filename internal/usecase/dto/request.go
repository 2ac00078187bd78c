package dto

// ViewRequest - выбор на странице визуализации; оба поля независимы
type ViewRequest struct {
	Visualization string `query:"visualization" validate:"omitempty,oneof=none installs-by-year track-length counter-map threshold-map"`
	Period        string `query:"period" validate:"omitempty,oneof=day week month year"`
}

// DashboardRequest - параметры HTML страницы
type DashboardRequest struct {
	Page string `query:"page" validate:"omitempty,oneof=introduction exploration visualisation modelisation conclusion"`
	ViewRequest
}

// PreviewRequest - первые строки таблицы
type PreviewRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// WindowRequest - полуоткрытый интервал дат [start, end)
type WindowRequest struct {
	Start string `query:"start" validate:"required,datetime=2006-01-02"`
	End   string `query:"end" validate:"required,datetime=2006-01-02"`
}

// WeekdayRequest - месяц и диапазон дней месяца включительно; по умолчанию первая неделя июня
type WeekdayRequest struct {
	Month int `query:"month" validate:"omitempty,min=1,max=12"`
	From  int `query:"from" validate:"omitempty,min=1,max=31"`
	To    int `query:"to" validate:"omitempty,min=1,max=31,gtefield=From"`
}

// WarmupRequest - force=true пересчитывает и уже закешированные представления
type WarmupRequest struct {
	Force bool `query:"force"`
}

package errors

import (
	"errors"
	"fmt"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails возвращает копию ошибки с деталями, исходная переменная не меняется
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// Is сравнивает ошибки по коду, чтобы errors.Is работал и для копий из WithDetails
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// StartupError - фатальная ошибка при запуске: источник данных недоступен или нечитаем
type StartupError struct {
	Source string
	Err    error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("startup: %s: %v", e.Source, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// ParseError - строка исходной таблицы с нераспознанным значением
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: column %q: cannot parse %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError проверяет, является ли ошибка (или её причина) ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsStartupError проверяет, является ли ошибка (или её причина) StartupError
func IsStartupError(err error) bool {
	var se *StartupError
	return errors.As(err, &se)
}

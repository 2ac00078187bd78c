package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidView = New(
		"INVALID_VIEW",
		"Unknown visualization",
		http.StatusBadRequest,
	)

	ErrInvalidPeriod = New(
		"INVALID_PERIOD",
		"Unknown period",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = New(
		"INVALID_DATE_RANGE",
		"Invalid date range",
		http.StatusBadRequest,
	)

	ErrPageNotFound = New(
		"PAGE_NOT_FOUND",
		"Page not found",
		http.StatusNotFound,
	)

	ErrDatasetUnavailable = New(
		"DATASET_UNAVAILABLE",
		"Dataset is not loaded",
		http.StatusServiceUnavailable,
	)

	ErrWarmupUnavailable = New(
		"WARMUP_UNAVAILABLE",
		"View warm-up requires Redis",
		http.StatusServiceUnavailable,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

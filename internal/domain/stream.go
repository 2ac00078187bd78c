package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamViewWarmup = "stream:views:warmup"
)

// ViewWarmupEvent - запрос на предварительный расчёт представления в кеш
type ViewWarmupEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	// Kind - ключ представления (View.Key)
	Kind           string `json:"kind"`
	DatasetVersion string `json:"dataset_version,omitempty"`
	// Force - пересчитать, даже если представление уже в кеше
	Force bool `json:"force,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}

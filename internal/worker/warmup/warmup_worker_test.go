package warmup_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/domain"
	"github.com/velo-paris-dashboard/internal/repository/cache"
	"github.com/velo-paris-dashboard/internal/usecase"
	"github.com/velo-paris-dashboard/internal/worker"
	"github.com/velo-paris-dashboard/internal/worker/warmup"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockMessageHandler is a mock of MessageHandler
type MockMessageHandler struct {
	mock.Mock
}

func (m *MockMessageHandler) HandleMessage(ctx context.Context, msg domain.StreamMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func feed(msgs ...domain.StreamMessage) <-chan domain.StreamMessage {
	ch := make(chan domain.StreamMessage, len(msgs))
	for _, m := range msgs {
		ch <- m
	}
	close(ch)
	return ch
}

func TestViewWarmupWorker_Name(t *testing.T) {
	w := warmup.NewViewWarmupWorker(&MockStreamRepository{}, &MockMessageHandler{}, "dashboard", 3, zap.NewNop())
	assert.Equal(t, "view-warmup", w.Name())
	assert.Equal(t, "dashboard", w.ConsumerGroup())

	var _ worker.Worker = w
}

func TestViewWarmupWorker_ProcessesAndAcks(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockHandler := &MockMessageHandler{}
	w := warmup.NewViewWarmupWorker(mockStream, mockHandler, "dashboard", 3, zap.NewNop(),
		warmup.WithRetryDelay(time.Millisecond))

	first := domain.StreamMessage{ID: "1-0", Data: `{"kind":"period-day"}`}
	second := domain.StreamMessage{ID: "2-0", Data: `{"kind":"period-week"}`}

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamViewWarmup, "dashboard").Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamViewWarmup, "dashboard", mock.Anything).Return(feed(first, second), nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamViewWarmup, "dashboard", mock.Anything).Return(nil)
	mockHandler.On("HandleMessage", mock.Anything, first).Return(nil)
	mockHandler.On("HandleMessage", mock.Anything, second).Return(nil)

	require.NoError(t, w.Start(context.Background()))

	mockHandler.AssertNumberOfCalls(t, "HandleMessage", 2)
	mockStream.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamViewWarmup, "dashboard", "1-0")
	mockStream.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamViewWarmup, "dashboard", "2-0")
}

func TestViewWarmupWorker_RetriesThenAcks(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockHandler := &MockMessageHandler{}
	w := warmup.NewViewWarmupWorker(mockStream, mockHandler, "dashboard", 3, zap.NewNop(),
		warmup.WithRetryDelay(time.Millisecond))

	msg := domain.StreamMessage{ID: "1-0", Data: `{"kind":"period-day"}`}

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamViewWarmup, "dashboard").Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamViewWarmup, "dashboard", mock.Anything).Return(feed(msg), nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamViewWarmup, "dashboard", "1-0").Return(nil)
	mockHandler.On("HandleMessage", mock.Anything, msg).Return(stderrors.New("redis timeout"))

	require.NoError(t, w.Start(context.Background()))

	mockHandler.AssertNumberOfCalls(t, "HandleMessage", 3)
	mockStream.AssertNumberOfCalls(t, "AckMessage", 1)
}

func TestViewWarmupWorker_ConsumerGroupError(t *testing.T) {
	mockStream := &MockStreamRepository{}
	w := warmup.NewViewWarmupWorker(mockStream, &MockMessageHandler{}, "dashboard", 1, zap.NewNop())

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamViewWarmup, "dashboard").Return(stderrors.New("NOAUTH"))

	assert.Error(t, w.Start(context.Background()))
	mockStream.AssertNotCalled(t, "ConsumeStream", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestViewWarmupWorker_Stop(t *testing.T) {
	mockStream := &MockStreamRepository{}
	w := warmup.NewViewWarmupWorker(mockStream, &MockMessageHandler{}, "dashboard", 1, zap.NewNop())

	pending := make(chan domain.StreamMessage)
	consuming := make(chan struct{})
	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamViewWarmup, "dashboard").Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamViewWarmup, "dashboard", mock.Anything).
		Run(func(mock.Arguments) { close(consuming) }).
		Return((<-chan domain.StreamMessage)(pending), nil)

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	select {
	case <-consuming:
	case <-time.After(time.Second):
		t.Fatal("worker did not start consuming")
	}
	require.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestViewWarmupWorker_WarmsCache(t *testing.T) {
	table := domain.NewTable([]domain.Reading{
		{CounterName: "Bastille", CountedAt: time.Date(2023, time.June, 5, 8, 0, 0, 0, time.UTC), HourlyCount: 12},
	}, 0)
	views := usecase.NewViewUseCase(table, usecase.NewPresenter(), cache.NewNoopCache(), time.Minute, zap.NewNop())
	warmupUC := usecase.NewWarmupUseCase(views, nil, zap.NewNop())

	mockStream := &MockStreamRepository{}
	w := warmup.NewViewWarmupWorker(mockStream, warmupUC, "dashboard", 2, zap.NewNop(),
		warmup.WithRetryDelay(time.Millisecond))

	msg := domain.StreamMessage{ID: "7-0", Data: `{"kind":"period-week","dataset_version":"` + table.Version() + `"}`}
	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamViewWarmup, "dashboard").Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamViewWarmup, "dashboard", mock.Anything).Return(feed(msg), nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamViewWarmup, "dashboard", "7-0").Return(nil)

	require.NoError(t, w.Start(context.Background()))
	mockStream.AssertExpectations(t)
}

package server

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/sunplan/sunplan/pkg/types"
)

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) InsertForecast(ctx context.Context, rec types.ForecastRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockStorage) InsertAdvice(ctx context.Context, rec types.AdviceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockStorage) GetForecastHistory(ctx context.Context, start, end time.Time) ([]types.ForecastRecord, error) {
	args := m.Called(ctx, start, end)
	if len(args) > 0 {
		return args.Get(0).([]types.ForecastRecord), args.Error(1)
	}
	return nil, nil
}

func (m *mockStorage) GetAdviceHistory(ctx context.Context, start, end time.Time) ([]types.AdviceRecord, error) {
	args := m.Called(ctx, start, end)
	if len(args) > 0 {
		return args.Get(0).([]types.AdviceRecord), args.Error(1)
	}
	return nil, nil
}

func (m *mockStorage) Close() error {
	args := m.Called()
	return args.Error(0)
}

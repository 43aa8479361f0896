package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/otel/mocks"
	settingMocks "agenda/internal/domains/settings/mocks"
	"agenda/internal/domains/settings/model"
	"agenda/internal/domains/settings/model/dto"
	"agenda/internal/domains/settings/service"
	cacheMocks "agenda/shared/cache/mocks"
	"agenda/shared/failure"
)

func newSettingsService(t *testing.T) (*settingMocks.MockSetting, *cacheMocks.MockRedisCache, service.Settings) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := settingMocks.NewMockSetting(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	return mockRepo, mockCache, svc
}

func TestSettingsService_Get(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		setupMock func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache)
		want      string
		wantErr   bool
	}{
		{
			name: "stored value wins over default",
			key:  model.KeyBusinessHoursStart,
			setupMock: func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))
				cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Setting{Key: model.KeyBusinessHoursStart, Value: "9"}, nil)
			},
			want: "9",
		},
		{
			name: "default applies when key was never written",
			key:  model.KeyBusinessHoursEnd,
			setupMock: func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Setting{}, nil)
			},
			want: "20",
		},
		{
			name: "unknown key without default",
			key:  "no_such_key",
			setupMock: func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Setting{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cache, svc := newSettingsService(t)
			tt.setupMock(repo, cache)

			got, err := svc.Get(context.Background(), tt.key)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettingsService_BusinessHours(t *testing.T) {
	repo, cache, svc := newSettingsService(t)

	cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Setting{}, nil).
		Times(2)

	start, end, err := svc.BusinessHours(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 12, start)
	assert.Equal(t, 20, end)
}

func TestSettingsService_SetBusinessHours(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.SetBusinessHoursRequest
		setupMock func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "valid hours are persisted",
			req:  dto.SetBusinessHoursRequest{StartHour: 9, EndHour: 18},
			setupMock: func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Upsert(gomock.Any(), gomock.Any()).
					Return(nil).
					Times(2)

				cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name:      "start after end is rejected",
			req:       dto.SetBusinessHoursRequest{StartHour: 20, EndHour: 12},
			setupMock: func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:      "start equal to end is rejected",
			req:       dto.SetBusinessHoursRequest{StartHour: 12, EndHour: 12},
			setupMock: func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:      "hours outside a day are rejected",
			req:       dto.SetBusinessHoursRequest{StartHour: -1, EndHour: 25},
			setupMock: func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache) {},
			wantErr:   true,
			wantCode:  400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cache, svc := newSettingsService(t)
			tt.setupMock(repo, cache)

			err := svc.SetBusinessHours(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestSettingsService_SlotDuration(t *testing.T) {
	repo, cache, svc := newSettingsService(t)

	cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Setting{}, nil)

	duration, err := svc.SlotDuration(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 15, duration)
}

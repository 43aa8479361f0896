package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/otel/mocks"
	staffMocks "agenda/internal/domains/staff/mocks"
	"agenda/internal/domains/staff/model"
	"agenda/internal/domains/staff/service"
	cacheMocks "agenda/shared/cache/mocks"
	"agenda/shared/failure"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
)

func newStaffService(t *testing.T) (*staffMocks.MockStaff, *cacheMocks.MockRedisCache, service.Staff) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := staffMocks.NewMockStaff(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	return mockRepo, mockCache, svc
}

func activeMember(id string) model.Staff {
	return model.Staff{
		ID:     id,
		Name:   "Marco",
		Color:  "#2196F3",
		Active: true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func TestStaffService_Deactivate(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *staffMocks.MockStaff, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "deactivates when another active member remains",
			setupMock: func(repo *staffMocks.MockStaff, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeMember("staff-1"), nil)

				repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(2, nil)

				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

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
			name: "refuses to deactivate the last active member",
			setupMock: func(repo *staffMocks.MockStaff, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeMember("staff-1"), nil)

				repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)
			},
			wantErr:  true,
			wantCode: 422,
		},
		{
			name: "already inactive member is a no-op",
			setupMock: func(repo *staffMocks.MockStaff, cache *cacheMocks.MockRedisCache) {
				member := activeMember("staff-1")
				member.Active = false

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(member, nil)
			},
		},
		{
			name: "unknown member",
			setupMock: func(repo *staffMocks.MockStaff, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Staff{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cache, svc := newStaffService(t)
			tt.setupMock(repo, cache)

			err := svc.Deactivate(context.Background(), "staff-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/otel/mocks"
	catalogMocks "agenda/internal/domains/catalog/mocks"
	"agenda/internal/domains/catalog/model"
	"agenda/internal/domains/catalog/model/dto"
	"agenda/internal/domains/catalog/service"
	"agenda/shared/cache"
	cacheMocks "agenda/shared/cache/mocks"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
)

func newCatalogService(t *testing.T) (*catalogMocks.MockCatalog, *cacheMocks.MockRedisCache, service.Catalog) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	return mockRepo, mockCache, svc
}

func haircut(id string) model.Service {
	return model.Service{
		ID:       id,
		Name:     "Haircut",
		Duration: 30,
		Price:    25.0,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func TestCatalogService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *catalogMocks.MockCatalog, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "creates an active service",
			setupMock: func(repo *catalogMocks.MockCatalog, mockCache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, svc model.Service) error {
						assert.NotEmpty(t, svc.ID)
						assert.Equal(t, "Haircut", svc.Name)
						assert.True(t, svc.Active)

						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "rejects a duplicate name",
			setupMock: func(repo *catalogMocks.MockCatalog, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockCache, svc := newCatalogService(t)
			tt.setupMock(repo, mockCache)

			err := svc.Create(context.Background(), dto.CreateServiceRequest{
				Name:     "Haircut",
				Duration: 30,
				Price:    25.0,
			})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCatalogService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *catalogMocks.MockCatalog, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "returns the service",
			setupMock: func(repo *catalogMocks.MockCatalog, mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(cache.Nil)

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(haircut("service-1"), nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "unknown service",
			setupMock: func(repo *catalogMocks.MockCatalog, mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(cache.Nil)

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Service{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockCache, svc := newCatalogService(t)
			tt.setupMock(repo, mockCache)

			res, err := svc.Get(context.Background(), "service-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "service-1", res.ID)
			assert.Equal(t, 30, res.Duration)
		})
	}
}

func TestCatalogService_Update(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		_, _, svc := newCatalogService(t)

		err := svc.Update(context.Background(), dto.UpdateServiceRequest{}, "service-1")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unknown service", func(t *testing.T) {
		repo, _, svc := newCatalogService(t)

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Update(context.Background(), dto.UpdateServiceRequest{Name: "Beard trim"}, "service-1")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("deactivates via update", func(t *testing.T) {
		repo, mockCache, svc := newCatalogService(t)

		inactive := false

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, &inactive, fields[model.FieldActive])

				return nil
			})

		mockCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()
		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.Update(context.Background(), dto.UpdateServiceRequest{Active: &inactive}, "service-1")

		assert.NoError(t, err)
	})
}

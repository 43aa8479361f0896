package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/otel/mocks"
	clientMocks "agenda/internal/domains/client/mocks"
	"agenda/internal/domains/client/model"
	"agenda/internal/domains/client/model/dto"
	"agenda/internal/domains/client/service"
	"agenda/shared/cache"
	cacheMocks "agenda/shared/cache/mocks"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
)

func newClientService(t *testing.T) (*clientMocks.MockClient, *cacheMocks.MockRedisCache, service.Client) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := clientMocks.NewMockClient(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	return mockRepo, mockCache, svc
}

func sampleClient(id string) model.Client {
	phone := "+34600111222"

	return model.Client{
		ID:    id,
		Name:  "Ana Torres",
		Email: "ana@example.com",
		Phone: &phone,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func TestClientService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *clientMocks.MockClient, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "creates the client",
			setupMock: func(repo *clientMocks.MockClient, mockCache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, client model.Client) error {
						assert.NotEmpty(t, client.ID)
						assert.Equal(t, "ana@example.com", client.Email)

						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "rejects a duplicate email",
			setupMock: func(repo *clientMocks.MockClient, _ *cacheMocks.MockRedisCache) {
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
			repo, mockCache, svc := newClientService(t)
			tt.setupMock(repo, mockCache)

			err := svc.Create(context.Background(), dto.CreateClientRequest{
				Name:  "Ana Torres",
				Email: "ana@example.com",
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

func TestClientService_Search(t *testing.T) {
	repo, mockCache, svc := newClientService(t)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(cache.Nil).
		AnyTimes()
	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Client, error) {
			assert.Equal(t, gDto.FilterGroupOperatorOr, filter.Operator)
			assert.Len(t, filter.Filters, 2)

			return []model.Client{sampleClient("client-1")}, nil
		})

	res, err := svc.Search(context.Background(), "ana", gDto.QueryParams{Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Clients, 1)
	assert.Equal(t, "Ana Torres", res.Clients[0].Name)
}

func TestClientService_Delete(t *testing.T) {
	t.Run("removes the client and their appointments", func(t *testing.T) {
		repo, mockCache, svc := newClientService(t)

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		repo.EXPECT().
			DeleteWithAppointments(gomock.Any(), "client-1").
			Return(nil)

		mockCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()
		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.Delete(context.Background(), "client-1")

		assert.NoError(t, err)
	})

	t.Run("unknown client", func(t *testing.T) {
		repo, _, svc := newClientService(t)

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(context.Background(), "client-1")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

package service

import (
	"agenda/config"
	"agenda/infras/otel"
	"agenda/internal/domains/client/model"
	"agenda/internal/domains/client/model/dto"
	"agenda/internal/domains/client/repository"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetClient    = "client:get"
	cacheGetAllClient = "client:gets"
	cacheCountClient  = "client:count"
)

type Client interface {
	Create(ctx context.Context, req dto.CreateClientRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetClientsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ClientResponse, error)
	Search(ctx context.Context, term string, params gDto.QueryParams) (dto.GetClientsResponse, error)
	Update(ctx context.Context, req dto.UpdateClientRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Client
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Client {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateClientRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	taken, err := s.repo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if client email is taken")

		return fmt.Errorf("failed to check if client email is taken: %w", err)
	}

	if taken {
		return failure.Conflict("client email already exists") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create client")

		return fmt.Errorf("failed to create client: %w", err)
	}

	s.invalidateLists(ctx)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetClientsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllClient, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for clients")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count clients")

		return res, fmt.Errorf("failed to count clients: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get clients")

		return res, fmt.Errorf("failed to get clients: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save clients to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountClient, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count clients")

		return res, fmt.Errorf("failed to count clients: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save client count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ClientResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetClient, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for client")

		return res, nil
	}

	client, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get client")

		return res, fmt.Errorf("failed to get client: %w", err)
	}

	if client.ID == constant.Empty {
		return res, failure.NotFound("client not found") // nolint:wrapcheck
	}

	res.FromModel(client)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save client to cache")
		}
	}()

	return res, nil
}

// Search matches the term against name and phone, case-insensitive.
func (s *serviceImpl) Search(ctx context.Context, term string, params gDto.QueryParams) (res dto.GetClientsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				ArgName:  "search_name",
				Field:    model.FieldName,
				Table:    model.TableName,
				Value:    term,
				Operator: gDto.FilterOperatorLike,
			},
			gDto.Filter{
				ArgName:  "search_phone",
				Field:    model.FieldPhone,
				Table:    model.TableName,
				Value:    term,
				Operator: gDto.FilterOperatorLike,
			},
		},
		Operator: gDto.FilterGroupOperatorOr,
	}

	return s.GetAll(ctx, params, filter)
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateClientRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	if req == (dto.UpdateClientRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if client exists")

		return fmt.Errorf("failed to check if client exists: %w", err)
	}

	if !exist {
		log.Error().Msg("client not found")

		return failure.NotFound("client not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update client")

		return fmt.Errorf("failed to update client: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete removes the client together with their appointments.
func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if client exists")

		return fmt.Errorf("failed to check if client exists: %w", err)
	}

	if !exist {
		log.Error().Msg("client not found")

		return failure.NotFound("client not found") // nolint:wrapcheck
	}

	if err := s.repo.DeleteWithAppointments(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete client")

		return fmt.Errorf("failed to delete client: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetClient, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete client from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllClient)
		shared.InvalidateCaches(c, s.cache, cacheCountClient)
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllClient)
		shared.InvalidateCaches(c, s.cache, cacheCountClient)
	}()
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Table:    model.TableName,
				Value:    email,
				Operator: gDto.FilterOperatorEq,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

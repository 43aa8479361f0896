package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"agenda/config"
	"agenda/infras/otel"
	"agenda/internal/domains/settings/model"
	"agenda/internal/domains/settings/model/dto"
	"agenda/internal/domains/settings/repository"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetSetting     = "setting:get"
	cacheGetAllSettings = "setting:gets"
)

type Settings interface {
	Get(ctx context.Context, key string) (string, error)
	GetAll(ctx context.Context) (dto.GetSettingsResponse, error)
	Set(ctx context.Context, key string, req dto.SetSettingRequest) error
	BusinessHours(ctx context.Context) (int, int, error)
	SetBusinessHours(ctx context.Context, req dto.SetBusinessHoursRequest) error
	SlotDuration(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo  repository.Setting
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Setting, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Settings {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Get resolves a setting value, falling back to the built-in default when the
// key has never been written.
func (s *serviceImpl) Get(ctx context.Context, key string) (res string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSetting, key)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	setting, err := s.repo.Get(ctx, keyFilter(key))
	if err != nil {
		log.Error().Err(err).Msg("failed to get setting")

		return res, fmt.Errorf("failed to get setting: %w", err)
	}

	if setting.Key == constant.Empty {
		def, ok := model.Defaults[key]
		if !ok {
			return res, failure.NotFound("setting not found") // nolint:wrapcheck
		}

		return def, nil
	}

	res = setting.Value

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save setting to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetSettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheGetAllSettings, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetAllSettings).Msg("cache hit for settings")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldKey, SortDir: "ASC"}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get settings")

		return res, fmt.Errorf("failed to get settings: %w", err)
	}

	// Stored values win over defaults.
	stored := map[string]bool{}
	for _, mod := range models {
		stored[mod.Key] = true
	}

	for key, value := range model.Defaults {
		if !stored[key] {
			models = append(models, model.Setting{Key: key, Value: value})
		}
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetAllSettings, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save settings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Set(ctx context.Context, key string, req dto.SetSettingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Set")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Upsert(ctx, req.ToModel(key, user)); err != nil {
		log.Error().Err(err).Msg("failed to set setting")

		return fmt.Errorf("failed to set setting: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSetting, key)); err != nil {
			log.Error().Err(err).Msg("failed to delete setting from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSettings)
	}()

	return nil
}

// BusinessHours returns the configured opening and closing hour. Values are
// validated on write, so a stored value is trusted here.
func (s *serviceImpl) BusinessHours(ctx context.Context) (startHour, endHour int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BusinessHours")
	defer scope.End()
	defer scope.TraceIfError(err)

	startHour, err = s.getInt(ctx, model.KeyBusinessHoursStart)
	if err != nil {
		return 0, 0, err
	}

	endHour, err = s.getInt(ctx, model.KeyBusinessHoursEnd)
	if err != nil {
		return 0, 0, err
	}

	return startHour, endHour, nil
}

func (s *serviceImpl) SetBusinessHours(ctx context.Context, req dto.SetBusinessHoursRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetBusinessHours")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.StartHour < 0 || req.StartHour > 23 || req.EndHour < 1 || req.EndHour > 24 {
		return failure.BadRequestFromString("business hours must be within a single day") // nolint:wrapcheck
	}

	if req.StartHour >= req.EndHour {
		return failure.BadRequestFromString("opening hour must be before closing hour") // nolint:wrapcheck
	}

	if err = s.Set(ctx, model.KeyBusinessHoursStart, dto.SetSettingRequest{Value: strconv.Itoa(req.StartHour)}); err != nil {
		return err
	}

	return s.Set(ctx, model.KeyBusinessHoursEnd, dto.SetSettingRequest{Value: strconv.Itoa(req.EndHour)})
}

// SlotDuration returns the slot granularity in minutes.
func (s *serviceImpl) SlotDuration(ctx context.Context) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SlotDuration")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.getInt(ctx, model.KeySlotDuration)
	if err != nil {
		return 0, err
	}

	if res <= 0 {
		res, _ = strconv.Atoi(model.Defaults[model.KeySlotDuration])
	}

	return res, nil
}

func (s *serviceImpl) getInt(ctx context.Context, key string) (int, error) {
	value, err := s.Get(ctx, key)
	if err != nil {
		return 0, err
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("setting is not an integer")

		return 0, fmt.Errorf("setting %s is not an integer: %w", key, err)
	}

	return parsed, nil
}

func keyFilter(key string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldKey,
				Table:    model.TableName,
				Value:    key,
				Operator: gDto.FilterOperatorEq,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

package dto

import (
	"agenda/internal/domains/settings/model"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
)

type SetSettingRequest struct {
	Value string `json:"value" validate:"required,max=255"`
}

func (s *SetSettingRequest) ToModel(key, user string) model.Setting {
	return model.Setting{
		Key:   key,
		Value: s.Value,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type SetBusinessHoursRequest struct {
	StartHour int `json:"start_hour" validate:"min=0,max=23"`
	EndHour   int `json:"end_hour"   validate:"min=1,max=24"`
}

type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (r *SettingResponse) FromModel(model model.Setting) {
	r.Key = model.Key
	r.Value = model.Value
}

type BusinessHoursResponse struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

type GetSettingsResponse struct {
	Settings []SettingResponse `json:"settings"`
}

func (r *GetSettingsResponse) FromModels(models []model.Setting) {
	r.Settings = make([]SettingResponse, len(models))
	for i, mod := range models {
		r.Settings[i].FromModel(mod)
	}
}

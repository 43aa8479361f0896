package dto

import (
	"agenda/internal/domains/catalog/model"
	"agenda/shared"
	gDto "agenda/shared/dto"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Name     string  `json:"name"     validate:"required,max=100"`
	Duration int     `json:"duration" validate:"required,min=1,max=480"`
	Price    float64 `json:"price"    validate:"omitempty,gte=0"`
}

func (c *CreateServiceRequest) ToModel(user string) model.Service {
	return model.Service{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Duration: c.Duration,
		Price:    c.Price,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateServiceRequest struct {
	Name     string   `db:"name"         json:"name"     validate:"omitempty,max=100"`
	Duration int      `db:"duration_min" json:"duration" validate:"omitempty,min=1,max=480"`
	Price    *float64 `db:"price"        json:"price"    validate:"omitempty,gte=0"`
	Active   *bool    `db:"active"       json:"active"   validate:"omitempty"`
}

type ServiceResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
	Active   bool    `json:"active"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(model model.Service) {
	r.ID = model.ID
	r.Name = model.Name
	r.Duration = model.Duration
	r.Price = model.Price
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}

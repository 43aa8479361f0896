package dto

import (
	"agenda/internal/domains/staff/model"
	"agenda/shared"
	gDto "agenda/shared/dto"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"

	"github.com/google/uuid"
)

type CreateStaffRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

func (c *CreateStaffRequest) ToModel(user string) model.Staff {
	color := c.Color
	if color == "" {
		color = "#2196F3"
	}

	return model.Staff{
		ID:     uuid.NewString(),
		Name:   c.Name,
		Color:  color,
		Active: true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateStaffRequest struct {
	Name  string `db:"name"  json:"name"  validate:"omitempty,max=100"`
	Color string `db:"color" json:"color" validate:"omitempty,hexcolor"`
}

type StaffResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Active bool   `json:"active"`
	gDto.Metadata
}

func (r *StaffResponse) FromModel(model model.Staff) {
	r.ID = model.ID
	r.Name = model.Name
	r.Color = model.Color
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetStaffResponse struct {
	Staff     []StaffResponse `json:"staff"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetStaffResponse) FromModels(models []model.Staff, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Staff = make([]StaffResponse, len(models))
	for i, mod := range models {
		r.Staff[i].FromModel(mod)
	}
}

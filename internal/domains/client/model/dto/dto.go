package dto

import (
	"agenda/internal/domains/client/model"
	"agenda/shared"
	gDto "agenda/shared/dto"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"

	"github.com/google/uuid"
)

type CreateClientRequest struct {
	Name  string  `json:"name"  validate:"required,max=100"`
	Email string  `json:"email" validate:"required,email,max=100"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
	Notes *string `json:"notes" validate:"omitempty,max=500"`
}

func (c *CreateClientRequest) ToModel(user string) model.Client {
	return model.Client{
		ID:    uuid.NewString(),
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
		Notes: c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateClientRequest struct {
	Name  string  `db:"name"  json:"name"  validate:"omitempty,max=100"`
	Email string  `db:"email" json:"email" validate:"omitempty,email,max=100"`
	Phone *string `db:"phone" json:"phone" validate:"omitempty,max=20"`
	Notes *string `db:"notes" json:"notes" validate:"omitempty,max=500"`
}

type ClientResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
	gDto.Metadata
}

func (r *ClientResponse) FromModel(model model.Client) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetClientsResponse struct {
	Clients   []ClientResponse `json:"clients"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetClientsResponse) FromModels(models []model.Client, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Clients = make([]ClientResponse, len(models))
	for i, mod := range models {
		r.Clients[i].FromModel(mod)
	}
}

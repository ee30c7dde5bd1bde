package request

type CreateTicketRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Phone    string `json:"phone" validate:"required,min=8,max=20"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

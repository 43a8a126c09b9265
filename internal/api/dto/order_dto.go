package dto

type ChangeOrderStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=PENDING ACCEPTED OUT_FOR_DELIVERY DELIVERED CANCELLED"`
}

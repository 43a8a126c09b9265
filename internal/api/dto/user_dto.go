package dto

type AddressDTO struct {
	LineOne string  `json:"line_one" validate:"required,max=255"`
	LineTwo *string `json:"line_two" validate:"omitempty,max=255"`
	City    string  `json:"city" validate:"required,max=100"`
	Country string  `json:"country" validate:"required,max=100"`
	Pincode string  `json:"pincode" validate:"required,len=6"`
}

// UpdateUserDTO 未帶的欄位不修改
type UpdateUserDTO struct {
	Name                     *string `json:"name" validate:"omitempty,min=1,max=100"`
	DefaultShippingAddressID *uint   `json:"default_shipping_address_id" validate:"omitempty,gt=0"`
	DefaultBillingAddressID  *uint   `json:"default_billing_address_id" validate:"omitempty,gt=0"`
}

type ChangeRoleDTO struct {
	Role string `json:"role" validate:"required,oneof=ADMIN USER"`
}

package model

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

type User struct {
	ID                       uint      `gorm:"primaryKey" json:"id"`
	Name                     string    `gorm:"not null;type:varchar(100)" json:"name"`
	Email                    string    `gorm:"uniqueIndex;not null;type:varchar(255)" json:"email"`
	Password                 string    `gorm:"not null;type:varchar(255)" json:"-"`
	Role                     Role      `gorm:"not null;type:varchar(20);default:USER" json:"role"`
	DefaultShippingAddressID *uint     `json:"default_shipping_address_id"`
	DefaultBillingAddressID  *uint     `json:"default_billing_address_id"`
	Addresses                []Address `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
	BaseModel
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

package model

// Shop status values stored under the SHOP_STATUS key.
const (
	ShopClosed = 0
	ShopOpen   = 1
)

type ShopStatusRequest struct {
	Status int `param:"status" validate:"oneof=0 1"`
}

func (r *ShopStatusRequest) Validate() error {
	return validate.Struct(r)
}

package model

import "time"

// ProductInventory tracks the stock quantity of a product.
type ProductInventory struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	Quantity int  `json:"quantity" gorm:"not null;default:0" validate:"gte=0"`
	Lifecycle
}

func (ProductInventory) TableName() string {
	return "product_inventory"
}

func (i *ProductInventory) EntityID() uint { return i.ID }

func (i *ProductInventory) PrepareCreate(now time.Time) {
	i.ID = 0
	i.reset(now)
}

func (i *ProductInventory) ApplyUpdate(src *ProductInventory, now time.Time) {
	i.Quantity = src.Quantity
	i.touch(now)
}

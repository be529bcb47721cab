package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductDiscount is a named percentage discount.
type ProductDiscount struct {
	ID      uint            `json:"id" gorm:"primaryKey"`
	Name    string          `json:"name" gorm:"size:255;not null" validate:"required,max=255"`
	Desc    string          `json:"desc" gorm:"column:desc;type:text"`
	Percent decimal.Decimal `json:"discount_percent" gorm:"column:discount_percent;type:decimal(5,2);not null;default:0" validate:"gte=0,lte=100" swaggertype:"string"`
	Lifecycle
}

func (ProductDiscount) TableName() string {
	return "discount"
}

func (d *ProductDiscount) EntityID() uint { return d.ID }

func (d *ProductDiscount) PrepareCreate(now time.Time) {
	d.ID = 0
	d.reset(now)
}

func (d *ProductDiscount) ApplyUpdate(src *ProductDiscount, now time.Time) {
	d.Name = src.Name
	d.Desc = src.Desc
	d.Percent = src.Percent
	d.touch(now)
}

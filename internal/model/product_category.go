package model

import "time"

// ProductCategory groups products for browsing.
type ProductCategory struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;not null" validate:"required,max=255"`
	Desc string `json:"desc" gorm:"column:desc;type:text"`
	Lifecycle
}

func (ProductCategory) TableName() string {
	return "product_category"
}

func (c *ProductCategory) EntityID() uint { return c.ID }

func (c *ProductCategory) PrepareCreate(now time.Time) {
	c.ID = 0
	c.reset(now)
}

func (c *ProductCategory) ApplyUpdate(src *ProductCategory, now time.Time) {
	c.Name = src.Name
	c.Desc = src.Desc
	c.touch(now)
}

package model

import (
	"time"

	"gorm.io/datatypes"
)

// Category groups parameters. Slug is derived from Name when the category is
// built and is never recomputed afterwards.
type Category struct {
	ID          string                      `gorm:"column:id;primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	Name        string                      `gorm:"column:name;size:50;not null;index:idx_categories_name_active,unique,where:delete_at IS NULL" bson:"name" json:"name" validate:"required,min=3,max=50"`
	Slug        string                      `gorm:"column:slug;size:53;not null;index:idx_categories_slug_active,unique,where:delete_at IS NULL" bson:"slug" json:"slug" validate:"required,min=3,max=53"`
	Description string                      `gorm:"column:description;size:70;not null" bson:"description" json:"description" validate:"required,min=20,max=70"`
	Parameters  datatypes.JSONSlice[string] `gorm:"column:parameters" bson:"parameters" json:"parameters"`
	CreatedAt   time.Time                   `gorm:"column:created_at;autoCreateTime:false;not null" bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time                   `gorm:"column:updated_at;autoUpdateTime:false;not null" bson:"updated_at" json:"updated_at"`
	DeleteAt    *time.Time                  `gorm:"column:delete_at;index" bson:"delete_at" json:"delete_at"`
}

func (Category) TableName() string {
	return "categories"
}

// IsDeleted reports whether the category has been soft-deleted.
func (c *Category) IsDeleted() bool {
	return c.DeleteAt != nil
}

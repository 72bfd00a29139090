package model

import "time"

// Parameter is a category-scoped setting. Value starts equal to Default and
// changes independently afterwards.
type Parameter struct {
	ID          string     `gorm:"column:id;primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	Default     string     `gorm:"column:default_value;not null" bson:"default" json:"default" validate:"required"`
	Value       string     `gorm:"column:value" bson:"value" json:"value"`
	Name        string     `gorm:"column:name;size:50;not null;index" bson:"name" json:"name" validate:"required,min=5,max=50"`
	Slug        string     `gorm:"column:slug;size:64;not null;uniqueIndex:idx_parameters_slug" bson:"slug" json:"slug" validate:"required"`
	Description string     `gorm:"column:description;size:253" bson:"description,omitempty" json:"description,omitempty" validate:"omitempty,min=10,max=253"`
	CategoryID  string     `gorm:"column:category;type:varchar(36);not null;index" bson:"category" json:"category" validate:"required,uuid"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime:false;not null;index" bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime:false;not null" bson:"updated_at" json:"updated_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at;index" bson:"delete_at" json:"delete_at"`
}

func (Parameter) TableName() string {
	return "parameters"
}

// IsDeleted reports whether the parameter has been soft-deleted.
func (p *Parameter) IsDeleted() bool {
	return p.DeleteAt != nil
}

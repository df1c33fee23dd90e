package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

// ServicePage is a generated landing page for one business service.
type ServicePage struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID      uuid.UUID        `gorm:"column:business_id;type:uuid;not null"`
	ServiceID       *uuid.UUID       `gorm:"column:service_id;type:uuid"`
	Slug            string           `gorm:"column:slug;not null"`
	Title           string           `gorm:"column:title;not null"`
	MetaDescription string           `gorm:"column:meta_description;not null;default:''"`
	Content         string           `gorm:"column:content;not null;default:''"`
	Status          enums.PageStatus `gorm:"column:status;not null;default:'draft'"`
	PublishedAt     *time.Time       `gorm:"column:published_at"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// LocationPage is a generated landing page for one service area.
type LocationPage struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID      uuid.UUID        `gorm:"column:business_id;type:uuid;not null"`
	ServiceAreaID   *uuid.UUID       `gorm:"column:service_area_id;type:uuid"`
	Slug            string           `gorm:"column:slug;not null"`
	Title           string           `gorm:"column:title;not null"`
	MetaDescription string           `gorm:"column:meta_description;not null;default:''"`
	Content         string           `gorm:"column:content;not null;default:''"`
	City            string           `gorm:"column:city;not null;default:''"`
	Region          string           `gorm:"column:region;not null;default:''"`
	Status          enums.PageStatus `gorm:"column:status;not null;default:'draft'"`
	PublishedAt     *time.Time       `gorm:"column:published_at"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UtilityAllowance 各房型的水電補貼標準，依 effective_date 取最新一筆
type UtilityAllowance struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrgID      string             `bson:"org_id" json:"org_id"`
	PropertyID string             `bson:"property_id" json:"property_id"`

	BedroomCount int `bson:"bedroom_count" json:"bedroom_count"`

	// 分項金額 (cents)
	HeatingCents    int64 `bson:"heating_cents" json:"heating_cents"`
	CookingCents    int64 `bson:"cooking_cents" json:"cooking_cents"`
	LightingCents   int64 `bson:"lighting_cents" json:"lighting_cents"`
	WaterSewerCents int64 `bson:"water_sewer_cents" json:"water_sewer_cents"`
	TrashCents      int64 `bson:"trash_cents" json:"trash_cents"`
	TotalCents      int64 `bson:"total_cents" json:"total_cents"`

	EffectiveDate time.Time `bson:"effective_date" json:"effective_date"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	DeletedAt     time.Time `bson:"deleted_at,omitempty" json:"-"`
}

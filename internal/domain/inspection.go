package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	InspectionTypeInitial   = "initial"
	InspectionTypeAnnual    = "annual"
	InspectionTypeComplaint = "complaint"
	InspectionTypeFollowUp  = "follow_up"

	InspectionStatusPassed      = "passed"
	InspectionStatusFailed      = "failed"
	InspectionStatusConditional = "conditional"
	InspectionStatusPending     = "pending"
)

// REACInspection 物業的 REAC 檢查紀錄 (分數 0-100)
type REACInspection struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrgID        string             `bson:"org_id" json:"org_id"`
	PropertyID   string             `bson:"property_id" json:"property_id"`
	PropertyName string             `bson:"property_name" json:"property_name"`

	InspectionDate time.Time `bson:"inspection_date" json:"inspection_date"`
	InspectionType string    `bson:"inspection_type" json:"inspection_type"`
	OverallScore   int       `bson:"overall_score" json:"overall_score"`
	Status         string    `bson:"status" json:"status"`

	DeficienciesCount    int    `bson:"deficiencies_count" json:"deficiencies_count"`
	CriticalDeficiencies int    `bson:"critical_deficiencies" json:"critical_deficiencies"`
	ReportURL            string `bson:"report_url,omitempty" json:"report_url,omitempty"`

	NextInspectionDate time.Time `bson:"next_inspection_date,omitempty" json:"next_inspection_date,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	DeletedAt time.Time `bson:"deleted_at,omitempty" json:"-"`
}

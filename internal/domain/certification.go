package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 定義常數避免打錯字
const (
	CertTypeInitial = "initial"
	CertTypeAnnual  = "annual"
	CertTypeInterim = "interim"
	CertTypeOther   = "other"

	CertStatusPending   = "pending"
	CertStatusApproved  = "approved"
	CertStatusRejected  = "rejected"
	CertStatusSubmitted = "submitted"
)

const (
	RelationshipHead   = "head"
	RelationshipSpouse = "spouse"
	RelationshipChild  = "child"
	RelationshipOther  = "other"
)

// HouseholdMember 內嵌在認證文件裡 (不另開 collection，避免 join)
type HouseholdMember struct {
	MemberID          primitive.ObjectID `bson:"member_id" json:"member_id"`
	FullName          string             `bson:"full_name" json:"full_name"`
	SSNLast4          string             `bson:"ssn_last_4,omitempty" json:"ssn_last_4,omitempty"`
	DateOfBirth       time.Time          `bson:"date_of_birth" json:"date_of_birth"`
	Relationship      string             `bson:"relationship" json:"relationship"`
	IsStudent         bool               `bson:"is_student" json:"is_student"`
	IsDisabled        bool               `bson:"is_disabled" json:"is_disabled"`
	AnnualIncomeCents int64              `bson:"annual_income_cents" json:"annual_income_cents"`
}

type TenantIncomeCertification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrgID      string             `bson:"org_id" json:"org_id"`
	TenantID   string             `bson:"tenant_id" json:"tenant_id"`
	PropertyID string             `bson:"property_id" json:"property_id"`
	UnitID     string             `bson:"unit_id,omitempty" json:"unit_id,omitempty"`

	// 顯示用欄位 (列表不用再查 tenant/property)
	TenantName   string `bson:"tenant_name" json:"tenant_name"`
	PropertyName string `bson:"property_name" json:"property_name"`
	UnitNumber   string `bson:"unit_number" json:"unit_number"`

	// 認證內容
	CertificationDate time.Time `bson:"certification_date" json:"certification_date"`
	EffectiveDate     time.Time `bson:"effective_date" json:"effective_date"` // 有效期起算日 (過期日 = +1 年)
	CertType          string    `bson:"cert_type" json:"cert_type"`
	Status            string    `bson:"status" json:"status"`
	HouseholdSize     int       `bson:"household_size" json:"household_size"`

	// 收入與租金計算 (金額一律存 cents，避免浮點誤差)
	AnnualIncomeCents     int64 `bson:"annual_income_cents" json:"annual_income_cents"`
	AdjustedIncomeCents   int64 `bson:"adjusted_income_cents" json:"adjusted_income_cents"`
	TenantRentCents       int64 `bson:"tenant_rent_cents" json:"tenant_rent_cents"`
	UtilityAllowanceCents int64 `bson:"utility_allowance_cents" json:"utility_allowance_cents"`
	SubsidyCents          int64 `bson:"subsidy_cents" json:"subsidy_cents"`

	// HUD-50059 申報狀態
	HUD50059Submitted      bool      `bson:"hud_50059_submitted" json:"hud_50059_submitted"`
	HUD50059SubmissionDate time.Time `bson:"hud_50059_submission_date,omitempty" json:"hud_50059_submission_date,omitempty"`

	HouseholdMembers []HouseholdMember `bson:"household_members,omitempty" json:"household_members,omitempty"`

	// 系統欄位
	CreatedBy     string    `bson:"created_by" json:"created_by"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	DeletedAt     time.Time `bson:"deleted_at,omitempty" json:"-"`
	LastAlertTime time.Time `bson:"last_alert_time" json:"last_alert_time"` // 上次發送告警的時間，避免頻繁轟炸
}

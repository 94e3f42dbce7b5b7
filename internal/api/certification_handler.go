package api

import (
	"net/http"
	"strconv"
	"time"

	"hud-compliance/internal/domain"
	"hud-compliance/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const dateLayout = "2006-01-02"

type CertificationHandler struct {
	Repo repository.CertificationRepository
}

func NewCertificationHandler(repo repository.CertificationRepository) *CertificationHandler {
	return &CertificationHandler{Repo: repo}
}

// 定義請求結構 (日期走 YYYY-MM-DD 字串，金額走 cents)
type CreateCertificationRequest struct {
	OrgID      string `json:"org_id" binding:"required"`
	TenantID   string `json:"tenant_id" binding:"required"`
	PropertyID string `json:"property_id" binding:"required"`
	UnitID     string `json:"unit_id"`

	TenantName   string `json:"tenant_name" binding:"required"`
	PropertyName string `json:"property_name"`
	UnitNumber   string `json:"unit_number"`

	CertificationDate string `json:"certification_date" binding:"required"`
	EffectiveDate     string `json:"effective_date" binding:"required"`
	CertType          string `json:"cert_type" binding:"required,oneof=initial annual interim other"`
	Status            string `json:"status" binding:"omitempty,oneof=pending approved rejected submitted"`
	HouseholdSize     int    `json:"household_size" binding:"required,min=1"`

	AnnualIncomeCents     int64 `json:"annual_income_cents" binding:"min=0"`
	AdjustedIncomeCents   int64 `json:"adjusted_income_cents" binding:"min=0"`
	TenantRentCents       int64 `json:"tenant_rent_cents" binding:"min=0"`
	UtilityAllowanceCents int64 `json:"utility_allowance_cents" binding:"min=0"`
	SubsidyCents          int64 `json:"subsidy_cents" binding:"min=0"`
}

type UpdateCertificationRequest struct {
	Status        *string `json:"status" binding:"omitempty,oneof=pending approved rejected submitted"`
	EffectiveDate *string `json:"effective_date"`
	HouseholdSize *int    `json:"household_size" binding:"omitempty,min=1"`

	AnnualIncomeCents   *int64 `json:"annual_income_cents" binding:"omitempty,min=0"`
	AdjustedIncomeCents *int64 `json:"adjusted_income_cents" binding:"omitempty,min=0"`
	TenantRentCents     *int64 `json:"tenant_rent_cents" binding:"omitempty,min=0"`
	SubsidyCents        *int64 `json:"subsidy_cents" binding:"omitempty,min=0"`
}

type AddMemberRequest struct {
	FullName          string `json:"full_name" binding:"required"`
	SSNLast4          string `json:"ssn_last_4" binding:"omitempty,len=4"`
	DateOfBirth       string `json:"date_of_birth" binding:"required"`
	Relationship      string `json:"relationship" binding:"required,oneof=head spouse child other"`
	IsStudent         bool   `json:"is_student"`
	IsDisabled        bool   `json:"is_disabled"`
	AnnualIncomeCents int64  `json:"annual_income_cents" binding:"min=0"`
}

// =============================================================================
// Query APIs (讀取類)
// =============================================================================

// ListCertifications 獲取認證列表 (支援分頁與多種篩選)
func (h *CertificationHandler) ListCertifications(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("pageSize", "10"), 10, 64)

	filter := repository.CertificationFilter{
		PropertyID: c.Query("property_id"),
		TenantID:   c.Query("tenant_id"),
		Status:     c.Query("status"),
		CertType:   c.Query("cert_type"),
	}

	certs, total, err := h.Repo.List(c.Request.Context(), page, limit, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  certs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetCertification 獲取單筆認證 (含家庭成員)
func (h *CertificationHandler) GetCertification(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 ID"})
		return
	}

	cert, err := h.Repo.Get(c.Request.Context(), id)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "認證不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cert})
}

// ListExpiring 獲取即將到期的認證 (預設 30 天內)
func (h *CertificationHandler) ListExpiring(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	certs, err := h.Repo.ListExpiring(c.Request.Context(), time.Now(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": certs, "days": days})
}

// =============================================================================
// Command APIs (操作類)
// =============================================================================

// CreateCertification 新增認證
func (h *CertificationHandler) CreateCertification(c *gin.Context) {
	var req CreateCertificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	certDate, err := time.Parse(dateLayout, req.CertificationDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "certification_date 格式錯誤，需為 YYYY-MM-DD"})
		return
	}
	effectiveDate, err := time.Parse(dateLayout, req.EffectiveDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "effective_date 格式錯誤，需為 YYYY-MM-DD"})
		return
	}

	status := req.Status
	if status == "" {
		status = domain.CertStatusPending // 預設值
	}

	userID, _ := c.Get("user_id")
	createdBy, _ := userID.(string)

	cert := domain.TenantIncomeCertification{
		OrgID:                 req.OrgID,
		TenantID:              req.TenantID,
		PropertyID:            req.PropertyID,
		UnitID:                req.UnitID,
		TenantName:            req.TenantName,
		PropertyName:          req.PropertyName,
		UnitNumber:            req.UnitNumber,
		CertificationDate:     certDate,
		EffectiveDate:         effectiveDate,
		CertType:              req.CertType,
		Status:                status,
		HouseholdSize:         req.HouseholdSize,
		AnnualIncomeCents:     req.AnnualIncomeCents,
		AdjustedIncomeCents:   req.AdjustedIncomeCents,
		TenantRentCents:       req.TenantRentCents,
		UtilityAllowanceCents: req.UtilityAllowanceCents,
		SubsidyCents:          req.SubsidyCents,
		CreatedBy:             createdBy,
	}

	if err := h.Repo.Create(c.Request.Context(), &cert); err != nil {
		logrus.Errorf("新增認證失敗: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": cert})
}

// UpdateCertification 部分更新 (只動有帶的欄位)
func (h *CertificationHandler) UpdateCertification(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 ID"})
		return
	}

	var req UpdateCertificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := bson.M{}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.EffectiveDate != nil {
		effectiveDate, err := time.Parse(dateLayout, *req.EffectiveDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "effective_date 格式錯誤，需為 YYYY-MM-DD"})
			return
		}
		fields["effective_date"] = effectiveDate
	}
	if req.HouseholdSize != nil {
		fields["household_size"] = *req.HouseholdSize
	}
	if req.AnnualIncomeCents != nil {
		fields["annual_income_cents"] = *req.AnnualIncomeCents
	}
	if req.AdjustedIncomeCents != nil {
		fields["adjusted_income_cents"] = *req.AdjustedIncomeCents
	}
	if req.TenantRentCents != nil {
		fields["tenant_rent_cents"] = *req.TenantRentCents
	}
	if req.SubsidyCents != nil {
		fields["subsidy_cents"] = *req.SubsidyCents
	}

	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "沒有可更新的欄位"})
		return
	}

	if err := h.Repo.Update(c.Request.Context(), id, fields); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "更新完成"})
}

// DeleteCertification 軟刪除
func (h *CertificationHandler) DeleteCertification(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 ID"})
		return
	}

	if err := h.Repo.SoftDelete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "刪除完成"})
}

// SubmitHUD50059 申報 HUD-50059，狀態轉 approved
func (h *CertificationHandler) SubmitHUD50059(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 ID"})
		return
	}

	// 先確認存在，避免對已刪除的認證申報
	if _, err := h.Repo.Get(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "認證不存在"})
		return
	}

	if err := h.Repo.SubmitHUD50059(c.Request.Context(), id, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logrus.Infof("HUD-50059 已申報: %s", id.Hex())
	c.JSON(http.StatusOK, gin.H{"message": "申報完成"})
}

// AddHouseholdMember 新增家庭成員
func (h *CertificationHandler) AddHouseholdMember(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 ID"})
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_of_birth 格式錯誤，需為 YYYY-MM-DD"})
		return
	}

	if _, err := h.Repo.Get(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "認證不存在"})
		return
	}

	member := domain.HouseholdMember{
		MemberID:          primitive.NewObjectID(),
		FullName:          req.FullName,
		SSNLast4:          req.SSNLast4,
		DateOfBirth:       dob,
		Relationship:      req.Relationship,
		IsStudent:         req.IsStudent,
		IsDisabled:        req.IsDisabled,
		AnnualIncomeCents: req.AnnualIncomeCents,
	}

	if err := h.Repo.AddHouseholdMember(c.Request.Context(), id, member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": member})
}

// RemoveHouseholdMember 移除家庭成員
func (h *CertificationHandler) RemoveHouseholdMember(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 ID"})
		return
	}
	memberID, err := primitive.ObjectIDFromHex(c.Param("memberId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的成員 ID"})
		return
	}

	if err := h.Repo.RemoveHouseholdMember(c.Request.Context(), id, memberID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "成員已移除"})
}

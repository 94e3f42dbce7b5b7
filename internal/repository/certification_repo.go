package repository

import (
	"context"
	"time"

	"hud-compliance/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CertificationFilter struct {
	PropertyID string
	TenantID   string
	Status     string
	CertType   string
}

type CertificationRepository interface {
	Create(ctx context.Context, cert *domain.TenantIncomeCertification) error
	Get(ctx context.Context, id primitive.ObjectID) (*domain.TenantIncomeCertification, error)
	List(ctx context.Context, page, pageSize int64, filter CertificationFilter) ([]domain.TenantIncomeCertification, int64, error)
	ListAll(ctx context.Context) ([]domain.TenantIncomeCertification, error)
	ListExpiring(ctx context.Context, now time.Time, days int) ([]domain.TenantIncomeCertification, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	SubmitHUD50059(ctx context.Context, id primitive.ObjectID, submittedAt time.Time) error
	AddHouseholdMember(ctx context.Context, id primitive.ObjectID, member domain.HouseholdMember) error
	RemoveHouseholdMember(ctx context.Context, id, memberID primitive.ObjectID) error
	UpdateAlertTime(ctx context.Context, id primitive.ObjectID) error
}

type mongoCertificationRepo struct {
	collection *mongo.Collection
}

func NewMongoCertificationRepo(db *mongo.Database) CertificationRepository {
	return &mongoCertificationRepo{
		collection: db.Collection("certifications"),
	}
}

func (r *mongoCertificationRepo) Create(ctx context.Context, cert *domain.TenantIncomeCertification) error {
	cert.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, cert)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		cert.ID = oid
	}
	return nil
}

func (r *mongoCertificationRepo) Get(ctx context.Context, id primitive.ObjectID) (*domain.TenantIncomeCertification, error) {
	var cert domain.TenantIncomeCertification
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "deleted_at": nil}).Decode(&cert)
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

// List 支援分頁與篩選，依 effective_date 由新到舊排序
func (r *mongoCertificationRepo) List(ctx context.Context, page, pageSize int64, filter CertificationFilter) ([]domain.TenantIncomeCertification, int64, error) {
	query := bson.M{"deleted_at": nil}
	if filter.PropertyID != "" {
		query["property_id"] = filter.PropertyID
	}
	if filter.TenantID != "" {
		query["tenant_id"] = filter.TenantID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.CertType != "" {
		query["cert_type"] = filter.CertType
	}

	skip := (page - 1) * pageSize

	findOptions := options.Find()
	findOptions.SetSkip(skip)
	findOptions.SetLimit(pageSize)
	findOptions.SetSort(bson.D{{Key: "effective_date", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var results []domain.TenantIncomeCertification
	if err = cursor.All(ctx, &results); err != nil {
		return nil, 0, err
	}

	// 計算總數 (給前端分頁元件用)
	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

// ListAll 評估用，全撈 (資料量最多幾千筆，不分頁)
func (r *mongoCertificationRepo) ListAll(ctx context.Context) ([]domain.TenantIncomeCertification, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"deleted_at": nil})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []domain.TenantIncomeCertification
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ListExpiring 過期日落在 now ~ now+days 之間的認證
// 過期日 = effective_date + 1 年，因此查 effective_date 在 (now-1年) ~ (now-1年+days)
func (r *mongoCertificationRepo) ListExpiring(ctx context.Context, now time.Time, days int) ([]domain.TenantIncomeCertification, error) {
	lower := now.AddDate(-1, 0, 0)
	upper := lower.AddDate(0, 0, days)

	query := bson.M{
		"deleted_at":     nil,
		"effective_date": bson.M{"$gte": lower, "$lte": upper},
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "effective_date", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []domain.TenantIncomeCertification
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mongoCertificationRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

func (r *mongoCertificationRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"deleted_at": time.Now()}})
	return err
}

// SubmitHUD50059 申報後狀態直接轉 approved
func (r *mongoCertificationRepo) SubmitHUD50059(ctx context.Context, id primitive.ObjectID, submittedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"hud_50059_submitted":       true,
			"hud_50059_submission_date": submittedAt,
			"status":                    domain.CertStatusApproved,
			"updated_at":                time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *mongoCertificationRepo) AddHouseholdMember(ctx context.Context, id primitive.ObjectID, member domain.HouseholdMember) error {
	update := bson.M{
		"$push": bson.M{"household_members": member},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *mongoCertificationRepo) RemoveHouseholdMember(ctx context.Context, id, memberID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"household_members": bson.M{"member_id": memberID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *mongoCertificationRepo) UpdateAlertTime(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_alert_time": time.Now()}})
	return err
}

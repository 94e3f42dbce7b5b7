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

type InspectionRepository interface {
	Create(ctx context.Context, inspection *domain.REACInspection) error
	List(ctx context.Context, propertyID string) ([]domain.REACInspection, error)
	ListAll(ctx context.Context) ([]domain.REACInspection, error)
	ListUpcoming(ctx context.Context, now time.Time, days int) ([]domain.REACInspection, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
}

type mongoInspectionRepo struct {
	collection *mongo.Collection
}

func NewMongoInspectionRepo(db *mongo.Database) InspectionRepository {
	return &mongoInspectionRepo{
		collection: db.Collection("inspections"),
	}
}

func (r *mongoInspectionRepo) Create(ctx context.Context, inspection *domain.REACInspection) error {
	inspection.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, inspection)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		inspection.ID = oid
	}
	return nil
}

// List 依檢查日由新到舊
func (r *mongoInspectionRepo) List(ctx context.Context, propertyID string) ([]domain.REACInspection, error) {
	query := bson.M{"deleted_at": nil}
	if propertyID != "" {
		query["property_id"] = propertyID
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "inspection_date", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []domain.REACInspection
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mongoInspectionRepo) ListAll(ctx context.Context) ([]domain.REACInspection, error) {
	return r.List(ctx, "")
}

// ListUpcoming 下次檢查日落在 now ~ now+days 的紀錄
func (r *mongoInspectionRepo) ListUpcoming(ctx context.Context, now time.Time, days int) ([]domain.REACInspection, error) {
	cutoff := now.AddDate(0, 0, days)

	query := bson.M{
		"deleted_at":           nil,
		"next_inspection_date": bson.M{"$gte": now, "$lte": cutoff},
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "next_inspection_date", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []domain.REACInspection
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mongoInspectionRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

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

type AllowanceRepository interface {
	Create(ctx context.Context, allowance *domain.UtilityAllowance) error
	List(ctx context.Context, propertyID string) ([]domain.UtilityAllowance, error)
	Current(ctx context.Context, propertyID string, bedroomCount int, asOf time.Time) (*domain.UtilityAllowance, error)
}

type mongoAllowanceRepo struct {
	collection *mongo.Collection
}

func NewMongoAllowanceRepo(db *mongo.Database) AllowanceRepository {
	return &mongoAllowanceRepo{
		collection: db.Collection("utility_allowances"),
	}
}

func (r *mongoAllowanceRepo) Create(ctx context.Context, allowance *domain.UtilityAllowance) error {
	allowance.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, allowance)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		allowance.ID = oid
	}
	return nil
}

func (r *mongoAllowanceRepo) List(ctx context.Context, propertyID string) ([]domain.UtilityAllowance, error) {
	query := bson.M{"deleted_at": nil}
	if propertyID != "" {
		query["property_id"] = propertyID
	}

	findOptions := options.Find().SetSort(bson.D{
		{Key: "effective_date", Value: -1},
		{Key: "bedroom_count", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []domain.UtilityAllowance
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Current 取該物業該房型目前生效的補貼標準 (effective_date <= asOf，取最新一筆)
func (r *mongoAllowanceRepo) Current(ctx context.Context, propertyID string, bedroomCount int, asOf time.Time) (*domain.UtilityAllowance, error) {
	query := bson.M{
		"deleted_at":     nil,
		"property_id":    propertyID,
		"bedroom_count":  bedroomCount,
		"effective_date": bson.M{"$lte": asOf},
	}

	findOptions := options.FindOne().SetSort(bson.D{{Key: "effective_date", Value: -1}})

	var allowance domain.UtilityAllowance
	err := r.collection.FindOne(ctx, query, findOptions).Decode(&allowance)
	if err != nil {
		return nil, err
	}
	return &allowance, nil
}

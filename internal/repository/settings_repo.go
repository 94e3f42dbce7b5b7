package repository

import (
	"context"

	"hud-compliance/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SettingsRepository interface {
	GetSettings(ctx context.Context) (*domain.NotificationSettings, error)
	SaveSettings(ctx context.Context, settings domain.NotificationSettings) error
}

type mongoSettingsRepo struct {
	collection *mongo.Collection
}

func NewMongoSettingsRepo(db *mongo.Database) SettingsRepository {
	return &mongoSettingsRepo{
		collection: db.Collection("settings"),
	}
}

// GetSettings 設定為單例文件 (_id 固定)，查不到時回傳預設值
func (r *mongoSettingsRepo) GetSettings(ctx context.Context) (*domain.NotificationSettings, error) {
	var settings domain.NotificationSettings
	err := r.collection.FindOne(ctx, bson.M{"_id": "global"}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return &domain.NotificationSettings{NotifyOnExpiry: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *mongoSettingsRepo) SaveSettings(ctx context.Context, settings domain.NotificationSettings) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": "global"}, settings, opts)
	return err
}

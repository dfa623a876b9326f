package facilityRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sportify/database"
	"sportify/models"
	"sportify/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const cacheTTL = 2 * time.Minute

// MongoFacilityRepo implements FacilityRepository using MongoDB with a Redis
// read-through cache for single-facility lookups.
type MongoFacilityRepo struct {
	coll  *mongo.Collection
	cache *redis.Client
}

// NewMongoFacilityRepo creates a new instance of FacilityRepository using MongoDB.
func NewMongoFacilityRepo() FacilityRepository {
	coll := database.DB().Collection("facilities")
	return &MongoFacilityRepo{coll: coll, cache: utils.GetCacheClient()}
}

func (r *MongoFacilityRepo) GetByID(ctx context.Context, id string) (*models.Facility, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "facility:" + id
	if cached, err := r.cache.Get(ctx, cacheKey).Result(); err == nil {
		var facility models.Facility
		if err := json.Unmarshal([]byte(cached), &facility); err == nil {
			return &facility, nil
		}
	}

	var facility models.Facility
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&facility); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch facility %s: %w", id, err)
	}

	if data, err := json.Marshal(facility); err == nil {
		if err := r.cache.Set(ctx, cacheKey, data, cacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("facility cache write failed", zap.String("id", id), zap.Error(err))
		}
	}
	return &facility, nil
}

func (r *MongoFacilityRepo) GetAll(ctx context.Context) ([]models.Facility, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve facilities: %w", err)
	}
	defer cursor.Close(ctx)

	var facilities []models.Facility
	for cursor.Next(ctx) {
		var f models.Facility
		if err := cursor.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to decode facility: %w", err)
		}
		facilities = append(facilities, f)
	}
	return facilities, nil
}

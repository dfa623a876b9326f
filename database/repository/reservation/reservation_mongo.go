package reservationRepo

import (
	"sportify/database"
	"sportify/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoReservationRepo implements ReservationRepository using MongoDB. Hour
// buckets live in a companion "slot_claims" collection whose unique index is
// what actually serializes concurrent bookings for the same window.
type MongoReservationRepo struct {
	coll   *mongo.Collection
	claims *mongo.Collection
}

// NewMongoReservationRepo creates a new instance of ReservationRepository
// using MongoDB and ensures its indexes.
func NewMongoReservationRepo() ReservationRepository {
	db := database.DB()
	repo := &MongoReservationRepo{
		coll:   db.Collection("reservations"),
		claims: db.Collection("slot_claims"),
	}
	if err := repo.ensureIndexes(); err != nil {
		// The claims unique index is the overlap guard; refusing to start
		// without it beats accepting double bookings.
		utils.GetLogger().Fatal("failed to create reservation indexes", zap.Error(err))
	}
	return repo
}

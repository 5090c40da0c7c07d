package salonRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SalonRepository exposes read access to salon profiles. The scheduling core
// only reads configuration; owner-facing mutation lives elsewhere.
type SalonRepository interface {
	GetByID(id string) (*models.Salon, error)
	DisableGoogleSync(id string) error
}

// MongoSalonRepo is the MongoDB-backed salon repository.
type MongoSalonRepo struct {
	coll *mongo.Collection
}

func NewMongoSalonRepo() *MongoSalonRepo {
	return &MongoSalonRepo{coll: database.Collection("salons")}
}

func (repo *MongoSalonRepo) GetByID(id string) (*models.Salon, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var salon models.Salon
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&salon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("salon %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch salon: %w", err)
	}
	return &salon, nil
}

// DisableGoogleSync flips sync off for a salon whose credential was revoked.
func (repo *MongoSalonRepo) DisableGoogleSync(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := repo.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"googleSyncEnabled": false}},
	)
	if err != nil {
		return fmt.Errorf("failed to disable google sync: %w", err)
	}
	return nil
}

package professionalRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProfessionalRepository exposes read access to a salon's staff profiles.
// Team management (add/remove) is an owner-facing surface that lives
// elsewhere; the scheduling core only reads.
type ProfessionalRepository interface {
	GetByID(salonID, id string) (*models.Professional, error)
	ListBySalon(salonID string) ([]models.Professional, error)
}

// MongoProfessionalRepo is the MongoDB-backed professional repository.
type MongoProfessionalRepo struct {
	coll *mongo.Collection
}

func NewMongoProfessionalRepo() *MongoProfessionalRepo {
	return &MongoProfessionalRepo{coll: database.Collection("professionals")}
}

func (repo *MongoProfessionalRepo) GetByID(salonID, id string) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var pro models.Professional
	err := repo.coll.FindOne(ctx, bson.M{"salonId": salonID, "id": id}).Decode(&pro)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("professional %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch professional: %w", err)
	}
	return &pro, nil
}

func (repo *MongoProfessionalRepo) ListBySalon(salonID string) ([]models.Professional, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"salonId": salonID})
	if err != nil {
		return nil, fmt.Errorf("failed to list professionals: %w", err)
	}
	defer cursor.Close(ctx)

	var pros []models.Professional
	if err := cursor.All(ctx, &pros); err != nil {
		return nil, fmt.Errorf("failed to decode professionals: %w", err)
	}
	return pros, nil
}

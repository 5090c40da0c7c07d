package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAppointmentRepo is the MongoDB-backed appointment repository.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo returns a repository bound to the appointments collection.
func NewMongoAppointmentRepo() *MongoAppointmentRepo {
	return &MongoAppointmentRepo{coll: database.Collection("appointments")}
}

func (repo *MongoAppointmentRepo) QueryByTimeRange(salonID, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"salonId":   salonID,
		"startTime": bson.M{"$gte": from.UTC(), "$lte": to.UTC()},
	}
	if professionalID != "" {
		filter["professionalId"] = professionalID
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments by time range: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

func (repo *MongoAppointmentRepo) GetByID(salonID, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := repo.coll.FindOne(ctx, bson.M{"salonId": salonID, "id": id}).Decode(&appt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("appointment %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	return &appt, nil
}

// nonBlockingStatuses are excluded from the overlap precondition.
var nonBlockingStatuses = []string{models.StatusCanceled, models.StatusRejected}

func (repo *MongoAppointmentRepo) InsertIfFree(appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Overlap precondition: any live appointment with startTime < end and
	// endTime > start occupies part of the requested span. A booking for a
	// specific professional only competes with that professional's agenda.
	filter := bson.M{
		"salonId":   appt.SalonID,
		"status":    bson.M{"$nin": nonBlockingStatuses},
		"startTime": bson.M{"$lt": appt.EndTime.UTC()},
		"endTime":   bson.M{"$gt": appt.StartTime.UTC()},
	}
	if appt.ProfessionalID != "" {
		filter["professionalId"] = appt.ProfessionalID
	}
	count, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to verify slot is free: %w", err)
	}
	if count > 0 {
		return ErrSlotTaken
	}

	if _, err := repo.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

func (repo *MongoAppointmentRepo) UpdateStatus(salonID, id, status string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"salonId": salonID, "id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("appointment %s not found", id)
	}
	return nil
}

func (repo *MongoAppointmentRepo) UpdateTimes(salonID, id string, start, end time.Time, googleEventID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{
		"startTime":     start.UTC(),
		"endTime":       end.UTC(),
		"googleEventId": googleEventID,
		"reminderSent":  false,
	}
	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"salonId": salonID, "id": id},
		bson.M{"$set": update},
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment times: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("appointment %s not found", id)
	}
	return nil
}

func (repo *MongoAppointmentRepo) FindDueReminders(from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":       models.StatusConfirmed,
		"reminderSent": false,
		"startTime":    bson.M{"$gte": from.UTC(), "$lt": to.UTC()},
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query due reminders: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode reminder appointments: %w", err)
	}
	return appts, nil
}

func (repo *MongoAppointmentRepo) MarkReminderSent(salonID, id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := repo.coll.UpdateOne(ctx,
		bson.M{"salonId": salonID, "id": id},
		bson.M{"$set": bson.M{"reminderSent": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}
	return nil
}

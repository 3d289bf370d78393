package schedules

import (
	"context"
	"errors"
	"time"
	"vetcare-service/internal/app/contracts"
	"vetcare-service/internal/app/models"
	"vetcare-service/internal/pkg/constvars"
	"vetcare-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const indexDoctorWeekday = "uniq_doctor_weekday"

type ScheduleMongoRepository struct {
	Collection *mongo.Collection
}

func NewScheduleMongoRepository(db *mongo.Database) contracts.ScheduleRepository {
	return &ScheduleMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionWeeklySchedules),
	}
}

func (r *ScheduleMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "doctorId", Value: 1}, {Key: "dayOfWeek", Value: 1}},
		Options: options.Index().SetName(indexDoctorWeekday).SetUnique(true),
	})
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err)
	}
	return nil
}

func (r *ScheduleMongoRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.WeeklySchedule, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"doctorId": doctorID})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	schedules := make([]models.WeeklySchedule, 0)
	err = cursor.All(ctx, &schedules)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return schedules, nil
}

func (r *ScheduleMongoRepository) FindByID(ctx context.Context, scheduleID string) (*models.WeeklySchedule, error) {
	objectID, err := primitive.ObjectIDFromHex(scheduleID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var schedule models.WeeklySchedule
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&schedule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &schedule, nil
}

// Upsert writes the window for (doctorId, dayOfWeek). A new schedule starts
// active; an existing one keeps its active flag.
func (r *ScheduleMongoRepository) Upsert(ctx context.Context, schedule *models.WeeklySchedule) (*models.WeeklySchedule, error) {
	now := time.Now()
	filter := bson.M{
		"doctorId":  schedule.DoctorID,
		"dayOfWeek": schedule.DayOfWeek,
	}
	update := bson.M{
		"$set": bson.M{
			"startTime":    schedule.StartTime,
			"endTime":      schedule.EndTime,
			"slotDuration": schedule.SlotDuration,
			"updatedAt":    now,
		},
		"$setOnInsert": bson.M{
			"isActive":  true,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.WeeklySchedule
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved)
	if err != nil {
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &saved, nil
}

// ToggleActive flips isActive server side so concurrent toggles never lose an update.
func (r *ScheduleMongoRepository) ToggleActive(ctx context.Context, scheduleID, doctorID string) (*models.WeeklySchedule, error) {
	objectID, err := primitive.ObjectIDFromHex(scheduleID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{"_id": objectID, "doctorId": doctorID}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "isActive", Value: bson.D{{Key: "$not", Value: bson.A{"$isActive"}}}},
			{Key: "updatedAt", Value: time.Now()},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var saved models.WeeklySchedule
	err = r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &saved, nil
}

func (r *ScheduleMongoRepository) Delete(ctx context.Context, scheduleID, doctorID string) error {
	objectID, err := primitive.ObjectIDFromHex(scheduleID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID, "doctorId": doctorID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

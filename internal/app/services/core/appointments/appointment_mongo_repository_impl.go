package appointments

import (
	"context"
	"errors"
	"strings"
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

const (
	indexOneActivePerUser = "uniq_active_appointment_per_user"
	indexOneActivePerSlot = "uniq_active_appointment_per_slot"
	indexDoctorSlotStart  = "doctor_slot_start"
	indexActiveSlotStart  = "active_slot_start"
)

// activeFilter matches appointments that are neither cancelled nor completed.
var activeFilter = bson.D{
	{Key: "cancelled", Value: false},
	{Key: "isCompleted", Value: false},
}

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Database) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionAppointments),
	}
}

// EnsureIndexes creates the partial unique indexes that back the one active
// appointment per user and per slot rules.
func (r *AppointmentMongoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().
				SetName(indexOneActivePerUser).
				SetUnique(true).
				SetPartialFilterExpression(activeFilter),
		},
		{
			Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "slotDate", Value: 1}, {Key: "slotMinutes", Value: 1}},
			Options: options.Index().
				SetName(indexOneActivePerSlot).
				SetUnique(true).
				SetPartialFilterExpression(activeFilter),
		},
		{
			Keys:    bson.D{{Key: "doctorId", Value: 1}, {Key: "slotStart", Value: -1}},
			Options: options.Index().SetName(indexDoctorSlotStart),
		},
		{
			Keys:    bson.D{{Key: "cancelled", Value: 1}, {Key: "isCompleted", Value: 1}, {Key: "slotStart", Value: 1}},
			Options: options.Index().SetName(indexActiveSlotStart),
		},
	}

	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err)
	}
	return nil
}

func (r *AppointmentMongoRepository) Insert(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	result, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), indexOneActivePerSlot) {
				return nil, exceptions.ErrSlotAlreadyBooked(appointment.DoctorID, appointment.SlotDate, appointment.SlotMinutes)
			}
			return nil, exceptions.ErrActiveAppointmentExists(appointment.UserID)
		}
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}

	saved := *appointment
	if objectID, ok := result.InsertedID.(primitive.ObjectID); ok {
		saved.ID = objectID.Hex()
	}
	return &saved, nil
}

func (r *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var appointment models.Appointment
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"userId": userID}, opts)
}

func (r *AppointmentMongoRepository) FindActiveByUserID(ctx context.Context, userID string) (*models.Appointment, error) {
	filter := append(bson.D{{Key: "userId", Value: userID}}, activeFilter...)

	var appointment models.Appointment
	err := r.Collection.FindOne(ctx, filter).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "slotStart", Value: -1}})
	return r.find(ctx, bson.M{"doctorId": doctorID}, opts)
}

func (r *AppointmentMongoRepository) FindOverdue(ctx context.Context, cutoff time.Time, limit int) ([]models.Appointment, error) {
	filter := append(bson.D{{Key: "slotStart", Value: bson.M{"$lte": cutoff}}}, activeFilter...)
	opts := options.Find().SetSort(bson.D{{Key: "slotStart", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, filter, opts)
}

func (r *AppointmentMongoRepository) MarkCancelled(ctx context.Context, appointmentID, reason string, at time.Time) (bool, error) {
	update := bson.M{"$set": bson.M{
		"cancelled":    true,
		"cancelReason": reason,
		"cancelledAt":  at,
	}}
	return r.transition(ctx, appointmentID, update)
}

func (r *AppointmentMongoRepository) MarkCompleted(ctx context.Context, appointmentID string, at time.Time) (bool, error) {
	update := bson.M{"$set": bson.M{
		"isCompleted": true,
		"completedAt": at,
	}}
	return r.transition(ctx, appointmentID, update)
}

// transition applies update only while the appointment is still active.
func (r *AppointmentMongoRepository) transition(ctx context.Context, appointmentID string, update bson.M) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := append(bson.D{{Key: "_id", Value: objectID}}, activeFilter...)
	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *AppointmentMongoRepository) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Appointment, error) {
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	err = cursor.All(ctx, &appointments)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

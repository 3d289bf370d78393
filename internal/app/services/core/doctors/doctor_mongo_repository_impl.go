package doctors

import (
	"context"
	"errors"
	"fmt"
	"vetcare-service/internal/app/contracts"
	"vetcare-service/internal/app/models"
	"vetcare-service/internal/pkg/constvars"
	"vetcare-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DoctorMongoRepository struct {
	Collection *mongo.Collection
}

func NewDoctorMongoRepository(db *mongo.Database) contracts.DoctorRepository {
	return &DoctorMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionDoctors),
	}
}

func (r *DoctorMongoRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var doctor models.Doctor
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doctor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &doctor, nil
}

// ClaimSlot is a single conditional update: the filter only matches while the
// minute is absent from that day's array, so two concurrent claims cannot both win.
func (r *DoctorMongoRepository) ClaimSlot(ctx context.Context, doctorID, slotDate string, minutes int) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	field := slotField(slotDate)
	filter := bson.M{
		"_id": objectID,
		field: bson.M{"$ne": minutes},
	}
	update := bson.M{"$addToSet": bson.M{field: minutes}}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *DoctorMongoRepository) ReleaseSlot(ctx context.Context, doctorID, slotDate string, minutes int) error {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$pull": bson.M{slotField(slotDate): minutes}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func slotField(slotDate string) string {
	return fmt.Sprintf("slotsBooked.%s", slotDate)
}

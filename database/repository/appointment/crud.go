package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"nailart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Insert stores a new appointment. The store assigns the id.
func (r *mongoAppointmentRepo) Insert(ctx context.Context, appt *models.Appointment) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}

	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	appt.CreatedAt = r.now().UTC()
	if appt.Addons == nil {
		appt.Addons = []string{}
	}

	res, err := coll.InsertOne(ctx, appt)
	if err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		appt.ID = oid
	}
	return nil
}

// ListAll returns all appointments ordered by creation time, newest first.
func (r *mongoAppointmentRepo) ListAll(ctx context.Context) ([]models.Appointment, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}

	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appointments := []models.Appointment{}
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		if a.Addons == nil {
			a.Addons = []string{}
		}
		appointments = append(appointments, a)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}
	return appointments, nil
}

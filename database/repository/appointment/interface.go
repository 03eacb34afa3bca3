package appointmentRepo

import (
	"context"
	"time"

	"nailart/models"

	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "appointments"

// AppointmentRepository persists booking requests.
type AppointmentRepository interface {
	// Insert stores a new appointment stamped with the current UTC time.
	Insert(ctx context.Context, appt *models.Appointment) error
	// ListAll returns every appointment, newest first.
	ListAll(ctx context.Context) ([]models.Appointment, error)
	// EnsureIndexes creates the indexes used by ListAll.
	EnsureIndexes(ctx context.Context) error
}

// DatabaseProvider hands out the database handle, connecting lazily if needed.
// *database.Connector satisfies it.
type DatabaseProvider interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

type mongoAppointmentRepo struct {
	db  DatabaseProvider
	now func() time.Time
}

// NewMongoAppointmentRepo returns an AppointmentRepository backed by MongoDB.
func NewMongoAppointmentRepo(db DatabaseProvider) AppointmentRepository {
	return &mongoAppointmentRepo{db: db, now: time.Now}
}

// newContext derives a context bounded by timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *mongoAppointmentRepo) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(collectionName), nil
}

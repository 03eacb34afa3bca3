// File: models/appointment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment is a stored booking request. Records are written once and only read afterwards.
// ServiceType may carry add-on labels ("Gel Nails + French, Cat eye"), AppointmentDate is
// yyyy-MM-dd and AppointmentTime is HH:mm.
type Appointment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	FirstName       string             `bson:"first_name" json:"first_name"`
	LastName        string             `bson:"last_name" json:"last_name"`
	Email           string             `bson:"email" json:"email"`
	ServiceType     string             `bson:"service_type" json:"service_type"`
	AppointmentDate string             `bson:"appointment_date" json:"appointment_date"`
	AppointmentTime string             `bson:"appointment_time" json:"appointment_time"`
	Addons          []string           `bson:"addons" json:"addons"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// AppointmentInput carries the trimmed, validated values of a booking request.
type AppointmentInput struct {
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	ServiceType     string   `json:"service_type"`
	AppointmentDate string   `json:"appointment_date"`
	AppointmentTime string   `json:"appointment_time"`
	Addons          []string `json:"addons,omitempty"`
}

// FullName joins first and last name.
func (in AppointmentInput) FullName() string {
	return in.FirstName + " " + in.LastName
}

// ToAppointment builds the record to persist. CreatedAt is stamped by the repository.
func (in AppointmentInput) ToAppointment() *Appointment {
	addons := in.Addons
	if addons == nil {
		addons = []string{}
	}
	return &Appointment{
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		ServiceType:     in.ServiceType,
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: in.AppointmentTime,
		Addons:          addons,
	}
}

// AppointmentView is the admin-facing JSON shape of a stored appointment.
type AppointmentView struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	ServiceType     string    `json:"service_type"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Addons          []string  `json:"addons"`
	CreatedAt       time.Time `json:"created_at"`
}

// View converts the record for the admin listing; a missing add-on list becomes empty.
func (a Appointment) View() AppointmentView {
	addons := a.Addons
	if addons == nil {
		addons = []string{}
	}
	return AppointmentView{
		ID:              a.ID.Hex(),
		FirstName:       a.FirstName,
		LastName:        a.LastName,
		Email:           a.Email,
		ServiceType:     a.ServiceType,
		AppointmentDate: a.AppointmentDate,
		AppointmentTime: a.AppointmentTime,
		Addons:          addons,
		CreatedAt:       a.CreatedAt.UTC(),
	}
}

// File: models/catalog.go
package models

import "fmt"

// CatalogItem is a selectable option on the booking form with its labels per language.
type CatalogItem struct {
	Value   string `json:"value"`
	LabelTR string `json:"label_tr"`
	LabelEN string `json:"label_en"`
}

// Label returns the label for lang ("tr" or "en"), falling back to Turkish.
func (i CatalogItem) Label(lang string) string {
	if lang == "en" {
		return i.LabelEN
	}
	return i.LabelTR
}

// Catalog lists what the booking form offers.
type Catalog struct {
	Services  []CatalogItem `json:"services"`
	Addons    []CatalogItem `json:"addons"`
	TimeSlots []string      `json:"time_slots"`
}

const (
	firstSlotMinute = 9 * 60
	lastSlotMinute  = 17*60 + 30
	slotStepMinutes = 30
)

var (
	studioServices = []CatalogItem{
		{Value: "gel", LabelTR: "Jel Tırnak", LabelEN: "Gel Nails"},
		{Value: "prosthetic", LabelTR: "Protez Tırnak", LabelEN: "Prosthetic Nails"},
		{Value: "manicure-pedicure", LabelTR: "Manikür & Pedikür", LabelEN: "Manicure & Pedicure"},
		{Value: "nail-art", LabelTR: "Tırnak Sanatı", LabelEN: "Nail Art"},
	}
	studioAddons = []CatalogItem{
		{Value: "french", LabelTR: "Frenc", LabelEN: "French"},
		{Value: "cat-eye", LabelTR: "Kedi gözü", LabelEN: "Cat eye"},
		{Value: "chrome-dust", LabelTR: "Chrome tuzu", LabelEN: "Chrome dust"},
		{Value: "pearl-dust", LabelTR: "İnci tozu", LabelEN: "Pearl dust"},
		{Value: "nail-art-addon", LabelTR: "Nail art", LabelEN: "Nail art"},
	}
)

// TimeSlots returns the half-hour grid from 09:00 to 17:30 inclusive.
func TimeSlots() []string {
	var slots []string
	for m := firstSlotMinute; m <= lastSlotMinute; m += slotStepMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

// StudioCatalog returns a fresh copy of the studio's offering.
func StudioCatalog() Catalog {
	return Catalog{
		Services:  append([]CatalogItem(nil), studioServices...),
		Addons:    append([]CatalogItem(nil), studioAddons...),
		TimeSlots: TimeSlots(),
	}
}

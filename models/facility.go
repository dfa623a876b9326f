package models

// PricingPackage is a bookable rate offered by a facility.
type PricingPackage struct {
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description" json:"description"`
	FeePerHour  float64 `bson:"fee_per_hour" json:"feePerHour"`
}

// Facility represents a bookable sports facility. Records are managed by the
// staff console; the booking engine only ever reads them.
type Facility struct {
	ID              string           `bson:"_id" json:"id"` // e.g. "F001"
	Name            string           `bson:"name" json:"name"`
	Image           string           `bson:"image" json:"image"`
	Category        string           `bson:"category" json:"category"`
	About           string           `bson:"about" json:"about"`
	OpenTime        string           `bson:"open_time" json:"openTime"`   // "HH:mm"
	CloseTime       string           `bson:"close_time" json:"closeTime"` // "HH:mm", "24:00" allowed
	MinBookingHours int              `bson:"min_booking_hours" json:"minBookingHours"`
	PricingPackages []PricingPackage `bson:"pricing_packages" json:"pricingPackages"`
	Available       bool             `bson:"available" json:"available"` // manual maintenance switch
}

// Package returns the pricing package with the given name, if the facility
// offers it.
func (f *Facility) Package(name string) (PricingPackage, bool) {
	for _, p := range f.PricingPackages {
		if p.Name == name {
			return p, true
		}
	}
	return PricingPackage{}, false
}

package reservation

import (
	"context"

	"sportify/models"
	"sportify/utils"
)

// AvailableSlots computes the hourly slot list for a facility on a calendar
// day. Every integer hour in [open, close) gets a 12-hour clock label; hours
// covered by a Pending or Paid reservation carry a "(booked)" suffix. This is
// a read-only query, safe for unauthenticated slot browsing.
func (s *DefaultBookingService) AvailableSlots(ctx context.Context, facilityID, date string) ([]string, error) {
	if facilityID == "" || date == "" {
		return nil, NewValidationError("facility id and date are required")
	}

	facility, err := s.Facilities.GetByID(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, &NotFoundError{Resource: "facility", ID: facilityID}
	}

	openHour, err := utils.ClockHour(facility.OpenTime)
	if err != nil {
		return nil, NewValidationError("facility %s has malformed open time %q", facilityID, facility.OpenTime)
	}
	closeHour, err := utils.ClockHour(facility.CloseTime)
	if err != nil {
		return nil, NewValidationError("facility %s has malformed close time %q", facilityID, facility.CloseTime)
	}

	existing, err := s.Reservations.FindByFacilityAndDate(ctx, facilityID, date, models.ActiveStatuses)
	if err != nil {
		return nil, err
	}

	booked := make(map[int]bool)
	for _, res := range existing {
		hours, err := utils.HourRange(res.StartTime, res.EndTime)
		if err != nil {
			continue
		}
		for _, h := range hours {
			booked[h] = true
		}
	}

	slots := make([]string, 0, closeHour-openHour)
	for hour := openHour; hour < closeHour; hour++ {
		label := utils.HourLabel(hour)
		if booked[hour] {
			label += " (booked)"
		}
		slots = append(slots, label)
	}
	return slots, nil
}

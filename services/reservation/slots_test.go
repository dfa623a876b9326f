package reservation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sportify/models"
)

func TestAvailableSlots(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	input := userInput() // 10:00-12:00
	if _, err := svc.ValidateAndCreate(ctx, input); err != nil {
		t.Fatalf("seed reservation failed: %v", err)
	}

	slots, err := svc.AvailableSlots(ctx, "F001", input.Date)
	if err != nil {
		t.Fatalf("AvailableSlots failed: %v", err)
	}

	// 08:00-22:00 means one slot per hour in [8, 22).
	if len(slots) != 14 {
		t.Fatalf("got %d slots, want 14", len(slots))
	}
	if slots[0] != "8:00 AM" {
		t.Errorf("first slot = %q, want \"8:00 AM\"", slots[0])
	}
	if slots[2] != "10:00 AM (booked)" || slots[3] != "11:00 AM (booked)" {
		t.Errorf("booked window not marked: %q, %q", slots[2], slots[3])
	}
	if slots[4] != "12:00 PM" {
		t.Errorf("end hour should be free, got %q", slots[4])
	}
	for _, slot := range slots[5:] {
		if strings.Contains(slot, "(booked)") {
			t.Errorf("unexpected booked slot %q", slot)
		}
	}
}

func TestAvailableSlotsPartialHoursWiden(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	input := userInput()
	input.StartTime = "10:30"
	input.EndTime = "11:30"
	if _, err := svc.ValidateAndCreate(ctx, input); err != nil {
		t.Fatalf("seed reservation failed: %v", err)
	}

	slots, err := svc.AvailableSlots(ctx, "F001", input.Date)
	if err != nil {
		t.Fatalf("AvailableSlots failed: %v", err)
	}
	// A 10:30-11:30 booking occupies both the 10 and 11 o'clock buckets.
	if slots[2] != "10:00 AM (booked)" || slots[3] != "11:00 AM (booked)" {
		t.Errorf("partial-hour booking not widened: %q, %q", slots[2], slots[3])
	}
}

func TestAvailableSlotsIgnoreInactive(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.ValidateAndCreate(ctx, userInput())
	if err != nil {
		t.Fatalf("seed reservation failed: %v", err)
	}
	if _, err := svc.DirectCancel(ctx, res.ID, "no show", "S001"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	slots, err := svc.AvailableSlots(ctx, "F001", res.Date)
	if err != nil {
		t.Fatalf("AvailableSlots failed: %v", err)
	}
	for _, slot := range slots {
		if strings.Contains(slot, "(booked)") {
			t.Errorf("cancelled reservation still marks %q booked", slot)
		}
	}
}

func TestAvailableSlotsUnknownFacility(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AvailableSlots(context.Background(), "F404", "2026-09-12")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}

func TestAvailableSlotsMidnightClose(t *testing.T) {
	svc, _, _ := newTestService()
	facility := testFacility()
	facility.OpenTime = "20:00"
	facility.CloseTime = "24:00"
	svc.Facilities = &memFacilityRepo{facilities: map[string]*models.Facility{"F001": facility}}

	slots, err := svc.AvailableSlots(context.Background(), "F001", "2026-09-12")
	if err != nil {
		t.Fatalf("AvailableSlots failed: %v", err)
	}
	if len(slots) != 4 {
		t.Fatalf("got %d slots, want 4", len(slots))
	}
	if slots[3] != "11:00 PM" {
		t.Errorf("last slot = %q, want \"11:00 PM\"", slots[3])
	}
}

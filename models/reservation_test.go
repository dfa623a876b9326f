package models

import "testing"

func TestStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to ReservationStatus
	}{
		{StatusPending, StatusPaid},
		{StatusPending, StatusCancelling},
		{StatusPending, StatusCancelled},
		{StatusPaid, StatusCancelling},
		{StatusPaid, StatusCancelled},
		{StatusPaid, StatusCompleted},
		{StatusCancelling, StatusCancelled},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransition(tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	forbidden := []struct {
		from, to ReservationStatus
	}{
		{StatusPending, StatusCompleted},
		{StatusPaid, StatusPending},
		{StatusCancelling, StatusPaid},
		{StatusCancelling, StatusPending},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusPaid},
		{StatusCompleted, StatusPending},
		{StatusCompleted, StatusCancelled},
	}
	for _, tc := range forbidden {
		if tc.from.CanTransition(tc.to) {
			t.Errorf("%s -> %s should be forbidden", tc.from, tc.to)
		}
	}
}

func TestStatusClassification(t *testing.T) {
	terminal := map[ReservationStatus]bool{
		StatusPending:    false,
		StatusPaid:       false,
		StatusCancelling: false,
		StatusCancelled:  true,
		StatusCompleted:  true,
	}
	for status, want := range terminal {
		if status.IsTerminal() != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, !want, want)
		}
	}

	active := map[ReservationStatus]bool{
		StatusPending:    true,
		StatusPaid:       true,
		StatusCancelling: false,
		StatusCancelled:  false,
		StatusCompleted:  false,
	}
	for status, want := range active {
		if status.IsActive() != want {
			t.Errorf("%s.IsActive() = %v, want %v", status, !want, want)
		}
	}
}

func TestFacilityPackageLookup(t *testing.T) {
	f := Facility{
		PricingPackages: []PricingPackage{
			{Name: "Standard", FeePerHour: 500},
			{Name: "Full Court", FeePerHour: 900},
		},
	}

	pkg, ok := f.Package("Full Court")
	if !ok || pkg.FeePerHour != 900 {
		t.Errorf("Package lookup failed: %+v, %v", pkg, ok)
	}
	if _, ok := f.Package("VIP"); ok {
		t.Error("unknown package should not resolve")
	}
}

func TestEmailSummary(t *testing.T) {
	r := Reservation{
		ID:           "R1724838000000",
		FacilityName: "Center Court",
		Date:         "2026-09-12",
		StartTime:    "10:00",
		EndTime:      "12:00",
		TotalPrice:   1000,
		UserName:     "Alex Reyes",
	}

	p := r.EmailSummary(EmailPaymentSuccess, "alex@example.com")
	if p.Kind != EmailPaymentSuccess || p.To != "alex@example.com" {
		t.Errorf("payload header wrong: %+v", p)
	}
	if p.ReservationID != r.ID || p.FacilityName != r.FacilityName || p.TotalPrice != r.TotalPrice {
		t.Errorf("payload snapshot wrong: %+v", p)
	}
}

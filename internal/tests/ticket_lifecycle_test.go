package tests

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"fleetops/internal/domain"
	"fleetops/internal/service"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTicketFixture() (*MockTicketRepository, *MockDriverRepository, *MockVehicleRepository, *service.TicketService) {
	ticketRepo := NewMockTicketRepository()
	driverRepo := NewMockDriverRepository()
	vehicleRepo := NewMockVehicleRepository()

	driverRepo.AddDriver(&domain.Driver{
		ID:            "drv-1",
		Name:          "John Smith",
		LicenseNumber: "DL-123456",
		Email:         "jsmith@fleetops.local",
		Status:        domain.DriverStatusActive,
	})
	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:           "veh-1",
		Registration: "KDA 123A",
		Status:       domain.VehicleStatusActive,
	})

	svc := service.NewTicketService(ticketRepo, driverRepo, vehicleRepo, testLogger())
	return ticketRepo, driverRepo, vehicleRepo, svc
}

var adminIdentity = domain.Identity{ID: "admin", Name: "Transport Officer", Email: "admin@fleetops.local", Role: domain.RoleAdmin}

func TestTicket_SubmitSnapshotsDriverAndVehicle(t *testing.T) {
	t.Parallel()

	_, _, _, svc := newTicketFixture()

	ticket, err := svc.Submit(context.Background(), service.SubmitTicketRequest{
		DriverID:     "drv-1",
		VehicleID:    "veh-1",
		Destination:  "Nakuru",
		Purpose:      "Equipment delivery",
		FuelRequired: 80,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ticket.Status != domain.TicketStatusPending {
		t.Errorf("expected pending status, got %s", ticket.Status)
	}
	if ticket.DriverName != "John Smith" {
		t.Errorf("expected driver name snapshot, got %q", ticket.DriverName)
	}
	if ticket.DriverLicense != "DL-123456" {
		t.Errorf("expected driver license snapshot, got %q", ticket.DriverLicense)
	}
	if ticket.VehicleRegistration != "KDA 123A" {
		t.Errorf("expected vehicle registration snapshot, got %q", ticket.VehicleRegistration)
	}
	if ticket.ID == "" {
		t.Error("expected a generated id")
	}
	if ticket.DepartureDate.IsZero() || ticket.ReturnDate.IsZero() {
		t.Error("expected departure and return dates to default")
	}
}

func TestTicket_SnapshotSurvivesDriverEdit(t *testing.T) {
	t.Parallel()

	ticketRepo, driverRepo, _, svc := newTicketFixture()

	ticket, err := svc.Submit(context.Background(), service.SubmitTicketRequest{
		DriverID:     "drv-1",
		VehicleID:    "veh-1",
		Destination:  "Eldoret",
		Purpose:      "Site inspection",
		FuelRequired: 40,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Rename the driver after submission.
	driver, _ := driverRepo.GetByID(context.Background(), "drv-1")
	driver.Name = "John M. Smith"
	if err := driverRepo.Update(context.Background(), driver); err != nil {
		t.Fatalf("update driver: %v", err)
	}

	stored := ticketRepo.GetTicket(ticket.ID)
	if stored.DriverName != "John Smith" {
		t.Errorf("snapshot should not track driver edits, got %q", stored.DriverName)
	}
}

func TestTicket_SubmitValidation(t *testing.T) {
	t.Parallel()

	_, _, _, svc := newTicketFixture()

	cases := []struct {
		name string
		req  service.SubmitTicketRequest
		want error
	}{
		{
			name: "missing driver",
			req:  service.SubmitTicketRequest{VehicleID: "veh-1", Destination: "Nakuru", Purpose: "x", FuelRequired: 10},
			want: service.ErrInvalidDriverID,
		},
		{
			name: "unknown driver",
			req:  service.SubmitTicketRequest{DriverID: "ghost", VehicleID: "veh-1", Destination: "Nakuru", Purpose: "x", FuelRequired: 10},
			want: service.ErrUnknownDriver,
		},
		{
			name: "unknown vehicle",
			req:  service.SubmitTicketRequest{DriverID: "drv-1", VehicleID: "ghost", Destination: "Nakuru", Purpose: "x", FuelRequired: 10},
			want: service.ErrUnknownVehicle,
		},
		{
			name: "missing destination",
			req:  service.SubmitTicketRequest{DriverID: "drv-1", VehicleID: "veh-1", Purpose: "x", FuelRequired: 10},
			want: service.ErrMissingDestination,
		},
		{
			name: "missing purpose",
			req:  service.SubmitTicketRequest{DriverID: "drv-1", VehicleID: "veh-1", Destination: "Nakuru", FuelRequired: 10},
			want: service.ErrMissingPurpose,
		},
		{
			name: "zero fuel",
			req:  service.SubmitTicketRequest{DriverID: "drv-1", VehicleID: "veh-1", Destination: "Nakuru", Purpose: "x"},
			want: service.ErrInvalidFuelQuantity,
		},
		{
			name: "negative fuel",
			req:  service.SubmitTicketRequest{DriverID: "drv-1", VehicleID: "veh-1", Destination: "Nakuru", Purpose: "x", FuelRequired: -5},
			want: service.ErrInvalidFuelQuantity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTicket_ApproveFromPending(t *testing.T) {
	t.Parallel()

	ticketRepo, _, _, svc := newTicketFixture()
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-1", Status: domain.TicketStatusPending})

	ticket, err := svc.Approve(context.Background(), "wt-1", adminIdentity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ticket.Status != domain.TicketStatusApproved {
		t.Errorf("expected approved, got %s", ticket.Status)
	}
	if ticket.ApprovedBy == "" {
		t.Error("expected approver to be stamped")
	}
	if ticket.ApprovedAt.IsZero() {
		t.Error("expected approval time to be stamped")
	}
}

func TestTicket_RejectRequiresReason(t *testing.T) {
	t.Parallel()

	ticketRepo, _, _, svc := newTicketFixture()
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-1", Status: domain.TicketStatusPending})

	if _, err := svc.Reject(context.Background(), "wt-1", "", adminIdentity); !errors.Is(err, service.ErrMissingRejectReason) {
		t.Fatalf("expected ErrMissingRejectReason, got %v", err)
	}
	if _, err := svc.Reject(context.Background(), "wt-1", "   ", adminIdentity); !errors.Is(err, service.ErrMissingRejectReason) {
		t.Fatalf("expected ErrMissingRejectReason for whitespace reason, got %v", err)
	}

	// Ticket untouched after the failed attempts.
	if got := ticketRepo.GetTicket("wt-1").Status; got != domain.TicketStatusPending {
		t.Errorf("expected ticket to stay pending, got %s", got)
	}

	ticket, err := svc.Reject(context.Background(), "wt-1", "vehicle unavailable", adminIdentity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.Status != domain.TicketStatusRejected {
		t.Errorf("expected rejected, got %s", ticket.Status)
	}
	if ticket.RejectionReason != "vehicle unavailable" {
		t.Errorf("expected reason to be stored, got %q", ticket.RejectionReason)
	}
}

func TestTicket_TerminalStatesRefuseTransitions(t *testing.T) {
	t.Parallel()

	ticketRepo, _, _, svc := newTicketFixture()
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-approved", Status: domain.TicketStatusApproved, ApprovedBy: "First Officer"})
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-rejected", Status: domain.TicketStatusRejected})

	if _, err := svc.Approve(context.Background(), "wt-approved", adminIdentity); !errors.Is(err, service.ErrTicketNotPending) {
		t.Errorf("double approve: expected ErrTicketNotPending, got %v", err)
	}
	if _, err := svc.Reject(context.Background(), "wt-approved", "too late", adminIdentity); !errors.Is(err, service.ErrTicketNotPending) {
		t.Errorf("reject after approve: expected ErrTicketNotPending, got %v", err)
	}
	if _, err := svc.Approve(context.Background(), "wt-rejected", adminIdentity); !errors.Is(err, service.ErrTicketNotPending) {
		t.Errorf("approve after reject: expected ErrTicketNotPending, got %v", err)
	}

	// The original approver is untouched by the failed re-approve.
	if got := ticketRepo.GetTicket("wt-approved").ApprovedBy; got != "First Officer" {
		t.Errorf("expected original approver preserved, got %q", got)
	}
}

func TestTicket_ConcurrentApproveOneWinner(t *testing.T) {
	t.Parallel()

	ticketRepo, _, _, svc := newTicketFixture()
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-1", Status: domain.TicketStatusPending})

	const attempts = 8
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			_, err := svc.Approve(context.Background(), "wt-1", adminIdentity)
			errs <- err
		}()
	}

	var wins, losses int
	for i := 0; i < attempts; i++ {
		err := <-errs
		switch {
		case err == nil:
			wins++
		case errors.Is(err, service.ErrTicketNotPending):
			losses++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Errorf("expected exactly one winner, got %d", wins)
	}
	if losses != attempts-1 {
		t.Errorf("expected %d losers, got %d", attempts-1, losses)
	}
}

func TestTicket_ApproveUnknownTicket(t *testing.T) {
	t.Parallel()

	_, _, _, svc := newTicketFixture()

	_, err := svc.Approve(context.Background(), "ghost", adminIdentity)
	if err == nil {
		t.Fatal("expected an error for unknown ticket")
	}
}

package tests

import (
	"context"
	"testing"

	"fleetops/internal/domain"
	"fleetops/internal/service"
)

func visibilityFixture() (*MockTicketRepository, *service.TicketService) {
	ticketRepo := NewMockTicketRepository()
	svc := service.NewTicketService(ticketRepo, NewMockDriverRepository(), NewMockVehicleRepository(), testLogger())
	return ticketRepo, svc
}

func listIDs(visible []service.VisibleTicket) map[string]service.VisibleTicket {
	byID := make(map[string]service.VisibleTicket, len(visible))
	for _, v := range visible {
		byID[v.ID] = v
	}
	return byID
}

func TestVisibility_AdminSeesEverything(t *testing.T) {
	t.Parallel()

	ticketRepo, svc := visibilityFixture()
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-1", DriverID: "drv-1", Status: domain.TicketStatusPending})
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-2", DriverID: "drv-2", Status: domain.TicketStatusApproved})
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-3", Status: domain.TicketStatusRejected})

	visible, err := svc.ListFor(context.Background(), adminIdentity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(visible) != 3 {
		t.Errorf("expected 3 tickets for admin, got %d", len(visible))
	}
}

func TestVisibility_DriverMatchRules(t *testing.T) {
	t.Parallel()

	ticketRepo, svc := visibilityFixture()

	// Rule 1: driver id.
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-id", DriverID: "drv-1", DriverName: "Someone Else", Status: domain.TicketStatusPending})
	// Rule 2: exact snapshot name, no id.
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-name", DriverName: "John Smith", Status: domain.TicketStatusPending})
	// Rule 3: exact snapshot email, no id or name match.
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-email", DriverName: "J. Smith", DriverEmail: "jsmith@fleetops.local", Status: domain.TicketStatusPending})
	// Rule 4: email local-part contained in the snapshot name,
	// case-insensitive. Legacy import artifact.
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-legacy", DriverName: "Driver JSMITH (imported)", Status: domain.TicketStatusApproved})
	// No rule matches.
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-other", DriverID: "drv-2", DriverName: "Mary Atieno", DriverEmail: "matieno@fleetops.local", Status: domain.TicketStatusPending})

	viewer := domain.Identity{
		ID:       "drv-1",
		Name:     "John Smith",
		Email:    "jsmith@fleetops.local",
		Role:     domain.RoleDriver,
		DriverID: "drv-1",
	}

	visible, err := svc.ListFor(context.Background(), viewer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byID := listIDs(visible)
	if len(byID) != 4 {
		t.Fatalf("expected 4 visible tickets, got %d (%v)", len(byID), byID)
	}
	for _, id := range []string{"wt-id", "wt-name", "wt-email", "wt-legacy"} {
		if _, ok := byID[id]; !ok {
			t.Errorf("expected %s to be visible", id)
		}
	}
	if _, ok := byID["wt-other"]; ok {
		t.Error("wt-other should not be visible to drv-1")
	}

	if byID["wt-legacy"].LegacyMatch != true {
		t.Error("expected wt-legacy to be flagged as a legacy match")
	}
	for _, id := range []string{"wt-id", "wt-name", "wt-email"} {
		if byID[id].LegacyMatch {
			t.Errorf("expected %s not to be flagged as legacy", id)
		}
	}
}

func TestVisibility_FuzzyMatchAlwaysFlagged(t *testing.T) {
	t.Parallel()

	ticketRepo, svc := visibilityFixture()
	// Similar but not identical name: only the email-prefix rule can
	// pull this in, and then it must carry the legacy flag.
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-1", DriverName: "John Smithers", Status: domain.TicketStatusPending})

	viewer := domain.Identity{
		ID:       "drv-1",
		Name:     "John Smith",
		Email:    "john@fleetops.local",
		Role:     domain.RoleDriver,
		DriverID: "drv-1",
	}

	visible, err := svc.ListFor(context.Background(), viewer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byID := listIDs(visible)
	v, ok := byID["wt-1"]
	if !ok {
		t.Fatal("expected the email-prefix rule to match")
	}
	if !v.LegacyMatch {
		t.Error("fuzzy match must carry the legacy flag")
	}
}

func TestVisibility_DriverWithoutEmailUsesOnlyExactRules(t *testing.T) {
	t.Parallel()

	ticketRepo, svc := visibilityFixture()
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-1", DriverName: "James Mwangi", Status: domain.TicketStatusPending})
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-2", DriverName: "Joseph Mwangi", Status: domain.TicketStatusPending})

	viewer := domain.Identity{
		ID:       "drv-3",
		Name:     "James Mwangi",
		Role:     domain.RoleDriver,
		DriverID: "drv-3",
	}

	visible, err := svc.ListFor(context.Background(), viewer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byID := listIDs(visible)
	if _, ok := byID["wt-1"]; !ok {
		t.Error("expected exact name match to be visible")
	}
	if _, ok := byID["wt-2"]; ok {
		t.Error("a different driver's ticket must not be visible")
	}
}

package sample

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"fleetops/internal/domain"
)

func TestData_CrossReferencesResolve(t *testing.T) {
	t.Parallel()

	data := Data()

	vehicles := make(map[string]bool)
	for _, v := range data.Vehicles {
		vehicles[v.ID] = true
	}
	drivers := make(map[string]bool)
	for _, d := range data.Drivers {
		drivers[d.ID] = true
	}
	accounts := make(map[string]bool)
	for _, a := range data.Accounts {
		accounts[a.ID] = true
	}

	for _, ticket := range data.Tickets {
		if !vehicles[ticket.VehicleID] {
			t.Errorf("ticket %s references unknown vehicle %q", ticket.ID, ticket.VehicleID)
		}
		// Legacy tickets may carry an empty driver id, but a populated
		// one must resolve.
		if ticket.DriverID != "" && !drivers[ticket.DriverID] {
			t.Errorf("ticket %s references unknown driver %q", ticket.ID, ticket.DriverID)
		}
	}

	for _, record := range data.FuelRecords {
		if !vehicles[record.VehicleID] {
			t.Errorf("fuel record %s references unknown vehicle %q", record.ID, record.VehicleID)
		}
		if record.PaymentMethod == domain.PaymentMethodBulkAccount && !accounts[record.AccountID] {
			t.Errorf("fuel record %s references unknown account %q", record.ID, record.AccountID)
		}
	}

	for _, record := range data.Maintenance {
		if !vehicles[record.VehicleID] {
			t.Errorf("maintenance record %s references unknown vehicle %q", record.ID, record.VehicleID)
		}
	}
}

func TestData_ComputedFieldsConsistent(t *testing.T) {
	t.Parallel()

	data := Data()

	for _, record := range data.FuelRecords {
		if record.TotalCost != record.Quantity*record.UnitCost {
			t.Errorf("fuel record %s: total %.2f != quantity %.2f * unit cost %.2f",
				record.ID, record.TotalCost, record.Quantity, record.UnitCost)
		}
	}

	for _, record := range data.Maintenance {
		if record.TotalCost != record.LaborCost+record.PartsCost {
			t.Errorf("maintenance record %s: total %.2f != labor %.2f + parts %.2f",
				record.ID, record.TotalCost, record.LaborCost, record.PartsCost)
		}
	}
}

func TestData_DriverCredentialsVerify(t *testing.T) {
	t.Parallel()

	for _, driver := range Data().Drivers {
		if driver.Username == "" {
			t.Errorf("driver %s has no username", driver.ID)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(driver.PasswordHash), []byte(DemoPassword)); err != nil {
			t.Errorf("driver %s: demo password does not verify: %v", driver.ID, err)
		}
	}
}

func TestData_IsStableAcrossCalls(t *testing.T) {
	t.Parallel()

	a, b := Data(), Data()
	if len(a.Tickets) != len(b.Tickets) {
		t.Fatal("seed dataset must be deterministic")
	}
	for i := range a.Tickets {
		if a.Tickets[i].ID != b.Tickets[i].ID ||
			a.Tickets[i].Status != b.Tickets[i].Status ||
			!a.Tickets[i].CreatedAt.Equal(b.Tickets[i].CreatedAt) {
			t.Errorf("ticket %d differs between calls", i)
		}
	}
}

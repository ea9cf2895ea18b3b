package sample

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"fleetops/internal/domain"
)

// DemoPassword is the login password for every seeded driver.
const DemoPassword = "driver123"

// Dataset is the seed served when no backend connection is available.
// Every cross-reference resolves: each seeded ticket's driver and
// vehicle ids point at seeded records.
type Dataset struct {
	Vehicles    []*domain.Vehicle
	Drivers     []*domain.Driver
	Tickets     []*domain.WorkTicket
	FuelRecords []*domain.FuelRecord
	Maintenance []*domain.MaintenanceRecord
	Accounts    []*domain.BulkFuelAccount
}

// seedTime anchors all seed timestamps so the dataset is stable across
// restarts.
var seedTime = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

// Data builds the seed dataset. Driver password hashes are computed
// here rather than embedded, so the demo credential stays verifiable
// regardless of bcrypt cost defaults.
func Data() *Dataset {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		// bcrypt only fails on absurd cost values; keep the seed usable.
		hash = nil
	}

	vehicles := []*domain.Vehicle{
		{
			ID:              "veh-1",
			Registration:    "KDA 381X",
			Make:            "Toyota",
			Model:           "Land Cruiser 79",
			Year:            2021,
			EngineNumber:    "1GD-8837221",
			ChassisNumber:   "JTELB71J507112233",
			Status:          domain.VehicleStatusActive,
			Department:      "Field Operations",
			Location:        "Nairobi Depot",
			FuelType:        "diesel",
			SeatingCapacity: 6,
			Equipment:       []string{"first aid kit", "tow rope", "spare wheel"},
			CreatedAt:       seedTime.AddDate(0, -8, 0),
			UpdatedAt:       seedTime.AddDate(0, -8, 0),
		},
		{
			ID:              "veh-2",
			Registration:    "KDC 904T",
			Make:            "Isuzu",
			Model:           "NQR 500",
			Year:            2019,
			EngineNumber:    "4HK1-552811",
			ChassisNumber:   "JAANQR75H00334455",
			Status:          domain.VehicleStatusActive,
			Department:      "Logistics",
			Location:        "Mombasa Depot",
			FuelType:        "diesel",
			SeatingCapacity: 3,
			Equipment:       []string{"fire extinguisher"},
			CreatedAt:       seedTime.AddDate(0, -6, 0),
			UpdatedAt:       seedTime.AddDate(0, -6, 0),
		},
		{
			ID:              "veh-3",
			Registration:    "KDE 112Q",
			Make:            "Nissan",
			Model:           "X-Trail",
			Year:            2022,
			EngineNumber:    "MR20-779001",
			ChassisNumber:   "JN1TBNT32A0667788",
			Status:          domain.VehicleStatusMaintenance,
			Department:      "Administration",
			Location:        "Nairobi Depot",
			FuelType:        "petrol",
			SeatingCapacity: 5,
			CreatedAt:       seedTime.AddDate(0, -3, 0),
			UpdatedAt:       seedTime.AddDate(0, -1, 0),
		},
	}

	drivers := []*domain.Driver{
		{
			ID:            "drv-1",
			Name:          "John Smith",
			EmployeeID:    "EMP-0041",
			LicenseNumber: "DL-772610",
			LicenseClass:  "BCE",
			LicenseExpiry: seedTime.AddDate(2, 0, 0),
			Email:         "jsmith@fleetops.example",
			Phone:         "+254700111222",
			Department:    "Field Operations",
			Status:        domain.DriverStatusActive,
			Username:      "jsmith",
			PasswordHash:  string(hash),
			JoinDate:      seedTime.AddDate(-3, 0, 0),
			CreatedAt:     seedTime.AddDate(0, -8, 0),
			UpdatedAt:     seedTime.AddDate(0, -8, 0),
		},
		{
			ID:            "drv-2",
			Name:          "Mary Atieno",
			EmployeeID:    "EMP-0078",
			LicenseNumber: "DL-481553",
			LicenseClass:  "BCE",
			LicenseExpiry: seedTime.AddDate(1, 6, 0),
			Email:         "matieno@fleetops.example",
			Phone:         "+254700333444",
			Department:    "Logistics",
			Status:        domain.DriverStatusActive,
			Username:      "matieno",
			PasswordHash:  string(hash),
			JoinDate:      seedTime.AddDate(-2, 0, 0),
			CreatedAt:     seedTime.AddDate(0, -6, 0),
			UpdatedAt:     seedTime.AddDate(0, -6, 0),
		},
		{
			ID:            "drv-3",
			Name:          "James Mwangi",
			EmployeeID:    "EMP-0102",
			LicenseNumber: "DL-906114",
			LicenseClass:  "B",
			LicenseExpiry: seedTime.AddDate(0, 10, 0),
			Email:         "jmwangi@fleetops.example",
			Phone:         "+254700555666",
			Department:    "Administration",
			Status:        domain.DriverStatusInactive,
			Username:      "jmwangi",
			PasswordHash:  string(hash),
			JoinDate:      seedTime.AddDate(-1, 0, 0),
			CreatedAt:     seedTime.AddDate(0, -3, 0),
			UpdatedAt:     seedTime.AddDate(0, -2, 0),
		},
	}

	tickets := []*domain.WorkTicket{
		{
			ID:                  "wt-1",
			DriverID:            "drv-1",
			DriverName:          "John Smith",
			DriverLicense:       "DL-772610",
			DriverEmail:         "jsmith@fleetops.example",
			VehicleID:           "veh-1",
			VehicleRegistration: "KDA 381X",
			Destination:         "Nakuru",
			Purpose:             "Quarterly site inspection",
			FuelRequired:        80,
			EstimatedDistance:   320,
			DepartureDate:       seedTime.AddDate(0, 0, -14),
			ReturnDate:          seedTime.AddDate(0, 0, -12),
			Status:              domain.TicketStatusApproved,
			ApprovedBy:          "Fleet Admin",
			ApprovedAt:          seedTime.AddDate(0, 0, -15),
			CreatedAt:           seedTime.AddDate(0, 0, -16),
		},
		{
			ID:                  "wt-2",
			DriverID:            "drv-2",
			DriverName:          "Mary Atieno",
			DriverLicense:       "DL-481553",
			DriverEmail:         "matieno@fleetops.example",
			VehicleID:           "veh-2",
			VehicleRegistration: "KDC 904T",
			Destination:         "Kisumu",
			Purpose:             "Warehouse stock transfer",
			FuelRequired:        120,
			EstimatedDistance:   560,
			DepartureDate:       seedTime.AddDate(0, 0, 3),
			ReturnDate:          seedTime.AddDate(0, 0, 5),
			Status:              domain.TicketStatusPending,
			CreatedAt:           seedTime.AddDate(0, 0, -1),
		},
		{
			// Legacy record created before driver-id linkage was
			// enforced: only the snapshot identifies the driver.
			ID:                  "wt-3",
			DriverID:            "",
			DriverName:          "James Mwangi",
			DriverLicense:       "DL-906114",
			DriverEmail:         "jmwangi@fleetops.example",
			VehicleID:           "veh-3",
			VehicleRegistration: "KDE 112Q",
			Destination:         "Thika",
			Purpose:             "Document delivery",
			FuelRequired:        25,
			EstimatedDistance:   90,
			DepartureDate:       seedTime.AddDate(0, -1, 0),
			ReturnDate:          seedTime.AddDate(0, -1, 0),
			Status:              domain.TicketStatusRejected,
			RejectedBy:          "Fleet Admin",
			RejectedAt:          seedTime.AddDate(0, -1, -1),
			RejectionReason:     "Vehicle scheduled for maintenance",
			CreatedAt:           seedTime.AddDate(0, -1, -2),
		},
	}

	accounts := []*domain.BulkFuelAccount{
		{
			ID:             "acct-1",
			Supplier:       "Vivo Energy",
			AccountNumber:  "VE-20441",
			CurrentBalance: 182_500,
			InitialBalance: 250_000,
			CreditLimit:    50_000,
			Status:         domain.AccountStatusActive,
			ContactName:    "Peter Kamau",
			ContactPhone:   "+254711000111",
			ContactEmail:   "accounts@vivo.example",
			CreatedAt:      seedTime.AddDate(0, -8, 0),
			UpdatedAt:      seedTime.AddDate(0, 0, -7),
		},
	}

	fuel := []*domain.FuelRecord{
		{
			ID:            "fuel-1",
			VehicleID:     "veh-1",
			FuelType:      "diesel",
			Quantity:      75,
			UnitCost:      182.50,
			TotalCost:     13_687.50,
			Odometer:      48_220,
			Date:          seedTime.AddDate(0, 0, -13),
			Station:       "Vivo Nakuru",
			ReceiptNumber: "RCP-88211",
			PaymentMethod: domain.PaymentMethodBulkAccount,
			AccountID:     "acct-1",
			CreatedAt:     seedTime.AddDate(0, 0, -13),
		},
		{
			ID:            "fuel-2",
			VehicleID:     "veh-2",
			FuelType:      "diesel",
			Quantity:      110,
			UnitCost:      181.00,
			TotalCost:     19_910,
			Odometer:      103_540,
			Date:          seedTime.AddDate(0, 0, -7),
			Station:       "Shell Changamwe",
			ReceiptNumber: "RCP-88302",
			PaymentMethod: domain.PaymentMethodCash,
			CreatedAt:     seedTime.AddDate(0, 0, -7),
		},
	}

	maintenance := []*domain.MaintenanceRecord{
		{
			ID:            "mnt-1",
			VehicleID:     "veh-3",
			Type:          domain.MaintenanceTypeRepair,
			Provider:      "DT Dobie",
			Description:   "Front suspension bushing replacement",
			PartsReplaced: []string{"control arm bushings", "stabilizer links"},
			LaborCost:     14_000,
			PartsCost:     22_400,
			TotalCost:     36_400,
			Odometer:      31_080,
			ServiceDate:   seedTime.AddDate(0, 0, -4),
			Status:        domain.MaintenanceStatusInProgress,
			Priority:      domain.MaintenancePriorityHigh,
			CreatedAt:     seedTime.AddDate(0, 0, -5),
			UpdatedAt:     seedTime.AddDate(0, 0, -4),
		},
		{
			ID:          "mnt-2",
			VehicleID:   "veh-1",
			Type:        domain.MaintenanceTypeRoutine,
			Provider:    "Toyota Kenya",
			Description: "10,000 km service",
			LaborCost:   8_500,
			PartsCost:   12_300,
			TotalCost:   20_800,
			Odometer:    40_120,
			ServiceDate: seedTime.AddDate(0, -2, 0),
			NextService: seedTime.AddDate(0, 4, 0),
			NextMileage: 50_000,
			Status:      domain.MaintenanceStatusCompleted,
			Priority:    domain.MaintenancePriorityLow,
			CreatedAt:   seedTime.AddDate(0, -2, 0),
			UpdatedAt:   seedTime.AddDate(0, -2, 0),
		},
	}

	return &Dataset{
		Vehicles:    vehicles,
		Drivers:     drivers,
		Tickets:     tickets,
		FuelRecords: fuel,
		Maintenance: maintenance,
		Accounts:    accounts,
	}
}

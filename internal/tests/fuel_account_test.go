package tests

import (
	"context"
	"errors"
	"sync"
	"testing"

	"fleetops/internal/domain"
	"fleetops/internal/service"
)

func newFuelFixture() (*MockFuelRepository, *MockVehicleRepository, *MockAccountRepository, *service.FuelService) {
	fuelRepo := NewMockFuelRepository()
	vehicleRepo := NewMockVehicleRepository()
	accountRepo := NewMockAccountRepository()

	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:           "veh-1",
		Registration: "KDA 123A",
		Status:       domain.VehicleStatusActive,
	})
	accountRepo.AddAccount(&domain.BulkFuelAccount{
		ID:             "acct-1",
		Supplier:       "Naivasha Energy",
		CurrentBalance: 10_000,
		InitialBalance: 10_000,
		Status:         domain.AccountStatusActive,
	})

	svc := service.NewFuelService(fuelRepo, vehicleRepo, accountRepo, nil, testLogger())
	return fuelRepo, vehicleRepo, accountRepo, svc
}

func TestFuel_TotalCostIsDerived(t *testing.T) {
	t.Parallel()

	_, _, _, svc := newFuelFixture()

	record, err := svc.Create(context.Background(), service.CreateFuelRecordRequest{
		VehicleID:     "veh-1",
		Quantity:      80,
		UnitCost:      182.5,
		PaymentMethod: domain.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.TotalCost != 80*182.5 {
		t.Errorf("expected total %.2f, got %.2f", 80*182.5, record.TotalCost)
	}
}

func TestFuel_Validation(t *testing.T) {
	t.Parallel()

	_, _, _, svc := newFuelFixture()

	cases := []struct {
		name string
		req  service.CreateFuelRecordRequest
		want error
	}{
		{
			name: "missing vehicle",
			req:  service.CreateFuelRecordRequest{Quantity: 10, UnitCost: 100},
			want: service.ErrInvalidVehicleID,
		},
		{
			name: "unknown vehicle",
			req:  service.CreateFuelRecordRequest{VehicleID: "ghost", Quantity: 10, UnitCost: 100},
			want: service.ErrUnknownVehicle,
		},
		{
			name: "zero quantity",
			req:  service.CreateFuelRecordRequest{VehicleID: "veh-1", UnitCost: 100},
			want: service.ErrInvalidFuelQuantity,
		},
		{
			name: "negative unit cost",
			req:  service.CreateFuelRecordRequest{VehicleID: "veh-1", Quantity: 10, UnitCost: -1},
			want: service.ErrInvalidUnitCost,
		},
		{
			name: "bulk payment without account",
			req:  service.CreateFuelRecordRequest{VehicleID: "veh-1", Quantity: 10, UnitCost: 100, PaymentMethod: domain.PaymentMethodBulkAccount},
			want: service.ErrInvalidAccountID,
		},
		{
			name: "bulk payment unknown account",
			req:  service.CreateFuelRecordRequest{VehicleID: "veh-1", Quantity: 10, UnitCost: 100, PaymentMethod: domain.PaymentMethodBulkAccount, AccountID: "ghost"},
			want: service.ErrUnknownAccount,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestFuel_BulkAccountDebit(t *testing.T) {
	t.Parallel()

	fuelRepo, _, accountRepo, svc := newFuelFixture()

	record, err := svc.Create(context.Background(), service.CreateFuelRecordRequest{
		VehicleID:     "veh-1",
		Quantity:      40,
		UnitCost:      100,
		PaymentMethod: domain.PaymentMethodBulkAccount,
		AccountID:     "acct-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.AccountID != "acct-1" {
		t.Errorf("expected account id on the record, got %q", record.AccountID)
	}
	if got := accountRepo.GetAccount("acct-1").CurrentBalance; got != 6_000 {
		t.Errorf("expected balance 6000 after debit, got %.2f", got)
	}
	if fuelRepo.CountRecords() != 1 {
		t.Errorf("expected one fuel record, got %d", fuelRepo.CountRecords())
	}
}

func TestFuel_InsufficientBalanceRejectedBeforeAnyWrite(t *testing.T) {
	t.Parallel()

	fuelRepo, _, accountRepo, svc := newFuelFixture()

	_, err := svc.Create(context.Background(), service.CreateFuelRecordRequest{
		VehicleID:     "veh-1",
		Quantity:      200,
		UnitCost:      100, // 20_000 > 10_000 balance
		PaymentMethod: domain.PaymentMethodBulkAccount,
		AccountID:     "acct-1",
	})
	if !errors.Is(err, service.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if got := accountRepo.GetAccount("acct-1").CurrentBalance; got != 10_000 {
		t.Errorf("balance must be untouched, got %.2f", got)
	}
	if fuelRepo.CountRecords() != 0 {
		t.Errorf("no fuel record must be written, got %d", fuelRepo.CountRecords())
	}
}

func TestFuel_SuspendedAccountRejected(t *testing.T) {
	t.Parallel()

	_, _, accountRepo, svc := newFuelFixture()
	accountRepo.AddAccount(&domain.BulkFuelAccount{
		ID:             "acct-2",
		Supplier:       "Closed Depot",
		CurrentBalance: 50_000,
		Status:         domain.AccountStatusSuspended,
	})

	_, err := svc.Create(context.Background(), service.CreateFuelRecordRequest{
		VehicleID:     "veh-1",
		Quantity:      10,
		UnitCost:      100,
		PaymentMethod: domain.PaymentMethodBulkAccount,
		AccountID:     "acct-2",
	})
	if !errors.Is(err, service.ErrAccountNotActive) {
		t.Fatalf("expected ErrAccountNotActive, got %v", err)
	}
}

func TestFuel_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	t.Parallel()

	fuelRepo, vehicleRepo, accountRepo, _ := newFuelFixture()
	// Fresh account that can fund exactly one of the two purchases.
	accountRepo.AddAccount(&domain.BulkFuelAccount{
		ID:             "acct-tight",
		Supplier:       "Naivasha Energy",
		CurrentBalance: 5_000,
		Status:         domain.AccountStatusActive,
	})
	svc := service.NewFuelService(fuelRepo, vehicleRepo, accountRepo, nil, testLogger())

	const attempts = 2
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), service.CreateFuelRecordRequest{
				VehicleID:     "veh-1",
				Quantity:      40,
				UnitCost:      100, // 4_000 each; only one fits in 5_000
				PaymentMethod: domain.PaymentMethodBulkAccount,
				AccountID:     "acct-tight",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, service.ErrInsufficientBalance), errors.Is(err, service.ErrBalanceChanged):
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if succeeded != 1 {
		t.Errorf("expected exactly one successful charge, got %d", succeeded)
	}
	if rejected != attempts-1 {
		t.Errorf("expected %d rejected charges, got %d", attempts-1, rejected)
	}

	balance := accountRepo.GetAccount("acct-tight").CurrentBalance
	if balance != 1_000 {
		t.Errorf("expected balance 1000 after a single debit, got %.2f", balance)
	}
	if balance < 0 {
		t.Error("balance must never go negative")
	}
}

func TestFuel_DebitRefundedWhenRecordWriteFails(t *testing.T) {
	t.Parallel()

	fuelRepo, _, accountRepo, svc := newFuelFixture()
	fuelRepo.CreateError = errors.New("disk full")

	_, err := svc.Create(context.Background(), service.CreateFuelRecordRequest{
		VehicleID:     "veh-1",
		Quantity:      40,
		UnitCost:      100,
		PaymentMethod: domain.PaymentMethodBulkAccount,
		AccountID:     "acct-1",
	})
	if err == nil {
		t.Fatal("expected the create to fail")
	}

	if got := accountRepo.GetAccount("acct-1").CurrentBalance; got != 10_000 {
		t.Errorf("expected debit to be refunded, balance %.2f", got)
	}
}

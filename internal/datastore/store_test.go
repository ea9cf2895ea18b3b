package datastore

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"fleetops/internal/domain"
	"fleetops/internal/repository"
	"fleetops/internal/repository/memory"
	"fleetops/internal/sample"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// flakyVehicleRepo stands in for the remote gateway with injectable
// per-method errors.
type flakyVehicleRepo struct {
	getAllErr  error
	getByIDErr error
	createErr  error
	vehicles   []*domain.Vehicle
}

func (f *flakyVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error { return f.createErr }

func (f *flakyVehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	for _, v := range f.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *flakyVehicleRepo) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	if f.getAllErr != nil {
		return nil, f.getAllErr
	}
	return f.vehicles, nil
}

func (f *flakyVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error { return f.createErr }

// remoteModeStore builds a facade latched into remote mode with the
// given vehicle gateway, bypassing the probe.
func remoteModeStore(remote repository.VehicleRepository, opts Options) *Store {
	s := &Store{
		fallback:       memory.NewBackend(nil, sample.Data()),
		opts:           opts,
		log:            testLogger().WithField("component", "datastore"),
		ready:          make(chan struct{}),
		remoteVehicles: remote,
	}
	close(s.ready)
	return s
}

func TestInitializeLatchesSampleModeWithoutDatabase(t *testing.T) {
	t.Parallel()

	s := New(nil, memory.NewBackend(nil, sample.Data()), Options{}, testLogger())

	if s.UsingSampleData() {
		t.Error("mode must be undecided before Initialize")
	}

	s.Initialize(context.Background())

	if !s.WaitForInitialization(context.Background()) {
		t.Fatal("expected initialization to complete")
	}
	if !s.UsingSampleData() {
		t.Error("expected sample-data mode with no database")
	}

	// Latched: a second Initialize is a no-op.
	s.Initialize(context.Background())
	if !s.UsingSampleData() {
		t.Error("latch must not be re-evaluated")
	}
}

func TestInitializeHonorsForceFlag(t *testing.T) {
	t.Parallel()

	s := New(nil, memory.NewBackend(nil, sample.Data()), Options{ForceSampleData: true}, testLogger())
	s.Initialize(context.Background())

	if !s.UsingSampleData() {
		t.Error("expected forced sample-data mode")
	}
}

func TestWaitForInitializationRespectsContext(t *testing.T) {
	t.Parallel()

	s := New(nil, memory.NewBackend(nil, sample.Data()), Options{}, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Initialize never called: the wait must give up via the context.
	if s.WaitForInitialization(ctx) {
		t.Error("expected wait to report not-initialized")
	}
}

func TestSampleModeServesSeedData(t *testing.T) {
	t.Parallel()

	s := New(nil, memory.NewBackend(nil, sample.Data()), Options{}, testLogger())
	s.Initialize(context.Background())

	vehicles, err := s.Vehicles().GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vehicles) == 0 {
		t.Error("expected seeded vehicles in sample mode")
	}
}

func TestRemoteReadFailureFallsBackPerCall(t *testing.T) {
	t.Parallel()

	remote := &flakyVehicleRepo{getAllErr: errors.New("connection refused")}
	s := remoteModeStore(remote, Options{})

	vehicles, err := s.Vehicles().GetAll(context.Background())
	if err != nil {
		t.Fatalf("expected fallback data, got error: %v", err)
	}
	if len(vehicles) == 0 {
		t.Error("expected sample vehicles from the fallback")
	}

	// The per-call fallback must not flip the session latch.
	if s.UsingSampleData() {
		t.Error("session must stay in remote mode after a per-call fallback")
	}

	// Once the remote recovers, reads come from it again.
	remote.getAllErr = nil
	remote.vehicles = []*domain.Vehicle{{ID: "remote-1"}}
	vehicles, err = s.Vehicles().GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vehicles) != 1 || vehicles[0].ID != "remote-1" {
		t.Errorf("expected remote data after recovery, got %v", vehicles)
	}
}

func TestRemoteNotFoundSurfacesWithoutFallback(t *testing.T) {
	t.Parallel()

	// Remote is healthy and answers "no such record"; the fallback,
	// which seeds veh-1, must not be consulted.
	remote := &flakyVehicleRepo{}
	s := remoteModeStore(remote, Options{})

	_, err := s.Vehicles().GetByID(context.Background(), "veh-1")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound from the remote, got %v", err)
	}
}

func TestRemoteWriteFailureSurfacesBackendUnavailable(t *testing.T) {
	t.Parallel()

	writeErr := errors.New("connection refused")
	remote := &flakyVehicleRepo{createErr: writeErr}
	s := remoteModeStore(remote, Options{})

	err := s.Vehicles().Create(context.Background(), &domain.Vehicle{ID: "v-new"})
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}
	if !errors.Is(err, writeErr) {
		t.Error("expected the underlying cause to be preserved")
	}
}

func TestResilientWritesSwallowInfrastructureFailures(t *testing.T) {
	t.Parallel()

	remote := &flakyVehicleRepo{createErr: errors.New("connection refused")}
	s := remoteModeStore(remote, Options{ResilientWrites: true})

	if err := s.Vehicles().Create(context.Background(), &domain.Vehicle{ID: "v-new"}); err != nil {
		t.Errorf("resilient writes must report success, got %v", err)
	}
}

func TestResilientWritesNeverMaskStateErrors(t *testing.T) {
	t.Parallel()

	remote := &flakyVehicleRepo{createErr: repository.ErrConflict}
	s := remoteModeStore(remote, Options{ResilientWrites: true})

	// A conflict is an answer about state, not an outage; swallowing it
	// would invent a phantom success for a write that was refused.
	if err := s.Vehicles().Create(context.Background(), &domain.Vehicle{ID: "v-new"}); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("expected ErrConflict to surface, got %v", err)
	}
}

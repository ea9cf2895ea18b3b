// Package datastore is the single point of truth for where data lives
// right now. Callers go through it for every collection; it decides per
// call whether the remote PostgreSQL gateway or the in-memory sample
// backend serves the request, and exposes the same repository
// interfaces either way.
package datastore

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"fleetops/internal/repository"
	"fleetops/internal/repository/memory"
	"fleetops/internal/repository/postgres"
)

// ErrBackendUnavailable is returned on writes when the remote backend
// cannot be reached and resilient writes are disabled. It is a distinct
// failure class from validation errors and invalid state transitions;
// handlers map it separately.
var ErrBackendUnavailable = errors.New("backend unavailable")

// DefaultInitTimeout bounds WaitForInitialization. Callers that hit the
// bound treat the session as not yet connected; they never get an error.
const DefaultInitTimeout = 10 * time.Second

// Options configures the facade.
type Options struct {
	// ForceSampleData skips the startup probe and commits to
	// sample-data mode immediately.
	ForceSampleData bool

	// ResilientWrites makes remote write failures report success
	// without durability. Demo-mode tolerance only: off by default, and
	// every swallowed failure is logged at error level because the
	// caller is being told a lie about persistence.
	ResilientWrites bool

	ProbeTimeout time.Duration
}

// Store routes every data operation to the remote gateway or the
// sample backend. The remote-vs-sample decision is made once, at
// Initialize, and latched for the lifetime of the session; individual
// read failures fall back per call without flipping the latch.
type Store struct {
	db       *sql.DB
	fallback *memory.Backend
	opts     Options
	log      *logrus.Entry

	remoteVehicles    repository.VehicleRepository
	remoteDrivers     repository.DriverRepository
	remoteTickets     repository.TicketRepository
	remoteFuel        repository.FuelRepository
	remoteAccounts    repository.AccountRepository
	remoteMaintenance repository.MaintenanceRepository

	initOnce    sync.Once
	ready       chan struct{}
	usingSample bool
}

// New creates the facade. db may be nil when no database is configured;
// Initialize then latches sample-data mode without probing.
func New(db *sql.DB, fallback *memory.Backend, opts Options, log *logrus.Logger) *Store {
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 5 * time.Second
	}

	s := &Store{
		db:       db,
		fallback: fallback,
		opts:     opts,
		log:      log.WithField("component", "datastore"),
		ready:    make(chan struct{}),
	}

	if db != nil {
		s.remoteVehicles = postgres.NewVehicleRepository(db)
		s.remoteDrivers = postgres.NewDriverRepository(db)
		s.remoteTickets = postgres.NewTicketRepository(db)
		s.remoteFuel = postgres.NewFuelRepository(db)
		s.remoteAccounts = postgres.NewAccountRepository(db)
		s.remoteMaintenance = postgres.NewMaintenanceRepository(db)
	}

	return s
}

// Initialize runs once at process start: honor the force flag, else
// probe the remote backend with one cheap read, then latch the result.
// The latch is never re-evaluated, even if connectivity later changes.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		defer close(s.ready)

		switch {
		case s.opts.ForceSampleData:
			s.usingSample = true
			s.log.Info("sample-data mode forced by configuration")
		case s.db == nil:
			s.usingSample = true
			s.log.Info("no database configured; using sample data")
		default:
			probeCtx, cancel := context.WithTimeout(ctx, s.opts.ProbeTimeout)
			defer cancel()
			if err := postgres.Probe(probeCtx, s.db); err != nil {
				s.usingSample = true
				s.log.WithError(err).Warn("connectivity probe failed; using sample data")
			} else {
				s.log.Info("connectivity probe succeeded; using remote backend")
			}
		}
	})
}

// WaitForInitialization blocks until Initialize has latched a mode, the
// context is cancelled, or the default bound elapses. Returns true only
// when initialization actually completed; callers treat false as
// "assume not yet connected" rather than an error.
func (s *Store) WaitForInitialization(ctx context.Context) bool {
	timer := time.NewTimer(DefaultInitTimeout)
	defer timer.Stop()

	select {
	case <-s.ready:
		return true
	case <-ctx.Done():
		return false
	case <-timer.C:
		return false
	}
}

// UsingSampleData reports the latched decision. It exists for UI
// indication (the "Demo Mode" banner); callers must not branch business
// logic on it.
func (s *Store) UsingSampleData() bool {
	select {
	case <-s.ready:
		return s.usingSample
	default:
		// Not yet initialized: nothing has been served from anywhere.
		return false
	}
}

func (s *Store) remoteMode() bool {
	select {
	case <-s.ready:
		return !s.usingSample
	default:
		return false
	}
}

// readErrorFallsBack decides whether a remote read error routes the
// call to the sample backend. ErrNotFound is a real answer, not an
// outage, and must surface.
func readErrorFallsBack(err error) bool {
	return err != nil && !errors.Is(err, repository.ErrNotFound)
}

// isConditionalError reports whether err is a state answer from the
// backend rather than an outage.
func isConditionalError(err error) bool {
	return errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrConflict)
}

// writeError applies the write-failure policy: conditional failures
// (ErrNotFound, ErrConflict) always surface because they are state
// errors, not outages. Infrastructure errors either surface as
// ErrBackendUnavailable or, under resilient writes, are swallowed.
func (s *Store) writeError(op string, err error) error {
	if err == nil || isConditionalError(err) {
		return err
	}

	if s.opts.ResilientWrites {
		// The caller will be told this write succeeded. It did not.
		s.log.WithError(err).WithField("op", op).Error("remote write failed; reporting success without durability (resilient writes enabled)")
		return nil
	}

	s.log.WithError(err).WithField("op", op).Warn("remote write failed")
	return errors.Join(ErrBackendUnavailable, err)
}

// Vehicles returns the routed vehicle repository.
func (s *Store) Vehicles() repository.VehicleRepository { return &vehicleStore{s} }

// Drivers returns the routed driver repository.
func (s *Store) Drivers() repository.DriverRepository { return &driverStore{s} }

// Tickets returns the routed work-ticket repository.
func (s *Store) Tickets() repository.TicketRepository { return &ticketStore{s} }

// Fuel returns the routed fuel repository.
func (s *Store) Fuel() repository.FuelRepository { return &fuelStore{s} }

// Accounts returns the routed bulk-account repository.
func (s *Store) Accounts() repository.AccountRepository { return &accountStore{s} }

// Maintenance returns the routed maintenance repository.
func (s *Store) Maintenance() repository.MaintenanceRepository { return &maintenanceStore{s} }

package localstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"fleetops/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	log := logrus.New()
	log.SetOutput(os.Stderr)
	return Open(t.TempDir(), log)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	log := logrus.New()

	records := []*domain.Vehicle{
		{
			ID:           "veh-1",
			Registration: "KDA 123X",
			Make:         "Toyota",
			Model:        "Land Cruiser",
			Year:         2021,
			Status:       domain.VehicleStatusActive,
			Equipment:    []string{"first aid kit", "spare wheel"},
			CreatedAt:    time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			ID:           "veh-2",
			Registration: "KDB 456Y",
			Status:       domain.VehicleStatusMaintenance,
		},
	}

	store := Open(dir, log)
	store.Save("vehicles", records)

	// Reopen as a fresh process would.
	reopened := Open(dir, log)

	var loaded []*domain.Vehicle
	if !reopened.Load("vehicles", &loaded) {
		t.Fatal("expected stored collection to load")
	}

	if len(loaded) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(loaded))
	}
	for i := range records {
		if loaded[i].ID != records[i].ID ||
			loaded[i].Registration != records[i].Registration ||
			loaded[i].Make != records[i].Make ||
			loaded[i].Model != records[i].Model ||
			loaded[i].Year != records[i].Year ||
			loaded[i].Status != records[i].Status ||
			!loaded[i].CreatedAt.Equal(records[i].CreatedAt) {
			t.Errorf("record %d does not round-trip: got %+v want %+v", i, loaded[i], records[i])
		}
	}
	if len(loaded[0].Equipment) != 2 || loaded[0].Equipment[0] != "first aid kit" {
		t.Errorf("equipment list does not round-trip: %v", loaded[0].Equipment)
	}
}

func TestLoad_MissingCollectionReturnsFalse(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	fallback := []*domain.Driver{{ID: "drv-1", Name: "Jane"}}
	loaded := fallback
	if store.Load("drivers", &loaded) {
		t.Fatal("expected Load to report missing collection")
	}
	if len(loaded) != 1 || loaded[0].ID != "drv-1" {
		t.Error("fallback value must be left untouched on a missing collection")
	}
}

func TestLoad_UnparseableCollectionReturnsFalse(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := Open(dir, logrus.New())

	if err := os.WriteFile(filepath.Join(dir, "tickets.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	var tickets []*domain.WorkTicket
	if store.Load("tickets", &tickets) {
		t.Fatal("expected unparseable collection to be rejected")
	}
}

func TestOpen_SchemaVersionMismatchPurgesAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	log := logrus.New()

	store := Open(dir, log)
	store.Save("vehicles", []*domain.Vehicle{{ID: "veh-1"}})
	store.Save("drivers", []*domain.Driver{{ID: "drv-1"}})

	// Simulate data written by an older build.
	if err := os.WriteFile(filepath.Join(dir, "schema_version"), []byte("1"), 0o644); err != nil {
		t.Fatal(err)
	}

	reopened := Open(dir, log)

	var vehicles []*domain.Vehicle
	if reopened.Load("vehicles", &vehicles) {
		t.Error("expected vehicles to be discarded on version mismatch")
	}
	var drivers []*domain.Driver
	if reopened.Load("drivers", &drivers) {
		t.Error("expected drivers to be discarded on version mismatch")
	}

	marker, err := os.ReadFile(filepath.Join(dir, "schema_version"))
	if err != nil || string(marker) != SchemaVersion {
		t.Errorf("expected marker rewritten to %q, got %q (err %v)", SchemaVersion, marker, err)
	}
}

func TestSave_UnserializableValueDoesNotPanic(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	store.Save("bad", make(chan int)) // must log and continue
}

package appointment

import (
	"strings"
	"testing"
	"time"

	"github.com/IgnacioMeyer12/concesionaria-server/cmd/models"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db
}

// The collision read must lock FOR UPDATE; a plain snapshot read lets two
// concurrent transactions both see the slot free and both insert.
func TestCollisionQueryLocksForUpdate(t *testing.T) {
	db := dryRunDB(t)
	ts := time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local)

	var citas []models.Appointment
	sql := collisionQuery(db, ts, nil).Find(&citas).Statement.SQL.String()
	if !strings.Contains(sql, "FOR UPDATE") {
		t.Fatalf("expected locking clause, got %q", sql)
	}
	if !strings.Contains(sql, "fecha_hora") {
		t.Fatalf("expected fecha_hora filter, got %q", sql)
	}
	if strings.Contains(sql, "id_vehiculo") {
		t.Fatalf("unscoped query must not filter by vehicle, got %q", sql)
	}
}

func TestCollisionQueryScopesToVehicle(t *testing.T) {
	db := dryRunDB(t)
	ts := time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local)
	vehicleID := "0b9fe9f2-6baf-4f2b-9a0f-0a3c1c5a8d11"

	var citas []models.Appointment
	sql := collisionQuery(db, ts, &vehicleID).Find(&citas).Statement.SQL.String()
	if !strings.Contains(sql, "id_vehiculo") {
		t.Fatalf("expected vehicle scope, got %q", sql)
	}
	if !strings.Contains(sql, "FOR UPDATE") {
		t.Fatalf("expected locking clause, got %q", sql)
	}
}

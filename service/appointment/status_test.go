package appointment

import (
	"testing"
	"time"

	"github.com/IgnacioMeyer12/concesionaria-server/cmd/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.EstadoPendiente, models.EstadoAceptada, true},
		{models.EstadoPendiente, models.EstadoRechazada, true},
		{models.EstadoPendiente, models.EstadoPendiente, false},
		{models.EstadoAceptada, models.EstadoRechazada, false},
		{models.EstadoAceptada, models.EstadoPendiente, false},
		{models.EstadoRechazada, models.EstadoAceptada, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestApplyTransitionAcceptClearsMessage(t *testing.T) {
	prior := "mensaje previo"
	cita := &models.Appointment{Estado: models.EstadoPendiente, MensajeAdmin: &prior}
	now := time.Now()

	if err := ApplyTransition(cita, models.EstadoAceptada, "11111111", "ignorado", now); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if cita.Estado != models.EstadoAceptada {
		t.Fatalf("expected estado aceptada, got %s", cita.Estado)
	}
	if cita.MensajeAdmin != nil {
		t.Fatalf("expected admin message cleared, got %q", *cita.MensajeAdmin)
	}
	if cita.AdminDNI == nil || *cita.AdminDNI != "11111111" {
		t.Fatalf("expected admin attribution")
	}
	if cita.ResueltaEn == nil || !cita.ResueltaEn.Equal(now) {
		t.Fatalf("expected resolution timestamp %v", now)
	}
}

func TestApplyTransitionRejectStoresMessage(t *testing.T) {
	cita := &models.Appointment{Estado: models.EstadoPendiente}

	if err := ApplyTransition(cita, models.EstadoRechazada, "11111111", "sin stock", time.Now()); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if cita.MensajeAdmin == nil || *cita.MensajeAdmin != "sin stock" {
		t.Fatalf("expected admin message persisted")
	}
}

func TestApplyTransitionRejectEmptyMessageIsNull(t *testing.T) {
	cita := &models.Appointment{Estado: models.EstadoPendiente}

	if err := ApplyTransition(cita, models.EstadoRechazada, "11111111", "", time.Now()); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if cita.MensajeAdmin != nil {
		t.Fatalf("expected nil admin message, got %q", *cita.MensajeAdmin)
	}
}

func TestApplyTransitionFromTerminalFails(t *testing.T) {
	cita := &models.Appointment{Estado: models.EstadoAceptada}

	if err := ApplyTransition(cita, models.EstadoRechazada, "11111111", "", time.Now()); err == nil {
		t.Fatalf("expected terminal transition to fail")
	}
	if cita.Estado != models.EstadoAceptada {
		t.Fatalf("expected estado unchanged, got %s", cita.Estado)
	}
}

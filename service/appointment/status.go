package appointment

import (
	"fmt"
	"time"

	"github.com/IgnacioMeyer12/concesionaria-server/cmd/models"
)

// allowedTransitions: pendiente is the only non-terminal estado.
var allowedTransitions = map[string][]string{
	models.EstadoPendiente: {models.EstadoAceptada, models.EstadoRechazada},
	models.EstadoAceptada:  {},
	models.EstadoRechazada: {},
}

func CanTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition mutates the appointment in memory; callers persist it.
// Accepting clears any prior admin message, rejecting stores the supplied
// one (nil when empty).
func ApplyTransition(cita *models.Appointment, to, adminDNI, mensaje string, now time.Time) error {
	if cita == nil {
		return fmt.Errorf("cita is nil")
	}
	if !CanTransition(cita.Estado, to) {
		return fmt.Errorf("invalid estado transition: %s -> %s", cita.Estado, to)
	}

	cita.Estado = to
	cita.AdminDNI = &adminDNI
	t := now
	cita.ResueltaEn = &t

	switch to {
	case models.EstadoAceptada:
		cita.MensajeAdmin = nil
	case models.EstadoRechazada:
		if mensaje == "" {
			cita.MensajeAdmin = nil
		} else {
			m := mensaje
			cita.MensajeAdmin = &m
		}
	}
	return nil
}

package notify

import (
	"fmt"
	"os"
	"strconv"

	"github.com/IgnacioMeyer12/concesionaria-server/cmd/models"
	"gopkg.in/gomail.v2"
)

// SendResolutionEmail tells a client their appointment was accepted or
// rejected. Callers skip it when the user has no email on file.
func SendResolutionEmail(email string, cita *models.Appointment) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	var body string
	switch cita.Estado {
	case models.EstadoAceptada:
		body = fmt.Sprintf("Su cita del %s fue aceptada. Lo esperamos.",
			cita.FechaHora.Format("02/01/2006 15:04"))
	case models.EstadoRechazada:
		body = fmt.Sprintf("Su cita del %s fue rechazada.",
			cita.FechaHora.Format("02/01/2006 15:04"))
		if cita.MensajeAdmin != nil {
			body += " Motivo: " + *cita.MensajeAdmin
		}
	default:
		return fmt.Errorf("cita %d is not resolved", cita.ID)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Estado de su cita")
	m.SetBody("text/plain", body)

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP port: %v", err)
	}
	d := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)

	return d.DialAndSend(m)
}

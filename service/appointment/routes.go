package appointment

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/IgnacioMeyer12/concesionaria-server/cmd/models"
	"github.com/IgnacioMeyer12/concesionaria-server/cmd/utils"
	"github.com/IgnacioMeyer12/concesionaria-server/service/notify"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AppointmentHandler struct {
	db  *gorm.DB
	hub *notify.Hub
}

func NewAppointmentHandler(db *gorm.DB, hub *notify.Hub) *AppointmentHandler {
	return &AppointmentHandler{db: db, hub: hub}
}

func (h *AppointmentHandler) RegisterRoutes(router *mux.Router) {
	// availability before {id} so mux does not swallow it as an ID
	router.HandleFunc("/citas/availability", h.GetAvailability).Methods("GET")
	router.HandleFunc("/citas", h.GetAppointments).Methods("GET")
	router.HandleFunc("/citas", h.BookAppointment).Methods("POST")
	router.HandleFunc("/citas/{id}", h.GetAppointment).Methods("GET")
	router.HandleFunc("/citas/{id}", h.ResolveAppointment).Methods("PATCH")
	router.HandleFunc("/citas/{id}", h.ResolveAppointment).Methods("PUT")
}

// GetAvailability reports the seven fixed slots for a date, each marked
// available unless an appointment already occupies that date-time,
// scoped to a vehicle when idVehiculo is given.
func (h *AppointmentHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		utils.WriteError(w, http.StatusBadRequest, "date query parameter is required")
		return
	}

	date, err := ParseDate(dateStr)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	query := h.db.Model(&models.Appointment{}).
		Where("fecha_hora >= ? AND fecha_hora < ?", date, date.AddDate(0, 0, 1))
	if idVehiculo := r.URL.Query().Get("idVehiculo"); idVehiculo != "" {
		query = query.Where("id_vehiculo = ?", idVehiculo)
	}

	var citas []models.Appointment
	if err := query.Find(&citas).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving appointments")
		return
	}

	occupied := make(map[string]bool, len(citas))
	for _, cita := range citas {
		// normalize to the zone bookings are parsed in, whatever zone
		// the driver handed the value back in
		occupied[cita.FechaHora.In(time.Local).Format(timeLayout)] = true
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"date":  dateStr,
		"slots": ComputeAvailability(occupied),
	})
}

// GetAppointments lists appointments, optionally filtered by requester DNI.
func (h *AppointmentHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	query := h.db.Model(&models.Appointment{}).
		Preload("Cliente").Preload("Vehicle")

	if dni := r.URL.Query().Get("dni"); dni != "" {
		query = query.Where("dni_cliente = ?", dni)
	}
	if estado := r.URL.Query().Get("estado"); estado != "" {
		query = query.Where("estado = ?", estado)
	}

	var citas []models.Appointment
	if err := query.Order("fecha_hora DESC").Find(&citas).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving appointments")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"citas": citas,
	})
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	citaID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	var cita models.Appointment
	if err := h.db.Preload("Cliente").Preload("Vehicle").First(&cita, citaID).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Appointment not found")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"cita": cita,
	})
}

// collisionQuery selects whatever already occupies the slot, locking FOR
// UPDATE so the gap lock serializes concurrent inserts for the same
// date-time. A plain snapshot read would let two transactions both see
// the slot free under REPEATABLE READ.
func collisionQuery(tx *gorm.DB, fechaHora time.Time, vehicleID *string) *gorm.DB {
	q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Model(&models.Appointment{}).
		Where("fecha_hora = ?", fechaHora)
	if vehicleID != nil {
		q = q.Where("id_vehiculo = ?", *vehicleID)
	}
	return q
}

// BookAppointment creates a cita in estado pendiente. The locking
// collision check and the insert run inside one transaction so two
// concurrent requests cannot both take the slot.
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var bookingRequest struct {
		DNI        string `json:"dni"`
		Fecha      string `json:"fecha"`
		Hora       string `json:"hora"`
		Motivo     string `json:"motivo"`
		IDVehiculo string `json:"idVehiculo"`
	}

	if err := json.NewDecoder(r.Body).Decode(&bookingRequest); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if bookingRequest.DNI == "" || bookingRequest.Fecha == "" || bookingRequest.Hora == "" || bookingRequest.Motivo == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing required fields: dni, fecha, hora, motivo")
		return
	}

	fechaHora, err := ParseDateTime(bookingRequest.Fecha, bookingRequest.Hora)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid date or time format")
		return
	}

	if !IsBusinessDay(fechaHora) {
		utils.WriteError(w, http.StatusBadRequest, "Appointments are only available Monday through Friday")
		return
	}
	if !WithinBusinessHours(fechaHora) {
		utils.WriteError(w, http.StatusBadRequest, "Appointments are only available 09:00-13:00 and 15:00-18:00")
		return
	}

	tx := h.db.Begin()

	var cliente models.User
	if err := tx.First(&cliente, "dni = ?", bookingRequest.DNI).Error; err != nil {
		tx.Rollback()
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	var vehicleID *string
	if bookingRequest.IDVehiculo != "" {
		var vehicle models.Vehicle
		if err := tx.Where("id = ? AND activo = ?", bookingRequest.IDVehiculo, true).First(&vehicle).Error; err != nil {
			tx.Rollback()
			utils.WriteError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		vehicleID = &vehicle.ID
	}

	var existing models.Appointment
	if err := collisionQuery(tx, fechaHora, vehicleID).First(&existing).Error; err == nil {
		tx.Rollback()
		utils.WriteError(w, http.StatusConflict, "Time slot already booked")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		utils.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	cita := models.Appointment{
		ClienteDNI: bookingRequest.DNI,
		VehicleID:  vehicleID,
		FechaHora:  fechaHora,
		Motivo:     bookingRequest.Motivo,
		Estado:     models.EstadoPendiente,
	}

	if err := tx.Create(&cita).Error; err != nil {
		tx.Rollback()
		utils.WriteError(w, http.StatusInternalServerError, "Error creating appointment")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error completing booking")
		return
	}

	if err := h.db.Preload("Cliente").Preload("Vehicle").First(&cita, cita.ID).Error; err != nil {
		log.Printf("Error reloading cita %d after booking: %v", cita.ID, err)
	}

	h.hub.Broadcast(notify.EventCitaCreada, &cita)

	utils.WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"cita": cita,
	})
}

// ResolveAppointment is the admin-only pendiente -> aceptada/rechazada
// transition. Terminal states reject further changes.
func (h *AppointmentHandler) ResolveAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	citaID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	var resolveRequest struct {
		Estado   string `json:"estado"`
		DNIAdmin string `json:"dniAdmin"`
		Mensaje  string `json:"mensaje"`
	}
	if err := json.NewDecoder(r.Body).Decode(&resolveRequest); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if resolveRequest.Estado != models.EstadoAceptada && resolveRequest.Estado != models.EstadoRechazada {
		utils.WriteError(w, http.StatusBadRequest, "estado must be aceptada or rechazada")
		return
	}
	if resolveRequest.DNIAdmin == "" {
		utils.WriteError(w, http.StatusBadRequest, "dniAdmin is required")
		return
	}

	var admin models.User
	if err := h.db.First(&admin, "dni = ?", resolveRequest.DNIAdmin).Error; err != nil {
		utils.WriteError(w, http.StatusForbidden, "Admin user not found")
		return
	}
	if !admin.IsAdmin() {
		utils.WriteError(w, http.StatusForbidden, "Only administrators can resolve appointments")
		return
	}

	var cita models.Appointment
	if err := h.db.First(&cita, citaID).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Appointment not found")
		return
	}

	if err := ApplyTransition(&cita, resolveRequest.Estado, admin.DNI, resolveRequest.Mensaje, time.Now()); err != nil {
		utils.WriteError(w, http.StatusConflict, "Appointment has already been resolved")
		return
	}

	if err := h.db.Save(&cita).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error updating appointment")
		return
	}

	if err := h.db.Preload("Cliente").Preload("Vehicle").First(&cita, cita.ID).Error; err != nil {
		log.Printf("Error reloading cita %d after resolution: %v", cita.ID, err)
	}

	h.hub.Broadcast(notify.EventCitaResuelta, &cita)

	if cita.Cliente != nil && cita.Cliente.Email != "" {
		email := cita.Cliente.Email
		resolved := cita
		go func() {
			if err := notify.SendResolutionEmail(email, &resolved); err != nil {
				log.Printf("Error sending resolution email for cita %d: %v", resolved.ID, err)
			}
		}()
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"cita": cita,
	})
}

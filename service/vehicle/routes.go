package vehicle

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/IgnacioMeyer12/concesionaria-server/cmd/models"
	"github.com/IgnacioMeyer12/concesionaria-server/cmd/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type VehicleHandler struct {
	db *gorm.DB
}

func NewVehicleHandler(db *gorm.DB) *VehicleHandler {
	return &VehicleHandler{db: db}
}

func (h *VehicleHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/vehiculos", h.GetVehicles).Methods("GET")
	router.HandleFunc("/vehiculos", h.CreateVehicle).Methods("POST")
	router.HandleFunc("/vehiculos/{id}", h.GetVehicle).Methods("GET")
	router.HandleFunc("/vehiculos/{id}", h.UpdateVehicle).Methods("PUT")
	router.HandleFunc("/vehiculos/{id}", h.DeleteVehicle).Methods("DELETE")
}

// GetVehicles lists the active catalog.
func (h *VehicleHandler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	var vehicles []models.Vehicle
	if err := h.db.Where("activo = ?", true).Order("created_at DESC").Find(&vehicles).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving vehicles")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"vehiculos": vehicles,
	})
}

func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var vehicle models.Vehicle
	if err := h.db.First(&vehicle, "id = ?", vars["id"]).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"vehiculo": vehicle,
	})
}

func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var createRequest struct {
		Marca       string   `json:"marca"`
		Modelo      string   `json:"modelo"`
		Anio        int      `json:"anio"`
		Precio      float64  `json:"precio"`
		Km          int      `json:"km"`
		Stock       int      `json:"stock"`
		Color       string   `json:"color"`
		Fotos       []string `json:"fotos"`
		Descripcion string   `json:"descripcion"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createRequest); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if createRequest.Marca == "" || createRequest.Modelo == "" || createRequest.Anio == 0 || createRequest.Precio <= 0 {
		utils.WriteError(w, http.StatusBadRequest, "Missing required fields: marca, modelo, anio, precio")
		return
	}
	if createRequest.Anio < 1900 || createRequest.Anio > time.Now().Year()+1 {
		utils.WriteError(w, http.StatusBadRequest, "anio is out of range")
		return
	}

	vehicle := models.Vehicle{
		ID:          uuid.New().String(),
		Marca:       createRequest.Marca,
		Modelo:      createRequest.Modelo,
		Anio:        createRequest.Anio,
		Precio:      createRequest.Precio,
		Km:          createRequest.Km,
		Stock:       createRequest.Stock,
		Color:       createRequest.Color,
		Fotos:       models.PhotoList(createRequest.Fotos),
		Descripcion: createRequest.Descripcion,
		Activo:      true,
	}

	if err := h.db.Create(&vehicle).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error creating vehicle")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"vehiculo": vehicle,
	})
}

func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var vehicle models.Vehicle
	if err := h.db.First(&vehicle, "id = ?", vars["id"]).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	var updateRequest struct {
		Marca       *string   `json:"marca"`
		Modelo      *string   `json:"modelo"`
		Anio        *int      `json:"anio"`
		Precio      *float64  `json:"precio"`
		Km          *int      `json:"km"`
		Stock       *int      `json:"stock"`
		Color       *string   `json:"color"`
		Fotos       *[]string `json:"fotos"`
		Descripcion *string   `json:"descripcion"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateRequest); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if updateRequest.Marca != nil {
		vehicle.Marca = *updateRequest.Marca
	}
	if updateRequest.Modelo != nil {
		vehicle.Modelo = *updateRequest.Modelo
	}
	if updateRequest.Anio != nil {
		vehicle.Anio = *updateRequest.Anio
	}
	if updateRequest.Precio != nil {
		vehicle.Precio = *updateRequest.Precio
	}
	if updateRequest.Km != nil {
		vehicle.Km = *updateRequest.Km
	}
	if updateRequest.Stock != nil {
		vehicle.Stock = *updateRequest.Stock
	}
	if updateRequest.Color != nil {
		vehicle.Color = *updateRequest.Color
	}
	if updateRequest.Fotos != nil {
		vehicle.Fotos = models.PhotoList(*updateRequest.Fotos)
	}
	if updateRequest.Descripcion != nil {
		vehicle.Descripcion = *updateRequest.Descripcion
	}

	if err := h.db.Save(&vehicle).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error updating vehicle")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"vehiculo": vehicle,
	})
}

// DeleteVehicle soft-deletes via the activo flag so existing appointments
// keep their reference.
func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	result := h.db.Model(&models.Vehicle{}).Where("id = ?", vars["id"]).Update("activo", false)
	if result.Error != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error deleting vehicle")
		return
	}
	if result.RowsAffected == 0 {
		utils.WriteError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "Vehicle deleted successfully",
	})
}

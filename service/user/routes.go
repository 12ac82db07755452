package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/IgnacioMeyer12/concesionaria-server/cmd/models"
	"github.com/IgnacioMeyer12/concesionaria-server/cmd/utils"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/register", h.HandleRegister).Methods("POST")
	router.HandleFunc("/login", h.HandleLogin).Methods("POST")
	router.HandleFunc("/me", utils.AuthMiddleware(h.GetProfile)).Methods("GET")
	router.HandleFunc("/users", h.GetUsers).Methods("GET")
	router.HandleFunc("/users/{dni}", h.GetUser).Methods("GET")
	router.HandleFunc("/users/{dni}", h.DeactivateUser).Methods("DELETE")
}

type RegisterRequest struct {
	DNI        string `json:"dni"`
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	Telefono   string `json:"telefono"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Rol        string `json:"rol"`
	CreatorDNI string `json:"creatorDni"`
}

// ValidateRegisterRequest normalizes the rol and checks everything that
// does not need a database round trip.
func ValidateRegisterRequest(req *RegisterRequest) error {
	if req.DNI == "" || req.Nombre == "" || req.Apellido == "" || req.Telefono == "" || req.Password == "" {
		return errors.New("missing required fields: dni, nombre, apellido, telefono, password")
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if req.Rol == "" {
		req.Rol = models.RoleClient
	}
	if req.Rol != models.RoleAdmin && req.Rol != models.RoleClient {
		return fmt.Errorf("invalid rol %q", req.Rol)
	}
	return nil
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var registerRequest RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&registerRequest); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON input")
		return
	}

	if err := ValidateRegisterRequest(&registerRequest); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Creating an admin requires an existing active admin as creator.
	if registerRequest.Rol == models.RoleAdmin {
		var creator models.User
		if registerRequest.CreatorDNI == "" {
			utils.WriteError(w, http.StatusForbidden, "creatorDni is required to create an admin account")
			return
		}
		if err := h.db.First(&creator, "dni = ?", registerRequest.CreatorDNI).Error; err != nil || !creator.IsAdmin() {
			utils.WriteError(w, http.StatusForbidden, "creatorDni does not belong to an active admin")
			return
		}
	}

	var existingUser models.User
	if result := h.db.Where("dni = ? OR telefono = ?", registerRequest.DNI, registerRequest.Telefono).First(&existingUser); !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		if result.Error != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
			return
		}

		var errorMessage string
		switch {
		case existingUser.DNI == registerRequest.DNI && existingUser.Telefono == registerRequest.Telefono:
			errorMessage = "DNI and phone number are already in use"
		case existingUser.DNI == registerRequest.DNI:
			errorMessage = "DNI is already in use"
		default:
			errorMessage = "Phone number is already in use"
		}
		log.Printf("Registration attempt with duplicate: %s", errorMessage)
		utils.WriteError(w, http.StatusBadRequest, errorMessage)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(registerRequest.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := models.User{
		DNI:          registerRequest.DNI,
		Nombre:       registerRequest.Nombre,
		Apellido:     registerRequest.Apellido,
		Telefono:     registerRequest.Telefono,
		Email:        registerRequest.Email,
		PasswordHash: string(passwordHash),
		Rol:          registerRequest.Rol,
		Activo:       true,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") || strings.Contains(err.Error(), "UNIQUE constraint") {
			utils.WriteError(w, http.StatusBadRequest, "DNI or phone number is already in use")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Error registering user")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"user": user,
	})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var loginRequest struct {
		DNI      string `json:"dni"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&loginRequest); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if loginRequest.DNI == "" || loginRequest.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "dni and password are required")
		return
	}

	var user models.User
	if err := h.db.First(&user, "dni = ?", loginRequest.DNI).Error; err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(loginRequest.Password)); err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !user.Activo {
		utils.WriteError(w, http.StatusForbidden, "Account is deactivated")
		return
	}

	accessToken, err := utils.GenerateToken(user.DNI, 24*time.Hour)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error generating access token")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"user":         user,
		"access_token": accessToken,
	})
}

// GetProfile returns the authenticated user's own record.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	dni, err := utils.GetUserDNIFromContext(r)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var user models.User
	if err := h.db.First(&user, "dni = ?", dni).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"user": user,
	})
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	query := h.db.Model(&models.User{})
	if rol := r.URL.Query().Get("rol"); rol != "" {
		query = query.Where("rol = ?", rol)
	}

	var users []models.User
	if err := query.Order("apellido, nombre").Find(&users).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving users")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"users": users,
	})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var user models.User
	if err := h.db.First(&user, "dni = ?", vars["dni"]).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"user": user,
	})
}

// DeactivateUser flips Activo off. Rows are never hard-deleted.
func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	result := h.db.Model(&models.User{}).Where("dni = ?", vars["dni"]).Update("activo", false)
	if result.Error != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error deactivating user")
		return
	}
	if result.RowsAffected == 0 {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "User deactivated successfully",
	})
}

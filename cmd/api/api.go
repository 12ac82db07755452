package api

import (
	"log"
	"net/http"

	"github.com/IgnacioMeyer12/concesionaria-server/service/appointment"
	"github.com/IgnacioMeyer12/concesionaria-server/service/notify"
	"github.com/IgnacioMeyer12/concesionaria-server/service/upload"
	"github.com/IgnacioMeyer12/concesionaria-server/service/user"
	"github.com/IgnacioMeyer12/concesionaria-server/service/vehicle"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type APIServer struct {
	address string
	db      *gorm.DB
}

func NewApiServer(address string, db *gorm.DB) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
	}
}

func (s *APIServer) Run() error {
	router := mux.NewRouter()
	subrouter := router.PathPrefix("/api").Subrouter()

	hub := notify.NewHub()
	hub.RegisterRoutes(router)

	userHandler := user.NewHandler(s.db)
	userHandler.RegisterRoutes(subrouter)

	vehicleHandler := vehicle.NewVehicleHandler(s.db)
	vehicleHandler.RegisterRoutes(subrouter)

	appointmentHandler := appointment.NewAppointmentHandler(s.db, hub)
	appointmentHandler.RegisterRoutes(subrouter)

	uploadHandler := upload.NewUploadHandler()
	uploadHandler.RegisterRoutes(subrouter)
	uploadHandler.RegisterStaticRoutes(router)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Println("Server running at", s.address)
	return http.ListenAndServe(s.address, cors(router))
}

package models

import (
	"time"
)

const (
	EstadoPendiente = "pendiente"
	EstadoAceptada  = "aceptada"
	EstadoRechazada = "rechazada"
)

// Appointment is created by a client in estado pendiente and resolved
// exactly once by an admin. Rows are never deleted.
type Appointment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ClienteDNI   string     `gorm:"column:dni_cliente;size:16;not null;index" json:"dni"`
	VehicleID    *string    `gorm:"column:id_vehiculo;size:36;index" json:"idVehiculo,omitempty"`
	FechaHora    time.Time  `gorm:"column:fecha_hora;not null;index" json:"fechaHora"`
	Motivo       string     `gorm:"column:motivo;type:text;not null" json:"motivo"`
	Estado       string     `gorm:"column:estado;size:20;not null;default:pendiente" json:"estado"`
	AdminDNI     *string    `gorm:"column:dni_admin;size:16" json:"dniAdmin,omitempty"`
	MensajeAdmin *string    `gorm:"column:mensaje_admin;type:text" json:"mensajeAdmin,omitempty"`
	ResueltaEn   *time.Time `gorm:"column:resuelta_en" json:"resueltaEn,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"-"`

	Cliente *User    `gorm:"foreignKey:ClienteDNI;references:DNI" json:"cliente,omitempty"`
	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehiculo,omitempty"`
}

func (Appointment) TableName() string {
	return "citas"
}

package models

import (
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleClient = "cliente"
)

// User is keyed by the DNI (national identity number) instead of a
// generated ID. Users are never hard-deleted; Activo gates access.
type User struct {
	DNI          string    `gorm:"column:dni;primaryKey;size:16" json:"dni"`
	Nombre       string    `gorm:"column:nombre;size:100;not null" json:"nombre"`
	Apellido     string    `gorm:"column:apellido;size:100;not null" json:"apellido"`
	Telefono     string    `gorm:"column:telefono;size:20;uniqueIndex;not null" json:"telefono"`
	Email        string    `gorm:"column:email;size:255" json:"email,omitempty"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	Rol          string    `gorm:"column:rol;size:20;not null;default:cliente" json:"rol"`
	Activo       bool      `gorm:"column:activo;not null;default:true" json:"activo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

func (User) TableName() string {
	return "usuarios"
}

func (u *User) IsAdmin() bool {
	return u.Rol == RoleAdmin && u.Activo
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PhotoList keeps the ordered photo URLs of a vehicle as a JSON-encoded
// text column, so the column stays readable from the admin UI tooling.
type PhotoList []string

func (p PhotoList) Value() (driver.Value, error) {
	if p == nil {
		p = PhotoList{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (p *PhotoList) Scan(value interface{}) error {
	if value == nil {
		*p = PhotoList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported type %T for PhotoList", value)
	}
}

type Vehicle struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Marca       string    `gorm:"column:marca;size:100;not null" json:"marca"`
	Modelo      string    `gorm:"column:modelo;size:100;not null" json:"modelo"`
	Anio        int       `gorm:"column:anio;not null" json:"anio"`
	Precio      float64   `gorm:"column:precio;not null" json:"precio"`
	Km          int       `gorm:"column:km;default:0" json:"km"`
	Stock       int       `gorm:"column:stock;default:0" json:"stock"`
	Color       string    `gorm:"column:color;size:50" json:"color,omitempty"`
	Fotos       PhotoList `gorm:"column:fotos;type:text" json:"fotos"`
	Descripcion string    `gorm:"column:descripcion;type:text" json:"descripcion"`
	Activo      bool      `gorm:"column:activo;not null;default:true" json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

func (Vehicle) TableName() string {
	return "vehiculos"
}

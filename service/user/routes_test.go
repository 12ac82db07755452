package user

import (
	"testing"

	"github.com/IgnacioMeyer12/concesionaria-server/cmd/models"
)

func validRequest() RegisterRequest {
	return RegisterRequest{
		DNI:      "30111222",
		Nombre:   "Ana",
		Apellido: "Gomez",
		Telefono: "1155667788",
		Password: "secreto1",
	}
}

func TestValidateRegisterRequestDefaultsRol(t *testing.T) {
	req := validRequest()
	if err := ValidateRegisterRequest(&req); err != nil {
		t.Fatalf("ValidateRegisterRequest: %v", err)
	}
	if req.Rol != models.RoleClient {
		t.Fatalf("expected default rol cliente, got %q", req.Rol)
	}
}

func TestValidateRegisterRequestMissingFields(t *testing.T) {
	for _, mutate := range []func(*RegisterRequest){
		func(r *RegisterRequest) { r.DNI = "" },
		func(r *RegisterRequest) { r.Nombre = "" },
		func(r *RegisterRequest) { r.Apellido = "" },
		func(r *RegisterRequest) { r.Telefono = "" },
		func(r *RegisterRequest) { r.Password = "" },
	} {
		req := validRequest()
		mutate(&req)
		if err := ValidateRegisterRequest(&req); err == nil {
			t.Errorf("expected error for %+v", req)
		}
	}
}

func TestValidateRegisterRequestShortPassword(t *testing.T) {
	req := validRequest()
	req.Password = "abc12"
	if err := ValidateRegisterRequest(&req); err == nil {
		t.Fatalf("expected error for short password")
	}
}

func TestValidateRegisterRequestRol(t *testing.T) {
	req := validRequest()
	req.Rol = "gerente"
	if err := ValidateRegisterRequest(&req); err == nil {
		t.Fatalf("expected error for unknown rol")
	}

	req = validRequest()
	req.Rol = models.RoleAdmin
	if err := ValidateRegisterRequest(&req); err != nil {
		t.Fatalf("admin rol should pass validation, got %v", err)
	}
}

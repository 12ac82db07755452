package models

import (
	"testing"
)

func TestPhotoListScanNilIsEmpty(t *testing.T) {
	var p PhotoList
	if err := p.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if p == nil || len(p) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", p)
	}
}

func TestPhotoListScanPreservesOrder(t *testing.T) {
	var p PhotoList
	if err := p.Scan([]byte(`["/images/a.jpg","/images/b.jpg"]`)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(p) != 2 || p[0] != "/images/a.jpg" || p[1] != "/images/b.jpg" {
		t.Fatalf("unexpected list: %#v", p)
	}
}

func TestPhotoListValueEmpty(t *testing.T) {
	var p PhotoList
	v, err := p.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "[]" {
		t.Fatalf("expected empty JSON array, got %v", v)
	}
}

func TestPhotoListScanRejectsUnknownType(t *testing.T) {
	var p PhotoList
	if err := p.Scan(42); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

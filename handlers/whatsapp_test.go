package handlers

import (
	"net/url"
	"strings"
	"testing"

	"p9e.in/frota/models"
)

func TestBuildWhatsAppLink(t *testing.T) {
	rq := models.Requisition{
		InternalNumber: 42,
		RequesterName:  "PAULO",
		VehicleID:      models.ExternalVehicleID,
		ExternalType:   "GERADOR",
		Product:        models.ProductDieselS10,
		Quantity:       50,
		RequestDate:    "2025-08-30",
		RequestTime:    "09:15",
	}

	link := BuildWhatsAppLink(rq, "")
	if !strings.HasPrefix(link, "https://wa.me/") {
		t.Fatalf("link = %q, expected a wa.me URL", link)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	text := u.Query().Get("text")
	for _, want := range []string{
		"Requisição nº 42",
		"PAULO",
		"GERADOR",
		"DIESEL S10",
		"50.0 L",
		"1 - Aprovar",
		"2 - Rejeitar",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("decoded text missing %q:\n%s", want, text)
		}
	}
	// The summary must be urlencoded, not raw, in the link itself.
	if strings.Contains(link, " ") || strings.Contains(link, "\n") {
		t.Error("link contains unescaped whitespace")
	}
}

func TestBuildWhatsAppLinkFillTank(t *testing.T) {
	rq := models.Requisition{
		InternalNumber: 7,
		RequesterName:  "MARIA",
		VehicleID:      "0b9f8a33-5b3c-4f57-9f74-6a2e5d1c8b11",
		Product:        models.ProductGasoline,
		FillTank:       true,
		RequestDate:    "2025-08-30",
	}
	u, err := url.Parse(BuildWhatsAppLink(rq, "ABC1234"))
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	text := u.Query().Get("text")
	if !strings.Contains(text, "tanque cheio") {
		t.Errorf("fill-tank request should say tanque cheio:\n%s", text)
	}
	if strings.Contains(text, "Equipamento") {
		t.Errorf("fleet vehicle rendered as external equipment:\n%s", text)
	}
	// The approver reads the chat, so the summary carries the plate, not
	// the vehicle uuid.
	if !strings.Contains(text, "Veículo: ABC1234") {
		t.Errorf("summary missing the plate:\n%s", text)
	}
	if strings.Contains(text, "0b9f8a33") {
		t.Errorf("summary leaks the raw vehicle uuid:\n%s", text)
	}
}

func TestBuildWhatsAppLinkPlateFallback(t *testing.T) {
	rq := models.Requisition{
		InternalNumber: 8,
		VehicleID:      "0b9f8a33-5b3c-4f57-9f74-6a2e5d1c8b11",
		Product:        models.ProductEthanol,
		Quantity:       20,
		RequestDate:    "2025-08-30",
	}
	u, _ := url.Parse(BuildWhatsAppLink(rq, ""))
	text := u.Query().Get("text")
	if !strings.Contains(text, "Veículo: 0b9f8a33-5b3c-4f57-9f74-6a2e5d1c8b11") {
		t.Errorf("unknown plate should fall back to the vehicle id:\n%s", text)
	}
}

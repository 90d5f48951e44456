package handlers

import (
	"testing"

	"p9e.in/frota/models"
)

func TestApprovalContract(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		vehicle   string
		expected  string
	}{
		{"explicit choice wins", models.ContractLeased, models.ContractOwned, models.ContractLeased},
		{"omitted defaults to the vehicle's contract", "", models.ContractOwned, models.ContractOwned},
		{"blank defaults to the vehicle's contract", "   ", models.ContractLeased, models.ContractLeased},
		{"external equipment has nothing to fall back to", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := approvalContract(tt.requested, tt.vehicle); got != tt.expected {
				t.Errorf("approvalContract(%q, %q) = %q, expected %q", tt.requested, tt.vehicle, got, tt.expected)
			}
		})
	}
}

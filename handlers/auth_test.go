package handlers

import "testing"

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ADMIN", "ADMIN"},
		{"admin", "ADMIN"},
		{" Admin ", "ADMIN"},
		{"ENCARREGADO", "ENCARREGADO"},
		{"encarregado", "ENCARREGADO"},
		{"OPERADOR", "OPERADOR"},
		{"gerente", "OPERADOR"},
		{"", "OPERADOR"},
		{"super admin", "OPERADOR"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeRole(tt.input); got != tt.expected {
				t.Errorf("NormalizeRole(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

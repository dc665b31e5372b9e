package handler

import (
	"strings"
	"testing"
)

func TestStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Secr3t_pw", true},
		{"Abcdef1@", true},
		{"Abcdef1$", true},
		{"Abc1_", false},
		{"abcdefg1_", false},
		{"ABCDEFG1_", false},
		{"Abcdefgh_", false},
		{"Abcdefg12", false},
		{"Abcdefg1!", false},
	}
	for _, tt := range tests {
		if got := strongPassword(tt.password); got != tt.want {
			t.Errorf("strongPassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&createUserRequest{Name: "A", Username: "alice", Password: "weak", CPF: "123"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "password must have at least 8 characters") {
		t.Fatalf("missing password message: %s", msg)
	}
	if !strings.Contains(msg, "cpf must be 11 digits") {
		t.Fatalf("missing cpf message: %s", msg)
	}
	if strings.Contains(msg, "weak") {
		t.Fatalf("password value leaked into message: %s", msg)
	}

	if err := v.Validate(&createUserRequest{Name: "A", Username: "alice", Password: "Secr3t_pw", CPF: "1234567890a"}); err == nil {
		t.Fatalf("expected non-digit cpf to fail")
	}
	if err := v.Validate(&createUserRequest{Name: "A", Username: "alice", Password: "Secr3t_pw", CPF: "12345678901"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

package domain

import "time"

// Credential pairs a username with its bcrypt hash. The plaintext password is
// never part of it.
type Credential struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// User models a registered account.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
	CPF  string `json:"cpf"`
	Credential
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

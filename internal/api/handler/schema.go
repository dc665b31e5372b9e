package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// --- Users ---

type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Age      int    `json:"age"      validate:"gte=0,lte=150"`
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,password"`
	CPF      string `json:"cpf"      validate:"required,cpf"`
}

type updateUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Age      int    `json:"age"      validate:"gte=0,lte=150"`
	Username string `json:"username" validate:"omitempty,min=3,max=64"`
	Password string `json:"password" validate:"omitempty,password"`
	CPF      string `json:"cpf"      validate:"required,cpf"`
}

type listUsersQuery struct {
	Skip        int    `query:"skip"         validate:"gte=0"`
	Limit       int    `query:"limit"        validate:"gte=0,lte=100"`
	Filter      string `query:"filter"       validate:"omitempty,oneof=name username age cpf"`
	FilterValue string `query:"filter_value" validate:"required_with=Filter"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Username  string    `json:"username"`
	CPF       string    `json:"cpf"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Tasks ---

type taskRequest struct {
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type listTasksQuery struct {
	Skip  int `query:"skip"  validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=0,lte=100"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

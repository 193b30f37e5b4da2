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

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=80"`
	Password string `json:"password" validate:"required"`
}

type signupResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type profileResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Accounts ---

type createAccountRequest struct {
	Name          string `json:"name"           validate:"required,max=100"`
	Email         string `json:"email"          validate:"required,max=120"`
	ContactNumber string `json:"contact_number" validate:"required,max=50"`
}

type createAccountResponse struct {
	Message   string `json:"message"`
	AccountID uint   `json:"account_id"`
}

// updateAccountRequest fields are optional; absent or null keeps the stored
// value, an empty string is rejected.
type updateAccountRequest struct {
	Name          *string `json:"name"           validate:"omitnil,min=1,max=100"`
	Email         *string `json:"email"          validate:"omitnil,min=1,max=120"`
	ContactNumber *string `json:"contact_number" validate:"omitnil,min=1,max=50"`
}

type accountResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contact_number"`
	AddedBy       uint      `json:"added_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// accountSummary is a list entry; owner ids are not exposed in listings.
type accountSummary struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contact_number"`
	CreatedAt     time.Time `json:"created_at"`
}

type listAccountsResponse struct {
	Accounts     []accountSummary `json:"accounts"`
	TotalRecords int64            `json:"total_records"`
	TotalPages   int              `json:"total_pages"`
	CurrentPage  int              `json:"current_page"`
	PageSize     int              `json:"page_size"`
}

// --- Users ---

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin client"`
}

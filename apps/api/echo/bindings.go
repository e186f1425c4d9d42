package echoapi

import "github.com/darasahq/darasa/core/account"

// AccountResponse is the public shape of an account; the stored credential
// never leaves the process.
type AccountResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func newAccountResponse(acct account.Account) AccountResponse {
	return AccountResponse{
		ID:    acct.ID,
		Name:  acct.Name,
		Email: acct.Email,
		Role:  acct.Role,
	}
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

type SuccessResponse struct {
	Success string `json:"success"`
}

type RespondRequest struct {
	Response string `json:"response" validate:"required"`
}

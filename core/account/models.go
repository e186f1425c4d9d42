package account

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
)

// Roles
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

var AllRoles = []string{RoleTeacher, RoleStudent}

// NormalizeRole maps any unknown role value to RoleStudent.
func NormalizeRole(role string) string {
	switch role {
	case RoleTeacher, RoleStudent:
		return role
	default:
		return RoleStudent
	}
}

// Account is a registered identity. Email is unique across accounts
// (case-insensitively, enforced at registration time only) and the password is
// stored and compared verbatim to keep parity with the browser storage
// documents this service replaces.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (a Account) IsTeacher() bool { return a.Role == RoleTeacher }
func (a Account) IsStudent() bool { return a.Role == RoleStudent }

// EmailMatches reports whether the account's email equals the given one,
// ignoring case.
func (a Account) EmailMatches(email string) bool {
	return strings.EqualFold(a.Email, email)
}

// NewAccount contains information needed to register a new Account.
// Format validation lives here, at the API boundary; the Service itself only
// enforces email uniqueness.
type NewAccount struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

func (na *NewAccount) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.Email = core.CleanString(na.Email)
	na.Role = core.CleanString(na.Role, true /* lower */)
	return validate.Struct(na)
}

// Credentials is a login request. Role, when set, must match the stored
// account's role for login to succeed.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,accountrole"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Email = core.CleanString(c.Email)
	c.Role = core.CleanString(c.Role, true /* lower */)
	return validate.Struct(c)
}

var (
	accountRoleTag  = "accountrole"
	accountRoleText = "invalid role"
)

// InitValidators registers the account-specific validation tags.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(accountRoleTag, accountRoleValidation)
	core.RegisterCustomTranslation(validate, translator, accountRoleTag, accountRoleText)
}

// accountRoleValidation checks that the provided role is one of AllRoles.
func accountRoleValidation(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	for _, r := range AllRoles {
		if role == r {
			return true
		}
	}
	return false
}

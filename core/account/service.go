package account

import (
	"fmt"
	"net/mail"
	"sync"
	texttmpl "text/template"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
)

var (
	// errors
	ErrNotFound           = errors.New("account not found")
	ErrDuplicateAccount   = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// RoleMismatchError is returned by Login when the credentials are valid but
// the requested role differs from the account's actual role.
type RoleMismatchError struct {
	Role string // the account's actual role
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("selected role does not match your account (%s)", e.Role)
}

type (
	// Store persists the three account collections. Each Save rewrites the
	// whole record; a Load of malformed stored content yields the empty
	// collection, never an error.
	Store interface {
		LoadAccounts() ([]Account, error)
		SaveAccounts(accts []Account) error
		LoadCurrent() (*Account, error)
		SaveCurrent(acct *Account) error
		LoadProfiles() (map[string]StudentProfile, error)
		SaveProfiles(profiles map[string]StudentProfile) error
	}

	ServiceInterface interface {
		Register(na NewAccount) (Account, error)
		Login(creds Credentials) (Account, error)
		Logout() error
		Current() (*Account, error)
		GetByID(id string) (Account, error)
		QueryAll() ([]Account, error)
		QueryByRole(role string) ([]Account, error)
		GetStudentProfile(id string) (*StudentProfile, error)
		UpdateStudentProfile(id string, profile StudentProfile) error
	}

	service struct {
		mu      sync.Mutex
		store   Store
		mailSvc core.EmailService
		conf    *core.Config
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(store Store, mailSvc core.EmailService, conf *core.Config) ServiceInterface {
	return &service{
		store:   store,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

// Register creates a new Account. It fails with ErrDuplicateAccount when an
// account with the same email (case-insensitive) already exists, and leaves
// all collections untouched in that case. Student accounts get a seeded
// profile immediately.
func (svc *service) Register(na NewAccount) (Account, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	accts, err := svc.store.LoadAccounts()
	if err != nil {
		return Account{}, errors.Wrap(err, "loading accounts")
	}
	for _, a := range accts {
		if a.EmailMatches(na.Email) {
			return Account{}, ErrDuplicateAccount
		}
	}

	acct := Account{
		ID:       uuid.NewString(),
		Name:     na.Name,
		Email:    na.Email,
		Password: na.Password,
		Role:     NormalizeRole(na.Role),
	}
	accts = append(accts, acct)
	if err := svc.store.SaveAccounts(accts); err != nil {
		return Account{}, errors.Wrap(err, "saving accounts")
	}

	if acct.IsStudent() {
		if _, err := svc.ensureProfile(acct, accts); err != nil {
			return Account{}, err
		}
	}

	svc.sendWelcomeEmail(acct)
	return acct, nil
}

// Login authenticates by (email, password). The email match is
// case-insensitive, the password match exact. When creds.Role is set and
// differs from the stored role, it fails with a RoleMismatchError carrying the
// actual role. On success the session is set to the account and persisted; a
// student account missing its profile gets one seeded first.
func (svc *service) Login(creds Credentials) (Account, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	accts, err := svc.store.LoadAccounts()
	if err != nil {
		return Account{}, errors.Wrap(err, "loading accounts")
	}

	var acct *Account
	for i := range accts {
		if accts[i].EmailMatches(creds.Email) && accts[i].Password == creds.Password {
			acct = &accts[i]
			break
		}
	}
	if acct == nil {
		return Account{}, ErrInvalidCredentials
	}
	if creds.Role != "" && creds.Role != acct.Role {
		return Account{}, &RoleMismatchError{Role: acct.Role}
	}

	if acct.IsStudent() {
		if _, err := svc.ensureProfile(*acct, accts); err != nil {
			return Account{}, err
		}
	}

	if err := svc.store.SaveCurrent(acct); err != nil {
		return Account{}, errors.Wrap(err, "saving session")
	}
	return *acct, nil
}

// Logout clears the session. It is idempotent and always succeeds short of a
// storage failure.
func (svc *service) Logout() error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	return errors.Wrap(svc.store.SaveCurrent(nil), "clearing session")
}

// Current returns the session account, or nil when anonymous.
func (svc *service) Current() (*Account, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	acct, err := svc.store.LoadCurrent()
	return acct, errors.Wrap(err, "loading session")
}

func (svc *service) GetByID(id string) (Account, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	accts, err := svc.store.LoadAccounts()
	if err != nil {
		return Account{}, errors.Wrap(err, "loading accounts")
	}
	for _, a := range accts {
		if a.ID == id {
			return a, nil
		}
	}
	return Account{}, ErrNotFound
}

func (svc *service) QueryAll() ([]Account, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	accts, err := svc.store.LoadAccounts()
	return accts, errors.Wrap(err, "loading accounts")
}

// QueryByRole returns all accounts with the given role, in registration order.
func (svc *service) QueryByRole(role string) ([]Account, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	return svc.queryByRole(role)
}

func (svc *service) queryByRole(role string) ([]Account, error) {
	accts, err := svc.store.LoadAccounts()
	if err != nil {
		return nil, errors.Wrap(err, "loading accounts")
	}
	var matched []Account
	for _, a := range accts {
		if a.Role == role {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// GetStudentProfile returns the profile for the given account id, creating and
// persisting a freshly seeded one when the account exists, is a student and
// has none yet. It returns (nil, nil) for unknown or non-student ids.
func (svc *service) GetStudentProfile(id string) (*StudentProfile, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	profiles, err := svc.store.LoadProfiles()
	if err != nil {
		return nil, errors.Wrap(err, "loading profiles")
	}
	if p, ok := profiles[id]; ok {
		return &p, nil
	}

	accts, err := svc.store.LoadAccounts()
	if err != nil {
		return nil, errors.Wrap(err, "loading accounts")
	}
	for _, a := range accts {
		if a.ID == id && a.IsStudent() {
			p, err := svc.ensureProfile(a, accts)
			if err != nil {
				return nil, err
			}
			return &p, nil
		}
	}
	return nil, nil
}

// UpdateStudentProfile replaces the stored profile wholesale. The profile
// shape is the caller's responsibility.
func (svc *service) UpdateStudentProfile(id string, profile StudentProfile) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	profiles, err := svc.store.LoadProfiles()
	if err != nil {
		return errors.Wrap(err, "loading profiles")
	}
	profiles[id] = profile
	return errors.Wrap(svc.store.SaveProfiles(profiles), "saving profiles")
}

// ensureProfile seeds and persists a profile for the student account if none
// is stored yet, and returns the stored or freshly seeded profile.
// Callers must hold svc.mu.
func (svc *service) ensureProfile(acct Account, accts []Account) (StudentProfile, error) {
	profiles, err := svc.store.LoadProfiles()
	if err != nil {
		return StudentProfile{}, errors.Wrap(err, "loading profiles")
	}
	if p, ok := profiles[acct.ID]; ok {
		return p, nil
	}

	var teachers []string
	for _, a := range accts {
		if a.IsTeacher() {
			name := a.Name
			if name == "" {
				name = "Teacher"
			}
			teachers = append(teachers, name)
		}
	}

	p := SeedProfile(acct.Email, teachers)
	profiles[acct.ID] = p
	if err := svc.store.SaveProfiles(profiles); err != nil {
		return StudentProfile{}, errors.Wrap(err, "saving profiles")
	}
	return p, nil
}

var welcomeEmailTmpl = texttmpl.Must(texttmpl.New("welcome").Parse(`Hi {{ .Data.Name }},

Welcome to Darasa! Your {{ .Data.Role }} account is ready.
Sign in at {{ .FrontendBaseURL }}/login to get started.
`))

func (svc *service) sendWelcomeEmail(acct Account) {
	if svc.mailSvc == nil {
		return
	}
	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: acct.Name, Address: acct.Email}},
		Subject:      "Welcome to Darasa",
		Template:     welcomeEmailTmpl,
		TemplateData: acct,
	}
	svc.mailSvc.SendMessages(msg)
}

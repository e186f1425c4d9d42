// Package state persists the account collections as three independent
// key/value records: "users" (the ordered account list), "currentUser" (the
// session) and "profiles" (account id -> student profile). Every mutation
// rewrites the whole record; a missing or malformed record reads as the empty
// collection.
package state

import (
	"context"

	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/account"
	"github.com/darasahq/darasa/storage/kvstore"
)

const (
	usersKey       = "users"
	currentUserKey = "currentUser"
	profilesKey    = "profiles"
)

type AccountStore struct {
	kv kvstore.Store
}

var _ account.Store = (*AccountStore)(nil)

func NewAccountStore(kv kvstore.Store) *AccountStore {
	return &AccountStore{kv: kv}
}

// recoverable reports whether the read should fall back to the empty
// collection instead of surfacing an error.
func recoverable(err error) bool {
	return errors.Is(err, kvstore.ErrKeyNotFound) || errors.Is(err, kvstore.ErrMalformed)
}

func (s *AccountStore) LoadAccounts() ([]account.Account, error) {
	var accts []account.Account
	if err := s.kv.Get(context.Background(), usersKey, &accts); err != nil {
		if recoverable(err) {
			return []account.Account{}, nil
		}
		return nil, err
	}
	return accts, nil
}

func (s *AccountStore) SaveAccounts(accts []account.Account) error {
	return s.kv.Set(context.Background(), usersKey, accts)
}

func (s *AccountStore) LoadCurrent() (*account.Account, error) {
	var acct *account.Account
	if err := s.kv.Get(context.Background(), currentUserKey, &acct); err != nil {
		if recoverable(err) {
			return nil, nil
		}
		return nil, err
	}
	return acct, nil
}

func (s *AccountStore) SaveCurrent(acct *account.Account) error {
	if acct == nil {
		return s.kv.Delete(context.Background(), currentUserKey)
	}
	return s.kv.Set(context.Background(), currentUserKey, acct)
}

func (s *AccountStore) LoadProfiles() (map[string]account.StudentProfile, error) {
	var profiles map[string]account.StudentProfile
	if err := s.kv.Get(context.Background(), profilesKey, &profiles); err != nil {
		if recoverable(err) {
			return map[string]account.StudentProfile{}, nil
		}
		return nil, err
	}
	if profiles == nil {
		profiles = map[string]account.StudentProfile{}
	}
	return profiles, nil
}

func (s *AccountStore) SaveProfiles(profiles map[string]account.StudentProfile) error {
	return s.kv.Set(context.Background(), profilesKey, profiles)
}

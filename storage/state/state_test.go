package state

import (
	"context"
	"reflect"
	"testing"

	"github.com/darasahq/darasa/core/account"
	"github.com/darasahq/darasa/storage/kvstore"
)

func TestAccountStore_accounts(t *testing.T) {
	store := NewAccountStore(kvstore.NewMemory())

	// empty store reads as the empty list
	accts, err := store.LoadAccounts()
	if err != nil {
		t.Fatalf("LoadAccounts() error = %v", err)
	}
	if len(accts) != 0 {
		t.Errorf("LoadAccounts() on empty store = %+v", accts)
	}

	want := []account.Account{
		{ID: "1", Name: "S", Email: "s@example.com", Password: "p", Role: account.RoleStudent},
		{ID: "2", Name: "T", Email: "t@example.com", Password: "p", Role: account.RoleTeacher},
	}
	if err = store.SaveAccounts(want); err != nil {
		t.Fatalf("SaveAccounts() error = %v", err)
	}
	accts, err = store.LoadAccounts()
	if err != nil {
		t.Fatalf("LoadAccounts() error = %v", err)
	}
	if !reflect.DeepEqual(accts, want) {
		t.Errorf("LoadAccounts() = %+v, want %+v", accts, want)
	}
}

func TestAccountStore_current(t *testing.T) {
	store := NewAccountStore(kvstore.NewMemory())

	acct, err := store.LoadCurrent()
	if err != nil {
		t.Fatalf("LoadCurrent() error = %v", err)
	}
	if acct != nil {
		t.Errorf("LoadCurrent() on empty store = %+v, want nil", acct)
	}

	want := &account.Account{ID: "1", Name: "S", Email: "s@example.com", Role: account.RoleStudent}
	if err = store.SaveCurrent(want); err != nil {
		t.Fatalf("SaveCurrent() error = %v", err)
	}
	acct, err = store.LoadCurrent()
	if err != nil {
		t.Fatalf("LoadCurrent() error = %v", err)
	}
	if !reflect.DeepEqual(acct, want) {
		t.Errorf("LoadCurrent() = %+v, want %+v", acct, want)
	}

	// clearing the session deletes the record
	if err = store.SaveCurrent(nil); err != nil {
		t.Fatalf("SaveCurrent(nil) error = %v", err)
	}
	acct, err = store.LoadCurrent()
	if err != nil {
		t.Fatalf("LoadCurrent() error = %v", err)
	}
	if acct != nil {
		t.Errorf("LoadCurrent() after clear = %+v, want nil", acct)
	}
}

func TestAccountStore_profiles(t *testing.T) {
	store := NewAccountStore(kvstore.NewMemory())

	profiles, err := store.LoadProfiles()
	if err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}
	if profiles == nil || len(profiles) != 0 {
		t.Errorf("LoadProfiles() on empty store = %+v, want empty map", profiles)
	}

	want := map[string]account.StudentProfile{
		"1": account.SeedProfile("s@example.com", nil),
	}
	if err = store.SaveProfiles(want); err != nil {
		t.Fatalf("SaveProfiles() error = %v", err)
	}
	profiles, err = store.LoadProfiles()
	if err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}
	if !reflect.DeepEqual(profiles, want) {
		t.Errorf("LoadProfiles() = %+v, want %+v", profiles, want)
	}
}

func TestAccountStore_malformedRecords(t *testing.T) {
	kv := kvstore.NewMemory()
	ctx := context.Background()

	// a corrupted record reads as the empty collection, never an error
	for _, key := range []string{"users", "currentUser", "profiles"} {
		if err := kv.Set(ctx, key, 42); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}
	store := NewAccountStore(kv)

	accts, err := store.LoadAccounts()
	if err != nil {
		t.Fatalf("LoadAccounts() error = %v", err)
	}
	if len(accts) != 0 {
		t.Errorf("LoadAccounts() on malformed record = %+v", accts)
	}

	acct, err := store.LoadCurrent()
	if err != nil {
		t.Fatalf("LoadCurrent() error = %v", err)
	}
	if acct != nil {
		t.Errorf("LoadCurrent() on malformed record = %+v", acct)
	}

	profiles, err := store.LoadProfiles()
	if err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}
	if profiles == nil || len(profiles) != 0 {
		t.Errorf("LoadProfiles() on malformed record = %+v", profiles)
	}
}

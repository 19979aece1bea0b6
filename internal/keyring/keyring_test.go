package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetGetDelete(t *testing.T) {
	tests := []struct {
		account Account
		secret  string
	}{
		{Database, "postgres://diary@localhost:5432/diary?sslmode=disable"},
		{Redis, "redis://:hunter2@localhost:6379/0"},
	}

	for _, tt := range tests {
		t.Run(string(tt.account), func(t *testing.T) {
			gokeyring.MockInit()

			if err := Set(tt.account, tt.secret); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
			got, err := Get(tt.account)
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			if got != tt.secret {
				t.Errorf("Get() = %q, want %q", got, tt.secret)
			}

			if err := Delete(tt.account); err != nil {
				t.Fatalf("Delete() failed: %v", err)
			}
			if _, err := Get(tt.account); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestAccountsAreIndependent(t *testing.T) {
	gokeyring.MockInit()

	if err := Set(Database, "db"); err != nil {
		t.Fatal(err)
	}
	if _, err := Get(Redis); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(Redis) error = %v, want ErrNotFound", err)
	}
}

func TestSetEmpty(t *testing.T) {
	gokeyring.MockInit()
	if err := Set(Database, ""); err == nil {
		t.Error("Set with an empty secret should fail")
	}
}

func TestDeleteMissing(t *testing.T) {
	gokeyring.MockInit()
	if err := Delete(Redis); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestLookup(t *testing.T) {
	gokeyring.MockInit()
	if got := Lookup(Redis, "fallback"); got != "fallback" {
		t.Errorf("Lookup() = %q, want fallback", got)
	}
	if err := Set(Redis, "stored"); err != nil {
		t.Fatal(err)
	}
	if got := Lookup(Redis, "fallback"); got != "stored" {
		t.Errorf("Lookup() = %q, want stored", got)
	}
}

func TestUnavailableKeyring(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("no dbus"))

	if _, err := Get(Database); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("Get() error = %v, want ErrKeyringUnavailable", err)
	}
	if IsAvailable() {
		t.Error("IsAvailable() = true with a failing keyring")
	}
	if got := Lookup(Database, "env"); got != "env" {
		t.Errorf("Lookup() = %q, want env", got)
	}
}

package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	// Use mock keyring for testing
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/testdb?sslmode=disable"

	// Test Set
	err := SetConnectionString(testConnStr)
	if err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	// Test Get
	retrieved, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}

	if retrieved != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, testConnStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	err := SetConnectionString("")
	if err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
}

func TestGetConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()

	// Ensure nothing is stored
	_ = DeleteConnectionString()

	_, err := GetConnectionString()
	if err != ErrNotFound {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/testdb"

	err := SetConnectionString(testConnStr)
	if err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	err = DeleteConnectionString()
	if err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}

	// Verify it's gone
	_, err = GetConnectionString()
	if err != ErrNotFound {
		t.Errorf("After DeleteConnectionString(), GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteConnectionString()

	err := DeleteConnectionString()
	if err != ErrNotFound {
		t.Errorf("DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestSetAndGetPassword(t *testing.T) {
	gokeyring.MockInit()

	if err := SetPassword("alice", "s3cret"); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}

	got, err := GetPassword("alice")
	if err != nil {
		t.Fatalf("GetPassword() failed: %v", err)
	}
	if got != "s3cret" {
		t.Errorf("GetPassword() = %q, want %q", got, "s3cret")
	}
}

func TestPasswordValidation(t *testing.T) {
	gokeyring.MockInit()

	if err := SetPassword("", "pw"); err == nil {
		t.Error("SetPassword with empty username should fail")
	}
	if err := SetPassword("alice", ""); err == nil {
		t.Error("SetPassword with empty password should fail")
	}
	if _, err := GetPassword(""); err == nil {
		t.Error("GetPassword with empty username should fail")
	}
}

func TestPasswordNotFound(t *testing.T) {
	gokeyring.MockInit()

	_, err := GetPassword("nobody")
	if err != ErrNotFound {
		t.Errorf("GetPassword() error = %v, want %v", err, ErrNotFound)
	}
}

func TestPasswordDoesNotCollideWithConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://localhost/db"); err != nil {
		t.Fatal(err)
	}
	if err := SetPassword("database-connection", "pw"); err != nil {
		t.Fatal(err)
	}

	connStr, err := GetConnectionString()
	if err != nil {
		t.Fatal(err)
	}
	if connStr != "postgres://localhost/db" {
		t.Errorf("connection string clobbered by password entry: %q", connStr)
	}
}

func TestDeletePassword(t *testing.T) {
	gokeyring.MockInit()

	if err := SetPassword("alice", "s3cret"); err != nil {
		t.Fatal(err)
	}
	if err := DeletePassword("alice"); err != nil {
		t.Fatalf("DeletePassword() failed: %v", err)
	}
	if _, err := GetPassword("alice"); err != ErrNotFound {
		t.Errorf("after delete, GetPassword() error = %v, want %v", err, ErrNotFound)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	available := IsAvailable()
	// In mock mode, keyring should be available
	if !available {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}

package password

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("  12345678 ")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected bcrypt hash, got %q", hash)
	}
	if hash == "12345678" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !h.Verify(hash, "12345678") {
		t.Error("trimmed password should verify")
	}
	if h.Verify(hash, "87654321") {
		t.Error("wrong password must not verify")
	}
}

func TestHasher_Empty(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	if _, err := h.Hash("   "); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
	if h.Verify("", "anything") {
		t.Error("empty hash never verifies")
	}
}

func TestNewHasher_CostFallback(t *testing.T) {
	if NewHasher(99).cost != bcrypt.DefaultCost {
		t.Error("cost above max should fall back to default")
	}
	if NewHasher(0).cost != bcrypt.DefaultCost {
		t.Error("cost below min should fall back to default")
	}
}

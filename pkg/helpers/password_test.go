package helpers

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CompareHashAndPassword(hash, "s3cret-password") {
		t.Fatal("expected matching password to verify")
	}
	if CompareHashAndPassword(hash, "wrong-password") {
		t.Fatal("expected mismatching password to fail")
	}
}

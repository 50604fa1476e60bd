package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := HashPassword("s3cret", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "s3cret" {
		t.Fatalf("digest must not equal plaintext")
	}
	if !VerifyPassword(digest, "s3cret") {
		t.Fatalf("correct password rejected")
	}
	if VerifyPassword(digest, "wrong") {
		t.Fatalf("wrong password accepted")
	}
}

func TestHashPassword_CostFallback(t *testing.T) {
	digest, err := HashPassword("pw", 0)
	if err != nil {
		t.Fatalf("hash with zero cost: %v", err)
	}
	if !VerifyPassword(digest, "pw") {
		t.Fatalf("digest from fallback cost rejected")
	}
}

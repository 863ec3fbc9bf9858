package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s0mch4i-secret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "s0mch4i-secret" {
		t.Fatalf("hash should not equal the plaintext")
	}
	if !CheckPasswordHash("s0mch4i-secret", hash) {
		t.Fatalf("correct password should verify")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatalf("wrong password should not verify")
	}
}

func TestPINHashRoundTrip(t *testing.T) {
	hash, err := HashPIN("123456")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !CheckPINHash("123456", hash) {
		t.Fatalf("correct pin should verify")
	}
	if CheckPINHash("654321", hash) {
		t.Fatalf("wrong pin should not verify")
	}
}

package passhash

import (
	"errors"
	"testing"
)

var fast = Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}

func TestHashAndVerify(t *testing.T) {
	h, err := Hash("password123")
	if err != nil {
		t.Fatal(err)
	}
	ok, err := Verify(h, "password123")
	if err != nil || !ok {
		t.Fatalf("verify failed: %v", err)
	}
	ok, err = Verify(h, "wrong")
	if err != nil || ok {
		t.Fatalf("expected mismatch")
	}
}

func TestVerifyReadsParamsFromHash(t *testing.T) {
	h, err := HashWith(fast, "pw")
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := Verify(h, "pw"); err != nil || !ok {
		t.Fatalf("verify with custom params: %v", err)
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	for _, h := range []string{"", "plain", "$bcrypt$v=19$m=1,t=1,p=1$aa$bb", "$argon2id$v=19$bad$aa$bb", "$argon2id$v=19$m=1,t=1,p=1$!!$bb"} {
		if _, err := Verify(h, "x"); !errors.Is(err, ErrInvalidHash) {
			t.Fatalf("%q: want ErrInvalidHash, got %v", h, err)
		}
	}
}

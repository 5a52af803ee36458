package encrypter_test

import (
	"testing"

	"github.com/alexedwards/argon2id"

	"todo-assistant/pkg/encrypter"
)

var fastParams = &argon2id.Params{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func TestHashAndCompare(t *testing.T) {
	enc := encrypter.New(fastParams)

	hash, err := enc.HashPassword("swink123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "swink123" {
		t.Fatal("hash must not equal the password")
	}

	ok, err := enc.ComparePassword("swink123", hash)
	if err != nil || !ok {
		t.Errorf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = enc.ComparePassword("wrong", hash)
	if err != nil || ok {
		t.Errorf("expected mismatch, got ok=%v err=%v", ok, err)
	}
}

func TestHashEmptyPassword(t *testing.T) {
	if _, err := encrypter.New(fastParams).HashPassword(""); err != encrypter.ErrEmptyPassword {
		t.Errorf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestCompareMalformedHash(t *testing.T) {
	if _, err := encrypter.New(nil).ComparePassword("x", "not-a-hash"); err == nil {
		t.Error("expected error for malformed hash")
	}
}

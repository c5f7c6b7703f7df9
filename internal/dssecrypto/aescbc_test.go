package dssecrypto

import "testing"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"a",
		"exactly16bytes!!",
		"this string is longer than a single 16-byte AES block by a fair margin",
		"1,1,0,cat",
	}

	for _, keyLen := range []int{16, 24, 32} {
		key := make([]byte, keyLen)
		for i := range key {
			key[i] = byte(i + keyLen)
		}

		for _, s := range cases {
			ct, err := Encrypt(key, s)
			if err != nil {
				t.Fatalf("Encrypt(%d-byte key, %q): %v", keyLen, s, err)
			}
			if len(ct)%16 != 0 {
				t.Fatalf("ciphertext length %d is not block aligned", len(ct))
			}
			pt, err := Decrypt(key, ct)
			if err != nil {
				t.Fatalf("Decrypt(%d-byte key, %q): %v", keyLen, s, err)
			}
			if pt != s {
				t.Fatalf("round trip mismatch: got %q, want %q", pt, s)
			}
		}
	}
}

func TestEncryptRandomizesIV(t *testing.T) {
	key := make([]byte, 16)
	a, err := Encrypt(key, "same plaintext")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encrypt(key, "same plaintext")
	if err != nil {
		t.Fatal(err)
	}
	if string(a) == string(b) {
		t.Fatal("two encryptions of the same plaintext produced identical ciphertext")
	}
}

func TestDecryptRejectsBadKeyLength(t *testing.T) {
	if _, err := Decrypt([]byte("short"), make([]byte, 32)); err == nil {
		t.Fatal("expected an error for an invalid AES key length")
	}
}

func TestDecryptRejectsUnalignedCiphertext(t *testing.T) {
	key := make([]byte, 16)
	if _, err := Decrypt(key, make([]byte, 20)); err == nil {
		t.Fatal("expected an error for a non-block-aligned ciphertext")
	}
}

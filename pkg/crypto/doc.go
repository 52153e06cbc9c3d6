// Package crypto implements the CipherMind encryption engine.
//
// Secret payloads are sealed with AES-256-GCM under keys derived from
// master material via HKDF-SHA256. Every ciphertext is a self-contained
// token embedding a key id, nonce and integrity tag:
//
//	keyring, err := crypto.NewKeyring(material)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	packed, err := keyring.Encrypt([]byte("s3cr3t"))
//	plain, err := keyring.Decrypt(packed)
//
// # Key rotation
//
// A Keyring holds multiple key versions. AddKey installs new master
// material under the next key id and makes it current; ciphertexts
// produced under earlier keys remain decryptable, so stored secrets can
// be re-encrypted lazily rather than in a stop-the-world rewrite.
package crypto

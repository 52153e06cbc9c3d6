package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"sync"
)

const (
	nonceSize    = 12
	tagSize      = aes.BlockSize
	versionMagic = byte('C')

	// KeySize is the required length of a master key in bytes (AES-256).
	KeySize = 32
)

// ErrEncryption is returned when a plaintext cannot be encrypted.
var ErrEncryption = errors.New("encryption failed")

// ErrDecryption is returned when a ciphertext fails its integrity check,
// was produced under an unknown key, or is structurally malformed.
// It must never be accompanied by partial plaintext.
var ErrDecryption = errors.New("decryption failed")

// Cipher converts between plaintexts and self-contained ciphertext tokens.
type Cipher interface {
	Encrypt(plainText []byte) ([]byte, error)
	Decrypt(packedText []byte) ([]byte, error)
}

// Keyring is a Cipher backed by one or more AES-256-GCM keys, each
// identified by a single-byte key id embedded in every ciphertext.
// New ciphertexts are produced under the current key; decryption uses
// whichever key the ciphertext names, so old ciphertexts stay readable
// after a master key rotation and can be re-encrypted lazily.
type Keyring struct {
	mu      sync.RWMutex
	current byte
	aeads   map[byte]cipher.AEAD
}

// NewKeyring derives an encryption key from the given master material
// and returns a keyring with that key installed as key id 1.
func NewKeyring(material []byte) (*Keyring, error) {
	k := &Keyring{aeads: map[byte]cipher.AEAD{}}
	if _, err := k.AddKey(material); err != nil {
		return nil, err
	}
	return k, nil
}

// AddKey derives a key from new master material, installs it under the
// next key id and makes it current. Existing keys remain available for
// decryption. Returns the assigned key id.
func (k *Keyring) AddKey(material []byte) (byte, error) {
	key, err := DeriveKey(material, infoDataEncryption)
	if err != nil {
		return 0, err
	}

	c, err := aes.NewCipher(key)
	if err != nil {
		return 0, err
	}
	aesgcm, err := cipher.NewGCM(c)
	if err != nil {
		return 0, err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	id := k.current + 1
	if _, taken := k.aeads[id]; taken {
		return 0, fmt.Errorf("key id %d already in use", id)
	}
	k.aeads[id] = aesgcm
	k.current = id
	return id, nil
}

// CurrentKeyID returns the key id new ciphertexts are produced under.
func (k *Keyring) CurrentKeyID() byte {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.current
}

// Encrypt seals plainText under the current key and returns a packed
// ciphertext embedding the key id, nonce and integrity tag.
func (k *Keyring) Encrypt(plainText []byte) ([]byte, error) {
	if len(plainText) == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", ErrEncryption)
	}

	nonce, err := RandomBytes(nonceSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}

	k.mu.RLock()
	keyID := k.current
	aead := k.aeads[keyID]
	k.mu.RUnlock()

	cipherTextWithTag := aead.Seal(nil, nonce, plainText, nil)
	return PackCipherData(keyID, cipherTextWithTag, nonce), nil
}

// Decrypt opens a packed ciphertext using the key named by its embedded
// key id. Any tamper, truncation or unknown key yields ErrDecryption.
func (k *Keyring) Decrypt(packedText []byte) ([]byte, error) {
	keyID, cipherText, nonce, err := UnpackCipherData(packedText)
	if err != nil {
		return nil, err
	}

	k.mu.RLock()
	aead, ok := k.aeads[keyID]
	k.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown key id %d", ErrDecryption, keyID)
	}

	plainText, err := aead.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: integrity check failed", ErrDecryption)
	}
	return plainText, nil
}

// PackCipherData assembles a self-contained ciphertext:
// "#{VERSION_MAGIC}#{keyID}#{tag}#{nonce}#{ctext}"
func PackCipherData(keyID byte, cipherTextWithTag []byte, nonce []byte) []byte {
	nonce = nonce[:nonceSize]

	tagStartIndex := len(cipherTextWithTag) - tagSize
	tag := cipherTextWithTag[tagStartIndex:]
	cipherText := cipherTextWithTag[:tagStartIndex]

	data := make([]byte, 2+tagSize+nonceSize+len(cipherText))

	data[0] = versionMagic
	data[1] = keyID
	index := 2

	copy(data[index:], tag)
	index += tagSize

	copy(data[index:], nonce)
	index += nonceSize

	copy(data[index:], cipherText)

	return data
}

// UnpackCipherData splits a packed ciphertext into its key id, the
// ciphertext with trailing tag, and the nonce.
func UnpackCipherData(packedText []byte) (byte, []byte, []byte, error) {
	if len(packedText) < 2+tagSize+nonceSize {
		return 0, nil, nil, fmt.Errorf("%w: ciphertext too short", ErrDecryption)
	}
	if packedText[0] != versionMagic {
		return 0, nil, nil, fmt.Errorf("%w: unrecognized ciphertext version", ErrDecryption)
	}

	keyID := packedText[1]
	index := 2

	nextIndex := index + tagSize
	tag := packedText[index:nextIndex]
	index = nextIndex

	nextIndex = index + nonceSize
	nonce := packedText[index:nextIndex]
	index = nextIndex

	cipherText := append(append([]byte{}, packedText[index:]...), tag...)

	return keyID, cipherText, nonce, nil
}

package encrypter

// Encrypter seals and opens byte payloads with AES-GCM.
type Encrypter interface {
	// Seal encrypts data and returns nonce||ciphertext.
	Seal(data []byte) ([]byte, error)
	// Open reverses Seal.
	Open(sealed []byte) ([]byte, error)
}

type implEncrypter struct {
	key []byte
}

// New creates a new Encrypter. The key must be 16, 24, or 32 bytes long.
func New(key string) (Encrypter, error) {
	if err := validateKey([]byte(key)); err != nil {
		return nil, err
	}
	return &implEncrypter{key: []byte(key)}, nil
}

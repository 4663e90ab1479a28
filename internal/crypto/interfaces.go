package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/sealer_mock.go -package=mock

// Sealer protects session values persisted on the local machine.
//
// Seal and Open are inverse operations: Open(Seal(v)) == v for every v.
// Implementations must be safe for concurrent use.
type Sealer interface {
	// Seal encrypts plaintext and returns a printable blob safe to store in
	// a text column or a Redis string.
	Seal(plaintext string) (string, error)

	// Open reverses Seal. It returns ErrOpenFailed when the blob was not
	// produced with the same secret or was tampered with.
	Open(sealed string) (string, error)
}

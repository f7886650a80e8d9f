package secrets

import "errors"

var (
	// ErrMalformedBlob indicates the sealed blob is too short to contain a nonce.
	ErrMalformedBlob = errors.New("malformed credential blob")
	// ErrDecryptFailed indicates authentication of the sealed blob failed,
	// typically from a wrong passphrase or corrupted data.
	ErrDecryptFailed = errors.New("credential decryption failed")
)

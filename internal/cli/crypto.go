package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"filippo.io/age"
	"golang.org/x/term"
)

// ageHeader is the prefix of Age-encrypted files
const ageHeader = "age-encryption.org"

var errNoPassphrase = errors.New("file is encrypted: set TAX_PASSPHRASE or run from a terminal")

func isEncrypted(data []byte) bool {
	return bytes.HasPrefix(data, []byte(ageHeader))
}

// encryptData encrypts data with a passphrase-derived Age recipient
func encryptData(data []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decryptData decrypts Age-encrypted data with a passphrase-derived identity
func decryptData(data []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, err
	}
	r, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return io.ReadAll(r)
}

// passphraseSource returns the configured passphrase, or prompts for one
// without echo when stdin is a terminal.
type passphraseSource func(prompt string) (string, error)

func newPassphraseSource(configured string, stderr io.Writer) passphraseSource {
	return func(prompt string) (string, error) {
		if configured != "" {
			return configured, nil
		}
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return "", errNoPassphrase
		}
		fmt.Fprint(stderr, prompt)
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read passphrase: %w", err)
		}
		if len(raw) == 0 {
			return "", errNoPassphrase
		}
		return string(raw), nil
	}
}

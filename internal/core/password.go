package core

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/argentum-labs/stackvault/internal/crypto"
)

// ReadPassphrase reads a passphrase from the terminal without echoing
func ReadPassphrase(prompt string) ([]byte, error) {
	fmt.Print(prompt)

	passphrase, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after passphrase

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// ReadPassphraseConfirm reads a passphrase twice and ensures they match.
// An empty passphrase is allowed: it selects the ephemeral-key path.
func ReadPassphraseConfirm() ([]byte, error) {
	passphrase1, err := ReadPassphrase("Enter passphrase (empty for none): ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(passphrase1)

	passphrase2, err := ReadPassphrase("Confirm passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(passphrase2)

	if !crypto.ConstantTimeCompare(passphrase1, passphrase2) {
		return nil, fmt.Errorf("passphrases do not match")
	}

	result := make([]byte, len(passphrase1))
	copy(result, passphrase1)
	return result, nil
}

// GetPassphraseFromEnv reads the passphrase from STACKVAULT_PASSPHRASE
func GetPassphraseFromEnv() []byte {
	passphrase := os.Getenv("STACKVAULT_PASSPHRASE")
	if passphrase == "" {
		return nil
	}
	// Return a copy to avoid issues when clearing the bytes
	result := make([]byte, len(passphrase))
	copy(result, []byte(passphrase))
	return result
}

package cmd

import (
	"fmt"
	"os"

	"github.com/argentum-labs/stackvault/internal/core"
	"github.com/argentum-labs/stackvault/internal/crypto"
)

// Passphrase sets or rotates the vault passphrase. An existing passphrase
// must be entered first; an empty new passphrase switches back to the
// ephemeral session key.
func Passphrase() {
	vault, _ := OpenVault()
	defer closeVault(vault)

	// A locked vault must be opened with the current passphrase before the
	// dataset can be re-encrypted under a new one.
	RequireUnlocked(vault)

	newPassphrase, err := core.ReadPassphraseConfirm()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(newPassphrase)

	stop := startSpinner("Re-encrypting...")
	err = vault.SetPassphrase(newPassphrase)
	stop()
	if err != nil {
		HandleError(err)
	}

	if len(newPassphrase) == 0 {
		okColor.Println("Passphrase removed; data is now protected by the session key only.")
	} else {
		okColor.Println("Passphrase set; data re-encrypted under the new key.")
	}
}

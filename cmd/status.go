package cmd

import (
	"fmt"

	"github.com/argentum-labs/stackvault/internal/core"
)

// Status shows the current state of the vault (no passphrase required)
func Status() {
	vault, _ := OpenVault()
	defer closeVault(vault)

	labelColor.Print("State:       ")
	switch vault.State() {
	case core.StateUnlocked:
		okColor.Println(vault.State())
	case core.StateLocked:
		warnColor.Println(vault.State())
	default:
		fmt.Println(vault.State())
	}

	labelColor.Print("Status:      ")
	fmt.Println(vault.Status())

	labelColor.Print("Persistence: ")
	fmt.Println(vault.Preference())

	labelColor.Print("Protection:  ")
	if vault.HasPassphrase() {
		fmt.Println("passphrase (PBKDF2-HMAC-SHA256, AES-256-GCM)")
	} else {
		fmt.Println("session key (AES-256-GCM)")
	}

	if vault.State() == core.StateUnlocked {
		labelColor.Print("Items:       ")
		fmt.Println(len(vault.Dataset()))
	}
}

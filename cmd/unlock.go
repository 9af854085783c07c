package cmd

import (
	"fmt"

	"github.com/argentum-labs/stackvault/internal/core"
)

// Unlock decrypts the stored dataset with the user's passphrase
func Unlock() {
	vault, _ := OpenVault()
	defer closeVault(vault)

	switch vault.State() {
	case core.StateNoData:
		fmt.Println("No data stored yet. Add your first item with 'stackvault add'.")
		return
	case core.StateUnlocked:
		okColor.Println("Already unlocked.")
		fmt.Println(vault.Status())
		return
	}

	RequireUnlocked(vault)

	okColor.Println("Unlocked.")
	fmt.Println(vault.Status())
}

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Persist switches the persistence preference and migrates any stored blob
// to the selected slot.
func Persist(durable bool) {
	vault, _ := OpenVault()
	defer closeVault(vault)

	if err := vault.SetPersistence(durable); err != nil {
		HandleError(err)
	}

	if durable {
		okColor.Println("Persistence set to durable; your encrypted stack now survives restarts.")
	} else {
		okColor.Println("Persistence set to volatile; your stack is gone when the session ends.")
	}
}

// EndSession clears session-scoped state: the volatile blob slot and the
// ephemeral session key. Durable, passphrase-protected data is untouched.
func EndSession() {
	vault, _ := OpenVault()
	defer closeVault(vault)

	if err := vault.EndSession(); err != nil {
		HandleError(err)
	}

	okColor.Println("Session ended.")
}

// Clear removes all stored data after confirmation
func Clear(force bool) {
	vault, _ := OpenVault()
	defer closeVault(vault)

	if !force {
		fmt.Print("This permanently deletes your encrypted stack. Continue? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted")
			return
		}
	}

	if err := vault.Clear(); err != nil {
		HandleError(err)
	}

	okColor.Println("All stored data removed.")
}

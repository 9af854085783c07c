package cmd

import (
	"fmt"
	"os"

	"github.com/argentum-labs/stackvault/internal/inventory"
)

// Import replaces the inventory with the contents of a CSV file
func Import(path string) {
	vault, _ := OpenVault()
	defer closeVault(vault)

	RequireUnlocked(vault)

	f, err := os.Open(path)
	if err != nil {
		HandleError(err)
	}
	defer f.Close()

	dataset, warnings, err := inventory.ImportCSV(f)
	if err != nil {
		HandleError(err)
	}
	for _, w := range warnings {
		warnColor.Printf("warning: %s\n", w)
	}

	if err := vault.ReplaceDataset(dataset); err != nil {
		HandleError(err)
	}
	if err := vault.Flush(); err != nil {
		HandleError(err)
	}

	okColor.Printf("imported: %d items from %s\n", len(dataset), path)
}

// Export writes the inventory to a CSV file
func Export(path string) {
	vault, _ := OpenVault()
	defer closeVault(vault)

	RequireUnlocked(vault)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		HandleError(err)
	}
	defer f.Close()

	dataset := vault.Dataset()
	if err := inventory.ExportCSV(f, dataset); err != nil {
		HandleError(err)
	}

	okColor.Printf("exported: %d items to %s\n", len(dataset), path)
}

// Diff compares the stored inventory with a local CSV file
func Diff(path string) {
	vault, _ := OpenVault()
	defer closeVault(vault)

	RequireUnlocked(vault)

	localCSV, err := os.ReadFile(path)
	if err != nil {
		HandleError(err)
	}

	vaultCSV, err := inventory.ExportCSVBytes(vault.Dataset())
	if err != nil {
		HandleError(err)
	}

	diff := inventory.UnifiedDiff(path, vaultCSV, localCSV)
	if diff == "" {
		fmt.Println("No changes detected")
		return
	}
	fmt.Print(diff)
}

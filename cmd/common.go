package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/argentum-labs/stackvault/internal/config"
	"github.com/argentum-labs/stackvault/internal/core"
	"github.com/argentum-labs/stackvault/internal/crypto"
	"github.com/argentum-labs/stackvault/internal/logger"
)

// OpenVault loads configuration and opens the vault, exiting on failure.
// The caller must Close the returned vault.
func OpenVault() (*core.Vault, *config.Config) {
	cfg, err := config.Load()
	if err != nil {
		HandleError(err)
	}

	if err := os.MkdirAll(cfg.StorageDir, 0700); err != nil {
		HandleError(fmt.Errorf("failed to create storage dir: %w", err))
	}

	vault, err := core.Open(core.Options{
		Path:          filepath.Join(cfg.StorageDir, "stackvault.db"),
		SessionID:     cfg.SessionID,
		KDFIterations: cfg.KDFIterations,
		UndoWindow:    cfg.UndoWindow,
		Log:           logger.New("cli"),
	})
	if err != nil {
		HandleError(err)
	}
	return vault, cfg
}

// GetPassphrase retrieves the passphrase from the environment or prompts.
// The caller is responsible for calling crypto.ClearBytes on the result.
func GetPassphrase(prompt string) []byte {
	if passphrase := core.GetPassphraseFromEnv(); passphrase != nil {
		return passphrase
	}
	passphrase, err := core.ReadPassphrase(prompt)
	if err != nil {
		HandleError(err)
	}
	return passphrase
}

// RequireUnlocked ensures the vault is unlocked, prompting for the
// passphrase when one is required. Exits when the vault cannot be unlocked.
func RequireUnlocked(vault *core.Vault) {
	if vault.State() != core.StateLocked {
		return
	}
	if !vault.HasPassphrase() {
		HandleError(core.ErrKeyUnavailable)
	}

	passphrase := GetPassphrase("Enter passphrase: ")
	defer crypto.ClearBytes(passphrase)

	stop := startSpinner("Unlocking...")
	err := vault.Unlock(passphrase)
	stop()
	if err != nil {
		HandleError(err)
	}
}

// startSpinner shows progress feedback for slow operations (key derivation,
// network fetches). Returns a stop function.
func startSpinner(msg string) func() {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}

// HandleError handles common errors consistently
func HandleError(err error) {
	switch {
	case errors.Is(err, core.ErrWrongPassphrase):
		fmt.Fprintf(os.Stderr, "Error: wrong passphrase\n")
	case errors.Is(err, core.ErrLocked):
		fmt.Fprintf(os.Stderr, "Error: vault is locked\n")
		fmt.Fprintf(os.Stderr, "Run 'stackvault unlock' first\n")
	case errors.Is(err, core.ErrKeyUnavailable):
		fmt.Fprintf(os.Stderr, "Error: the session key protecting your data is gone\n")
		fmt.Fprintf(os.Stderr, "The stored data cannot be recovered without it.\n")
		fmt.Fprintf(os.Stderr, "Run 'stackvault clear' to discard it and start fresh.\n")
	case errors.Is(err, core.ErrNoUndo):
		fmt.Fprintf(os.Stderr, "Error: nothing to undo (the recovery window may have expired)\n")
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}

// closeVault flushes and closes, reporting any deferred save failure.
func closeVault(vault *core.Vault) {
	if err := vault.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var (
	labelColor = color.New(color.FgCyan)
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
)

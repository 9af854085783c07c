package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/argentum-labs/stackvault/cmd"
	"github.com/argentum-labs/stackvault/internal/inventory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "status":
		runStatus(os.Args[2:])
	case "unlock":
		runUnlock(os.Args[2:])
	case "passphrase":
		runPassphrase(os.Args[2:])
	case "add":
		runAdd(os.Args[2:])
	case "rm":
		runRm(os.Args[2:])
	case "undo":
		runUndo(os.Args[2:])
	case "ls":
		runLs(ctx, os.Args[2:])
	case "persist":
		runPersist(os.Args[2:])
	case "import":
		runImport(os.Args[2:])
	case "export":
		runExport(os.Args[2:])
	case "diff":
		runDiff(os.Args[2:])
	case "spot":
		runSpot(ctx, os.Args[2:])
	case "end-session":
		runEndSession(os.Args[2:])
	case "clear":
		runClear(os.Args[2:])
	case "completion":
		runCompletion(os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Status()
}

func runUnlock(args []string) {
	fs := flag.NewFlagSet("unlock", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Unlock()
}

func runPassphrase(args []string) {
	fs := flag.NewFlagSet("passphrase", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Passphrase()
}

func runAdd(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	desc := fs.String("desc", "", "Item description")
	weight := fs.String("weight", "", "Weight in troy ounces")
	date := fs.String("date", "", "Date acquired (YYYY-MM-DD, optional)")
	price := fs.String("price", "", "Price paid in dollars (optional)")
	modifier := fs.String("modifier", "", "Premium or fee applied to melt value (optional)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if *desc == "" {
		fmt.Fprintln(os.Stderr, "Error: -desc is required")
		os.Exit(1)
	}

	cmd.Add(inventory.Item{
		Description:  *desc,
		WeightOzt:    *weight,
		DateAcquired: *date,
		PricePaid:    *price,
		Modifier:     *modifier,
	})
}

func runRm(args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: stackvault rm <index>")
		os.Exit(1)
	}
	index, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid index %q\n", fs.Arg(0))
		os.Exit(1)
	}

	cmd.Remove(index)
}

func runUndo(args []string) {
	fs := flag.NewFlagSet("undo", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Undo()
}

func runLs(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.List(ctx)
}

func runPersist(args []string) {
	fs := flag.NewFlagSet("persist", flag.ExitOnError)
	durable := fs.Bool("durable", false, "Keep encrypted data across restarts")
	volatile := fs.Bool("volatile", false, "Discard data when the session ends")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if *durable == *volatile {
		fmt.Fprintln(os.Stderr, "Usage: stackvault persist --durable | --volatile")
		os.Exit(1)
	}

	cmd.Persist(*durable)
}

func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: stackvault import <file.csv>")
		os.Exit(1)
	}

	cmd.Import(fs.Arg(0))
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: stackvault export <file.csv>")
		os.Exit(1)
	}

	cmd.Export(fs.Arg(0))
}

func runDiff(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: stackvault diff <file.csv>")
		os.Exit(1)
	}

	cmd.Diff(fs.Arg(0))
}

func runSpot(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("spot", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Spot(ctx)
}

func runEndSession(args []string) {
	fs := flag.NewFlagSet("end-session", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.EndSession()
}

func runClear(args []string) {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	force := fs.Bool("force", false, "Delete without confirmation")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Clear(*force)
}

func runCompletion(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: stackvault completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("stackvault - Privately track your silver stack")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  stackvault <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  status       Show vault state and protection details")
	fmt.Println("  unlock       Decrypt the stored inventory")
	fmt.Println("  passphrase   Set, rotate, or remove the passphrase")
	fmt.Println("  add          Add one inventory item")
	fmt.Println("  rm           Remove an item by position")
	fmt.Println("  undo         Restore the most recently removed item")
	fmt.Println("  ls           List items with melt values and analytics")
	fmt.Println("  persist      Choose volatile or durable storage")
	fmt.Println("  import       Replace the inventory from a CSV file")
	fmt.Println("  export       Write the inventory to a CSV file")
	fmt.Println("  diff         Compare the inventory with a CSV file")
	fmt.Println("  spot         Show the silver spot price")
	fmt.Println("  end-session  Clear session-scoped storage and keys")
	fmt.Println("  clear        Delete all stored data")
	fmt.Println("  completion   Generate shell completions")
	fmt.Println("  help         Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  stackvault add -desc \"Generic Round 1oz\" -weight 1.0 -price 25.00")
	fmt.Println("  stackvault ls                     # List items and stack analytics")
	fmt.Println("  stackvault passphrase             # Protect data with a passphrase")
	fmt.Println("  stackvault persist --durable      # Keep data across restarts")
	fmt.Println()
	fmt.Println("Use 'stackvault help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "status":
		fmt.Println("stackvault status")
		fmt.Println()
		fmt.Println("Shows the lock state (no data, locked, unlocked), the active")
		fmt.Println("persistence preference, and how the data is protected.")
		fmt.Println("Does not require a passphrase.")
	case "unlock":
		fmt.Println("stackvault unlock")
		fmt.Println()
		fmt.Println("Decrypts the stored inventory. Prompts for the passphrase when")
		fmt.Println("the data is passphrase-protected; otherwise the session key is")
		fmt.Println("used automatically. Set STACKVAULT_PASSPHRASE to skip the prompt.")
	case "passphrase":
		fmt.Println("stackvault passphrase")
		fmt.Println()
		fmt.Println("Sets or rotates the passphrase protecting your inventory. The")
		fmt.Println("dataset is immediately re-encrypted under the new key with a")
		fmt.Println("fresh salt. An empty passphrase switches back to the machine-")
		fmt.Println("generated session key.")
	case "add":
		fmt.Println("stackvault add -desc <text> [-weight <ozt>] [-date <YYYY-MM-DD>] [-price <$>] [-modifier <$>]")
		fmt.Println()
		fmt.Println("Adds one item to the inventory and persists it. On a brand-new")
		fmt.Println("vault a session key is provisioned automatically.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  stackvault add -desc \"Generic Round 1oz\" -weight 1.0 -price 25.00")
	case "rm":
		fmt.Println("stackvault rm <index>")
		fmt.Println()
		fmt.Println("Removes the item at the given position (shown by 'stackvault ls').")
		fmt.Println("Run 'stackvault undo' within the recovery window to restore it.")
	case "undo":
		fmt.Println("stackvault undo")
		fmt.Println()
		fmt.Println("Restores the most recently removed item to its original position.")
		fmt.Println("Only one removal is recoverable at a time, and only until the")
		fmt.Println("recovery window (default 8s) expires.")
	case "ls":
		fmt.Println("stackvault ls")
		fmt.Println()
		fmt.Println("Lists all items with their melt value at the current spot price,")
		fmt.Println("plus stack totals, profit/loss, and some fun statistics.")
		fmt.Println("Set METALS_API_KEY for live spot prices.")
	case "persist":
		fmt.Println("stackvault persist --durable | --volatile")
		fmt.Println()
		fmt.Println("Chooses where the encrypted data lives. Volatile (the default)")
		fmt.Println("is cleared when the session ends; durable survives restarts.")
		fmt.Println("Any existing data is migrated; the two never hold copies at once.")
	case "import":
		fmt.Println("stackvault import <file.csv>")
		fmt.Println()
		fmt.Println("Replaces the inventory with the contents of a CSV file. Expected")
		fmt.Println("columns: Description, Weight (troy oz), Date Acquired,")
		fmt.Println("Price Paid ($), Modifier ($). The legacy 'Weight (ozt)' header")
		fmt.Println("is accepted.")
	case "export":
		fmt.Println("stackvault export <file.csv>")
		fmt.Println()
		fmt.Println("Writes the decrypted inventory to a CSV file.")
	case "diff":
		fmt.Println("stackvault diff <file.csv>")
		fmt.Println()
		fmt.Println("Shows a unified diff between the stored inventory and a CSV file.")
	case "spot":
		fmt.Println("stackvault spot")
		fmt.Println()
		fmt.Println("Prints the current XAG/USD spot price from goldapi.io. Falls back")
		fmt.Println("to a fixed price when METALS_API_KEY is unset or the fetch fails.")
	case "end-session":
		fmt.Println("stackvault end-session")
		fmt.Println()
		fmt.Println("Clears session-scoped state: the volatile storage slot and the")
		fmt.Println("ephemeral session key. Durable passphrase-protected data is kept.")
	case "clear":
		fmt.Println("stackvault clear [--force]")
		fmt.Println()
		fmt.Println("Permanently deletes the encrypted inventory from both storage")
		fmt.Println("slots and forgets the session key. Asks for confirmation unless")
		fmt.Println("--force is given.")
	case "completion":
		fmt.Println("stackvault completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs a shell completion script for the specified shell.")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}

package cmd

import (
	"context"
	"fmt"

	"github.com/argentum-labs/stackvault/internal/inventory"
	"github.com/argentum-labs/stackvault/internal/spot"
)

// Add appends one item to the inventory and persists it
func Add(item inventory.Item) {
	vault, _ := OpenVault()
	defer closeVault(vault)

	RequireUnlocked(vault)

	if err := vault.AddItem(item); err != nil {
		HandleError(err)
	}
	if err := vault.Flush(); err != nil {
		HandleError(err)
	}

	okColor.Printf("added: %s\n", item.Description)
}

// Remove deletes the item at the given position (as shown by ls)
func Remove(index int) {
	vault, cfg := OpenVault()
	defer closeVault(vault)

	RequireUnlocked(vault)

	removed, err := vault.RemoveItem(index)
	if err != nil {
		HandleError(err)
	}
	if err := vault.Flush(); err != nil {
		HandleError(err)
	}

	fmt.Printf("removed: %s\n", removed.Description)
	fmt.Printf("Run 'stackvault undo' within %s to restore it.\n", cfg.UndoWindow)
}

// Undo restores the most recently removed item
func Undo() {
	vault, _ := OpenVault()
	defer closeVault(vault)

	RequireUnlocked(vault)

	item, err := vault.Undo()
	if err != nil {
		HandleError(err)
	}
	if err := vault.Flush(); err != nil {
		HandleError(err)
	}

	okColor.Printf("restored: %s\n", item.Description)
}

// List prints the inventory with melt values and stack analytics
func List(ctx context.Context) {
	vault, cfg := OpenVault()
	defer closeVault(vault)

	RequireUnlocked(vault)

	dataset := vault.Dataset()
	if len(dataset) == 0 {
		fmt.Println("Your stack is empty. Add your first item with 'stackvault add'.")
		return
	}

	stop := startSpinner("Fetching spot price...")
	price := spot.New(spot.Config{
		APIKey:   cfg.MetalsAPIKey,
		CacheTTL: cfg.SpotCacheTTL,
	}).Price(ctx)
	stop()

	fmt.Printf("%-3s %-30s %12s %-12s %12s %10s %12s\n",
		"#", "Description", "Weight (ozt)", "Acquired", "Paid ($)", "Mod ($)", "Melt ($)")
	for i, item := range dataset {
		fmt.Printf("%-3d %-30s %12.2f %-12s %12.2f %10.2f %12.2f\n",
			i,
			item.Description,
			inventory.Amount(item.WeightOzt),
			item.DateAcquired,
			inventory.Amount(item.PricePaid),
			inventory.Amount(item.Modifier),
			inventory.MeltValue(item, price),
		)
	}

	s := inventory.Summarize(dataset, price)
	fmt.Println()
	labelColor.Print("Spot price:   ")
	fmt.Printf("$%.2f\n", s.SpotPrice)
	labelColor.Print("Total weight: ")
	fmt.Printf("%.2f troy oz\n", s.TotalWeightOzt)
	labelColor.Print("Melt value:   ")
	fmt.Printf("$%.2f\n", s.TotalMeltValue)
	labelColor.Print("Profit/loss:  ")
	fmt.Printf("$%.2f\n", s.ProfitLoss)

	facts := inventory.Facts(s.TotalWeightOzt)
	fmt.Println()
	fmt.Printf("Drawn to 0.5mm wire your stack would run %.1f miles.\n", facts.WireMiles)
	fmt.Printf("It occupies about %.1f cm3 and weighs as much as %.1f soda cans.\n",
		facts.VolumeCm3, facts.SodaCans)
}

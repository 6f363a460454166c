package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/pflow/internal/cli"
	"github.com/theirongolddev/pflow/internal/model"
	"github.com/theirongolddev/pflow/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagBudgetConcept     string
	flagBudgetType        string
	flagBudgetAmount      string
	flagBudgetResponsible string
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Budget ledger with income, expense, and balance",
	RunE:  runBudget,
}

var budgetAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a ledger line and print the ledger",
	Args:  cobra.NoArgs,
	RunE:  runBudgetAdd,
}

var budgetRmCmd = &cobra.Command{
	Use:     "rm <item>",
	Aliases: []string{"remove"},
	Short:   "Remove a ledger line by ID or concept",
	Args:    cobra.ExactArgs(1),
	RunE:    runBudgetRm,
}

func init() {
	budgetAddCmd.Flags().StringVar(&flagBudgetConcept, "concept", "", "What the line is for")
	budgetAddCmd.Flags().StringVar(&flagBudgetType, "type", "expense", "income or expense")
	budgetAddCmd.Flags().StringVar(&flagBudgetAmount, "amount", "", "Amount, e.g. 1250.50")
	budgetAddCmd.Flags().StringVar(&flagBudgetResponsible, "responsible", "", "Person responsible")

	budgetCmd.AddCommand(budgetAddCmd)
	budgetCmd.AddCommand(budgetRmCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	s, err := loadSession(true)
	if err != nil {
		return err
	}
	printLedger(s)
	return nil
}

func runBudgetAdd(_ *cobra.Command, _ []string) error {
	s, err := loadSession(true)
	if err != nil {
		return err
	}
	item, err := s.ws.AddBudgetItem(pipeline.NewItem{
		Concept:     flagBudgetConcept,
		Type:        flagBudgetType,
		Amount:      strings.TrimPrefix(strings.TrimSpace(flagBudgetAmount), "$"),
		Responsible: flagBudgetResponsible,
	})
	if err != nil {
		return err
	}
	fmt.Printf("\n  Added %s %q (%s)\n", strings.ToLower(item.Type.Label()), item.Concept, item.Amount)
	printLedger(s)
	return nil
}

func runBudgetRm(_ *cobra.Command, args []string) error {
	s, err := loadSession(true)
	if err != nil {
		return err
	}
	item, ok := findBudgetItem(s.ws.Budget(), args[0])
	if !ok {
		return fmt.Errorf("budget item %q not found", args[0])
	}
	s.ws.RemoveBudgetItem(item.ID)
	fmt.Printf("\n  Removed %q\n", item.Concept)
	printLedger(s)
	return nil
}

func findBudgetItem(items []model.BudgetItem, ref string) (model.BudgetItem, bool) {
	for _, it := range items {
		if it.ID == ref {
			return it, true
		}
	}
	for _, it := range items {
		if strings.EqualFold(it.Concept, ref) {
			return it, true
		}
	}
	return model.BudgetItem{}, false
}

func printLedger(s *session) {
	items := s.ws.Budget()
	if len(items) == 0 {
		fmt.Println("\n  The ledger is empty.")
		return
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET"))
	fmt.Println()

	rows := make([][]string, 0, len(items)+4)
	for _, it := range items {
		rows = append(rows, []string{
			cli.Truncate(it.Concept, 28),
			cli.RenderEntryType(it.Type),
			cli.FormatSignedMoney(it),
			cli.Truncate(it.Responsible, 18),
			cli.Truncate(it.ID, 8),
		})
	}

	totals := s.ws.Totals()
	rows = append(rows,
		[]string{"---"},
		[]string{"Income", "", cli.FormatMoney(totals.Income), "", ""},
		[]string{"Expense", "", cli.FormatMoney(totals.Expense), "", ""},
		[]string{"Balance", "", cli.RenderBalance(totals.Balance), "", ""},
	)

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Concept", "Type", "Amount", "Responsible", "ID"},
		Rows:    rows,
		Right:   []bool{false, false, true},
	}))
}

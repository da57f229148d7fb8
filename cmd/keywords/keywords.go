// Package keywords shows and extends the category keyword file
package keywords

import (
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/sheet-ledger/cmd/root"
	"fjacquet/sheet-ledger/internal/models"

	"github.com/spf13/cobra"
)

var (
	incomeFlag  []string
	expenseFlag []string
)

// Cmd represents the keywords command
var Cmd = &cobra.Command{
	Use:   "keywords",
	Short: "Show or add category keywords",
	Long: `Print the income and expense category keywords in effect. With --income
or --expense the given keywords are added and the keyword file is written
back.`,
	Run: keywordsFunc,
}

func init() {
	Cmd.Flags().StringSliceVar(&incomeFlag, "income", nil, "Income category keywords to add")
	Cmd.Flags().StringSliceVar(&expenseFlag, "expense", nil, "Expense category keywords to add")
}

func keywordsFunc(cmd *cobra.Command, args []string) {
	c, err := root.NewContainer()
	if err != nil {
		root.Log.Fatalf("Error initializing: %v", err)
	}
	if err := Run(c.GetKeywordStore(), incomeFlag, expenseFlag, os.Stdout); err != nil {
		root.Log.Fatalf("Error updating keywords: %v", err)
	}
}

// Store loads and saves the keyword lists.
type Store interface {
	LoadKeywords() (models.Keywords, error)
	SaveKeywords(k models.Keywords) error
}

// Run prints the effective keywords to w. When income or expense is not
// empty the keywords are appended and saved first.
func Run(store Store, income, expense []string, w io.Writer) error {
	k, err := store.LoadKeywords()
	if err != nil {
		return err
	}

	if len(income) > 0 || len(expense) > 0 {
		k.Income = append(k.Income, income...)
		k.Expense = append(k.Expense, expense...)
		if err := store.SaveKeywords(k); err != nil {
			return err
		}
		// Reload so the output shows what was written.
		if k, err = store.LoadKeywords(); err != nil {
			return err
		}
		fmt.Fprintln(w, "Keywords saved.")
	}

	fmt.Fprintf(w, "Income:  %s\n", strings.Join(k.Income, ", "))
	fmt.Fprintf(w, "Expense: %s\n", strings.Join(k.Expense, ", "))
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cafeassist/backend/internal/domain"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var recommendJSON bool

var recommendCmd = &cobra.Command{
	Use:   "recommend [message]",
	Short: "Recommend products for a free-text request",
	Long: `Run the recommender once against the configured catalog.

Examples:
  cafe recommend "I'm vegan and allergic to nuts"
  cafe recommend "şekersiz bir çay" --json`,
	Args: cobra.ArbitraryArgs,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "print the response as JSON")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	request := &domain.AssistantRequest{Message: strings.Join(args, " ")}
	response, err := a.assistant.Recommend(cmd.Context(), request)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if recommendJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}

	printIntent(out, response.Intent)
	printProducts(out, response.Recommendations)
	return nil
}

func printIntent(out io.Writer, intent domain.IntentRecord) {
	categories := make([]string, 0, intent.Categories.Len())
	for _, c := range intent.Categories.Sorted() {
		categories = append(categories, string(c))
	}

	fmt.Fprintf(out, "Categories: %s\n", strings.Join(categories, ", "))
	if intent.ExcludeLabels.Len() > 0 {
		fmt.Fprintf(out, "Excluding:  %s\n", strings.Join(intent.ExcludeLabels.Sorted(), ", "))
	}

	var flags []string
	if intent.Vegan {
		flags = append(flags, "vegan")
	}
	if intent.LowCalorie {
		flags = append(flags, "low calorie")
	}
	if intent.SugarFree {
		flags = append(flags, "sugar free")
	}
	if len(flags) > 0 {
		fmt.Fprintf(out, "Dietary:    %s\n", strings.Join(flags, ", "))
	}
	fmt.Fprintln(out)
}

func printProducts(out io.Writer, products []domain.Product) {
	if len(products) == 0 {
		fmt.Fprintln(out, "No matching products.")
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"ID", "Name", "Category", "Price", "Labels"})
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	for _, p := range products {
		table.Append([]string{
			fmt.Sprintf("%d", p.ID),
			p.Name,
			p.Category,
			fmt.Sprintf("%.2f", p.Price),
			strings.Join(p.Labels, ", "),
		})
	}

	table.Render()
}

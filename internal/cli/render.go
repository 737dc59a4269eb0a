package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"catalog-console/internal/domain"
)

const adminActions = "update, delete"

func renderProducts(w io.Writer, products []domain.Product, categories []domain.Category, admin bool) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(w, "No products found.")
		return err
	}

	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.CategoryID] = c.Name
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := "ID\tNAME\tPRICE\tCATEGORY\tTHUMBNAIL"
	if admin {
		header += "\tACTIONS"
	}
	fmt.Fprintln(tw, header)

	for _, p := range products {
		category, ok := names[p.CategoryID]
		if !ok {
			category = strconv.FormatInt(p.CategoryID, 10)
		}

		row := fmt.Sprintf("%d\t%s\t%.2f\t%s\t%s", p.ProductID, p.Name, p.Price, category, p.ThumbnailURL)
		if admin {
			row += "\t" + adminActions
		}
		fmt.Fprintln(tw, row)
	}

	return tw.Flush()
}

func renderCategories(w io.Writer, categories []domain.Category) error {
	if len(categories) == 0 {
		_, err := fmt.Fprintln(w, "No categories.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY")
	for _, c := range categories {
		fmt.Fprintf(tw, "%d\t%s\n", c.CategoryID, c.Name)
	}

	return tw.Flush()
}

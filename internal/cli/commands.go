package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"catalog-console/internal/domain"
	"catalog-console/internal/service"
	"catalog-console/internal/view"

	"github.com/spf13/cobra"
)

var (
	errNotAdmin       = errors.New("deleting products requires the Admin role")
	errProductMissing = errors.New("product is not in the current list")
)

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all categories and products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loadErr := a.initialize(cmd.Context())
			if err := a.printCategories(); err != nil {
				return err
			}
			if err := a.printProducts(); err != nil {
				return err
			}
			return loadErr
		},
	}
}

func newSearchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search products by name or description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initialize(cmd.Context()); err != nil {
				return err
			}
			return a.search(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func newCategoryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "category [id]",
		Short: "Show the products of one category, or all products without an id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initialize(cmd.Context()); err != nil {
				return err
			}
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return a.filter(cmd.Context(), id)
		},
	}
}

func newViewCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view <product-id>",
		Short: "Open a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initialize(cmd.Context()); err != nil {
				return err
			}
			return a.view(args[0])
		},
	}
}

func newUpdateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <product-id>",
		Short: "Edit a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initialize(cmd.Context()); err != nil {
				return err
			}
			return a.update(args[0])
		},
	}
}

func newDeleteCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product (Admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initialize(cmd.Context()); err != nil {
				return err
			}
			return a.remove(cmd.Context(), args[0], yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func newTokenCommand(a *app) *cobra.Command {
	var (
		role   string
		userID string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development bearer token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := service.NewTokenService(a.cfg.JWT.Secret)
			token, err := tokens.IssueToken(&domain.User{UserID: userID, RoleName: role}, a.cfg.JWT.AccessTTL())
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}
			_, err = fmt.Fprintln(a.out, token)
			return err
		},
	}
	cmd.Flags().StringVar(&role, "role", domain.RoleAdmin, "role claim of the token")
	cmd.Flags().StringVar(&userID, "user", "", "user id claim of the token")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

// initialize loads the screen the way it first appears
func (a *app) initialize(ctx context.Context) error {
	if _, err := a.catalog.Initialize(ctx).Await(ctx); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	return nil
}

func (a *app) showAll(ctx context.Context) error {
	a.catalog.SetSearchTerm("")
	a.catalog.SetSelectedCategoryID("")
	if _, err := a.catalog.LoadAllProducts(ctx).Await(ctx); err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	return a.printProducts()
}

func (a *app) search(ctx context.Context, term string) error {
	a.catalog.SetSearchTerm(term)
	_, searchErr := a.catalog.SearchProducts(ctx).Await(ctx)
	if err := a.printProducts(); err != nil {
		return err
	}
	if searchErr != nil {
		return fmt.Errorf("search failed: %w", searchErr)
	}
	return nil
}

func (a *app) filter(ctx context.Context, categoryID string) error {
	a.catalog.SetSelectedCategoryID(categoryID)
	_, filterErr := a.catalog.FilterByCategory(ctx).Await(ctx)
	if err := a.printProducts(); err != nil {
		return err
	}
	if filterErr != nil {
		return fmt.Errorf("category filter failed: %w", filterErr)
	}
	return nil
}

func (a *app) view(raw string) error {
	product, err := a.findProduct(raw)
	if err != nil {
		return err
	}
	a.catalog.ViewProduct(product)
	return nil
}

func (a *app) update(raw string) error {
	product, err := a.findProduct(raw)
	if err != nil {
		return err
	}
	a.catalog.UpdateProduct(product)
	return nil
}

func (a *app) remove(ctx context.Context, raw string, assumeYes bool) error {
	if !a.catalog.IsAdmin() {
		return errNotAdmin
	}

	product, err := a.findProduct(raw)
	if err != nil {
		return err
	}

	var confirmer view.Confirmer = promptConfirmer{in: a.in, out: a.out}
	if assumeYes {
		confirmer = view.ConfirmFunc(func(context.Context, view.Prompt) bool { return true })
	}

	deleted, err := a.catalog.DeleteProduct(ctx, product, confirmer).Await(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", product.Name, err)
	}
	if !deleted {
		_, err = fmt.Fprintln(a.out, "Delete cancelled.")
		return err
	}

	fmt.Fprintf(a.out, "Deleted %s.\n", product.Name)
	return a.printProducts()
}

// findProduct looks raw up among the products currently listed
func (a *app) findProduct(raw string) (domain.Product, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid product id %q", raw)
	}

	for _, p := range a.catalog.Products() {
		if p.ProductID == id {
			return p, nil
		}
	}

	return domain.Product{}, fmt.Errorf("%w: %d", errProductMissing, id)
}

func (a *app) printProducts() error {
	state := a.catalog.Snapshot()
	return renderProducts(a.out, state.Products, state.Categories, state.IsAdmin)
}

func (a *app) printCategories() error {
	return renderCategories(a.out, a.catalog.Categories())
}

package view

import (
	"context"
	"fmt"

	"catalog-console/internal/domain"
	"catalog-console/internal/task"

	"go.uber.org/zap"
)

// Prompt is a yes/no question put to the user before a destructive action
type Prompt struct {
	Message string
	Product domain.Product
}

// Confirmer answers a Prompt. Implementations may block on user input.
type Confirmer interface {
	Confirm(ctx context.Context, prompt Prompt) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt Prompt) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt Prompt) bool { return f(ctx, prompt) }

// RequestDeleteConfirmation builds the question asked before deleting product
func (p *ProductList) RequestDeleteConfirmation(product domain.Product) Prompt {
	return Prompt{
		Message: fmt.Sprintf("Are you sure you want to delete %s?", product.Name),
		Product: product,
	}
}

// ConfirmDelete deletes product on the server and, once that succeeds, drops
// it from the local list without refetching. A failure is logged and the list
// is left alone.
func (p *ProductList) ConfirmDelete(ctx context.Context, product domain.Product) *task.Future[struct{}] {
	return task.Go(ctx, &p.inflight, func(ctx context.Context) (struct{}, error) {
		if err := p.api.DeleteProduct(ctx, product.ProductID); err != nil {
			p.logger.Error("Delete error",
				zap.Int64("product_id", product.ProductID),
				zap.Error(err),
			)
			return struct{}{}, err
		}

		p.removeProduct(product.ProductID)
		return struct{}{}, nil
	})
}

// DeleteProduct asks confirmer before deleting product. A declined prompt
// settles false at once without contacting the server.
func (p *ProductList) DeleteProduct(ctx context.Context, product domain.Product, confirmer Confirmer) *task.Future[bool] {
	prompt := p.RequestDeleteConfirmation(product)
	if confirmer == nil || !confirmer.Confirm(ctx, prompt) {
		return task.Resolved(false)
	}

	return task.Then(p.ConfirmDelete(ctx, product), func(_ struct{}, err error) (bool, error) {
		return err == nil, err
	})
}

func (p *ProductList) removeProduct(id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	kept := make([]domain.Product, 0, len(p.products))
	for _, prod := range p.products {
		if prod.ProductID != id {
			kept = append(kept, prod)
		}
	}
	p.products = kept
}

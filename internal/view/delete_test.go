package view

import (
	"context"
	"testing"

	"catalog-console/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func answer(yes bool) ConfirmFunc {
	return func(ctx context.Context, prompt Prompt) bool { return yes }
}

func TestRequestDeleteConfirmation(t *testing.T) {
	list := newList(newFakeCatalog(), nil)
	product := domain.Product{ProductID: 4, Name: "Teak bench"}

	prompt := list.RequestDeleteConfirmation(product)

	assert.Equal(t, "Are you sure you want to delete Teak bench?", prompt.Message)
	assert.Equal(t, product, prompt.Product)
}

func TestDeleteDeclinedIssuesNoRequest(t *testing.T) {
	api := newFakeCatalog()
	list := newList(api, nil)
	_, _ = list.LoadAllProducts(context.Background()).Wait()
	before := list.Products()

	var asked Prompt
	deleted, err := list.DeleteProduct(context.Background(), before[1], ConfirmFunc(func(ctx context.Context, p Prompt) bool {
		asked = p
		return false
	})).Wait()

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, "Are you sure you want to delete Pine table?", asked.Message)
	assert.Equal(t, []string{"ListProducts"}, api.Calls())
	assert.Equal(t, before, list.Products())
}

func TestDeleteWithoutConfirmerIsDeclined(t *testing.T) {
	api := newFakeCatalog()
	list := newList(api, nil)

	deleted, err := list.DeleteProduct(context.Background(), domain.Product{ProductID: 1}, nil).Wait()

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, api.Calls())
}

func TestDeleteAcceptedRemovesProduct(t *testing.T) {
	api := newFakeCatalog()
	list := newList(api, nil)
	_, _ = list.LoadAllProducts(context.Background()).Wait()

	deleted, err := list.DeleteProduct(context.Background(), domain.Product{ProductID: 2, Name: "Pine table"}, answer(true)).Wait()

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{"ListProducts", "DeleteProduct"}, api.Calls())
	assert.Equal(t, []domain.Product{api.products[0], api.products[2]}, list.Products())
}

func TestDeleteFailureKeepsListAndLogs(t *testing.T) {
	api := newFakeCatalog()
	api.deleteErr = errBackend
	core, logs := observer.New(zapcore.DebugLevel)
	list := NewProductList(api, staticAuth{}, nil, zap.New(core))
	_, _ = list.LoadAllProducts(context.Background()).Wait()

	deleted, err := list.DeleteProduct(context.Background(), api.products[0], answer(true)).Wait()

	assert.ErrorIs(t, err, errBackend)
	assert.False(t, deleted)
	assert.Equal(t, api.products, list.Products())
	assert.Equal(t, 1, logs.FilterMessage("Delete error").Len())
}

func TestProperty_ConfirmedDeleteRemovesOnlyMatchingEntries(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a successful delete keeps every other product in order", prop.ForAll(
		func(ids []int64, pick int) bool {
			if len(ids) == 0 {
				return true
			}

			api := newFakeCatalog()
			api.products = make([]domain.Product, len(ids))
			for i, id := range ids {
				api.products[i] = domain.Product{ProductID: id, Name: "p"}
			}

			list := newList(api, nil)
			if _, err := list.LoadAllProducts(context.Background()).Wait(); err != nil {
				return false
			}

			target := api.products[pick%len(ids)]
			if _, err := list.ConfirmDelete(context.Background(), target).Wait(); err != nil {
				return false
			}

			var want []domain.Product
			for _, p := range api.products {
				if p.ProductID != target.ProductID {
					want = append(want, p)
				}
			}

			got := list.Products()
			if len(got) != len(want) {
				return false
			}
			for i := range got {
				if got[i] != want[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int64Range(1, 20)),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

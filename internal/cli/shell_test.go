package cli

import (
	"context"
	"strings"
	"testing"

	"catalog-console/internal/domain"
	"catalog-console/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellSession(t *testing.T) {
	isolateEnv(t)
	api := newCatalogAPI(t)

	script := strings.Join([]string{
		"search  oak",
		"category 2",
		"category",
		"view 4",
		"bogus",
		"quit",
		"list",
	}, "\n") + "\n"

	out, err := run(t, script, "shell", "--api-url", api.URL)

	require.NoError(t, err)
	assert.Contains(t, api.requests(), "GET /api/products/search?term=%20oak")
	assert.Contains(t, api.requests(), "GET /api/products/category/2")
	assert.Contains(t, out, "Viewing model for: Walnut side table")
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Equal(t, 1, strings.Count(strings.Join(api.requests(), "\n"), "GET /api/products/category"))

	listed := 0
	for _, uri := range api.requests() {
		if uri == "GET /api/products" {
			listed++
		}
	}
	assert.Equal(t, 2, listed, "initial load plus the cleared category filter, nothing after quit")
}

func TestShellDeleteWithConfirmation(t *testing.T) {
	isolateEnv(t)
	api := newCatalogAPI(t)

	out, err := run(t, "delete 5\nyes\n", "shell", "--api-url", api.URL, "--token", adminToken(t, domain.RoleAdmin))

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted Brass floor lamp.")
	_, err = api.products.FindByID(context.Background(), 5)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestShellStopsAtEOF(t *testing.T) {
	isolateEnv(t)
	api := newCatalogAPI(t)

	out, err := run(t, "help", "shell", "--api-url", api.URL)

	require.NoError(t, err)
	assert.Contains(t, out, "Commands:")
}

func TestShellReportsDeleteForNonAdmin(t *testing.T) {
	isolateEnv(t)
	api := newCatalogAPI(t)

	out, err := run(t, "delete 1\n", "shell", "--api-url", api.URL)

	require.NoError(t, err)
	assert.Contains(t, out, errNotAdmin.Error())
}

package admin

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	tc := newTestConsole(t)
	ctx := context.Background()

	require.NoError(t, tc.CategoryForm(ctx, 0, CategoryFields{Name: str("Audio")}))
	require.NoError(t, tc.CategoryForm(ctx, 0, CategoryFields{Name: str("Video")}))
	tc.output()
	stocks := []int{0, 9, 10, 50}
	for i, stock := range stocks {
		tc.seedProduct(t, fmt.Sprintf("P%d", i), "Audio", stock)
	}
	tc.seedProduct(t, "Cam", "Video", 2)

	s, err := tc.Summarize(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, s.Products)
	assert.Equal(t, 2, s.Categories)
	assert.Equal(t, 3, s.LowStock)
	assert.Equal(t, []string{"Audio", "Video"}, s.Labels)

	require.NoError(t, tc.Dashboard(ctx))
	out := tc.output()
	assert.Contains(t, out, "Products:    5")
	assert.Contains(t, out, "Categories:  2")
	assert.Contains(t, out, "Low stock:   3 (below 10)")
	assert.Contains(t, out, "In use:      Audio, Video")
}

func TestDashboardScansEveryPage(t *testing.T) {
	tc := newTestConsole(t)
	ctx := context.Background()
	for i := 0; i < 105; i++ {
		tc.seedProduct(t, fmt.Sprintf("Bulk-%03d", i), "", 1)
	}

	s, err := tc.Summarize(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 105, s.Products)
	assert.Equal(t, 105, s.LowStock)
	assert.Empty(t, s.Labels)
}

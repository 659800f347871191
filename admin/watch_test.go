package admin

import (
	"context"
	"strings"
	"testing"
	"time"

	"catalog/client"
	"catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchView(t *testing.T) {
	tc := newTestConsole(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- tc.Watch(ctx) }()
	require.Eventually(t, func() bool { return tc.hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	_, err := tc.api.CreateCategory(context.Background(), client.CategoryInput{Name: "Toys"})
	require.NoError(t, err)
	time.Sleep(300 * time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not stop")
	}

	out := tc.output()
	assert.Contains(t, out, "Watching for changes.")
	assert.Contains(t, out, "category.created")
	assert.Contains(t, out, "Toys")
}

func TestDescribeEvent(t *testing.T) {
	c := New(nil, nil, Palette{})

	got := c.describe(models.Event{Type: models.ProductDeleted, ID: 4, Name: "Lamp"})
	assert.Equal(t, "product.deleted  #4 Lamp", got)

	got = c.describe(models.Event{Type: models.ImageUploaded, Name: "image-1.png"})
	assert.True(t, strings.HasSuffix(got, " image-1.png"))
}

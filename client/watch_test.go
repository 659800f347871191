package client

import (
	"context"
	"testing"
	"time"

	"catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	c, hub, _ := newTestAPI(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan models.Event, 10)
	done := make(chan error, 1)
	go func() {
		done <- c.Watch(ctx, func(e models.Event) { events <- e })
	}()
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	created, err := c.CreateCategory(ctx, CategoryInput{Name: "Garden"})
	require.NoError(t, err)

	select {
	case e := <-events:
		assert.Equal(t, models.CategoryCreated, e.Type)
		assert.Equal(t, created.ID, e.ID)
		assert.Equal(t, "Garden", e.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchServerShutdown(t *testing.T) {
	c, hub, _ := newTestAPI(t)

	done := make(chan error, 1)
	go func() {
		done <- c.Watch(context.Background(), func(models.Event) {})
	}()
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Close()
	select {
	case err := <-done:
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "server closed the change feed", apiErr.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after shutdown")
	}
}

func TestFeedURL(t *testing.T) {
	testCases := []struct {
		base     string
		expected string
	}{
		{base: "http://localhost:3001/api", expected: "ws://localhost:3001/ws"},
		{base: "https://catalog.example.com/api/", expected: "wss://catalog.example.com/ws"},
		{base: "http://10.0.0.2:8080/shop/api", expected: "ws://10.0.0.2:8080/shop/ws"},
	}

	for _, tc := range testCases {
		t.Run(tc.base, func(t *testing.T) {
			got, err := New(tc.base).feedURL()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

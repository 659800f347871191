package admin

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog/client"
	"catalog/config"
	"catalog/db"
	"catalog/routes"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type testConsole struct {
	*Console
	api *client.Client
	hub *routes.Hub
	out *bytes.Buffer
}

func newTestConsole(t *testing.T) *testConsole {
	t.Helper()
	conn, err := db.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	cfg := &config.Config{Env: "production", UploadDir: t.TempDir(), BodyLimitMB: 8}
	hub := routes.NewHub(routes.OriginAllowed(cfg.CORSOrigin))
	go hub.Run()

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.Handle("/", adaptor.FiberApp(routes.NewApp(cfg, db.NewGateway(conn), hub)))
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
		db.Close(conn)
	})

	api := client.New(srv.URL + "/api")
	out := &bytes.Buffer{}
	return &testConsole{
		Console: New(api, out, NewPalette(client.Light, false)),
		api:     api,
		hub:     hub,
		out:     out,
	}
}

// output returns everything printed so far and clears the buffer.
func (tc *testConsole) output() string {
	s := tc.out.String()
	tc.out.Reset()
	return s
}

func str(s string) *string { return &s }

func (tc *testConsole) seedProduct(t *testing.T, name, category string, stock int) uint {
	t.Helper()
	require.NoError(t, tc.ProductForm(context.Background(), 0, ProductFields{
		Name:     str(name),
		Price:    str("10"),
		Category: str(category),
		Stock:    str(fmt.Sprint(stock)),
	}))
	page, err := tc.api.ListProducts(context.Background(), client.ProductQuery{Search: name, Limit: 1})
	require.NoError(t, err)
	require.NotEmpty(t, page.Products)
	tc.output()
	return page.Products[0].ID
}

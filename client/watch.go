package client

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"catalog/models"

	"github.com/gorilla/websocket"
)

// Watch subscribes to the server's change feed and calls handle for every
// event until ctx is cancelled, which returns nil.
func (c *Client) Watch(ctx context.Context, handle func(models.Event)) error {
	wsURL, err := c.feedURL()
	if err != nil {
		return &Error{Message: err.Error(), Err: err}
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		apiErr := &Error{Message: err.Error(), Err: err}
		if resp != nil {
			apiErr.Status = resp.StatusCode
		}
		return apiErr
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			conn.Close()
		case <-stop:
		}
	}()

	for {
		var e models.Event
		if err := conn.ReadJSON(&e); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) && closeErr.Code == websocket.CloseGoingAway {
				return &Error{Message: "server closed the change feed", Err: err}
			}
			return &Error{Message: err.Error(), Err: err}
		}
		handle(e)
	}
}

// feedURL maps the API base URL onto the websocket endpoint.
func (c *Client) feedURL() (string, error) {
	u, err := url.Parse(c.serverURL())
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}

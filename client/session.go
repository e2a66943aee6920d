// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/livevote/models"
)

// SignIn opens a session for username. The identity provider registers
// the username on its first sign-in.
func (c *Client) SignIn(ctx context.Context, username, password string) (*models.Session, error) {
	var resp models.SignInResponse
	req := models.SignInRequest{Username: username, Password: password}
	if err := c.do(ctx, "POST", "/auth/sign-in", "", req, &resp); err != nil {
		return nil, err
	}

	sess := resp.Session
	c.setSession(&sess)
	return &sess, nil
}

// SignOut revokes the current session. The local session is cleared even
// when the service call fails; a session the service already rejects
// counts as signed out.
func (c *Client) SignOut(ctx context.Context) error {
	sess := c.CurrentSession()
	if sess == nil {
		return nil
	}
	c.setSession(nil)

	err := c.do(ctx, "POST", "/auth/sign-out", sess.Token, nil, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		return nil
	}
	return err
}

// CurrentSession returns the session, or nil when signed out
func (c *Client) CurrentSession() *models.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// SubscribeSession delivers the current session immediately and then
// every change. nil means signed out. Slow readers only see the latest
// value. The channel closes when ctx is done.
func (c *Client) SubscribeSession(ctx context.Context) <-chan *models.Session {
	ch := make(chan *models.Session, 1)

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.watchers[id] = ch
	ch <- c.session
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		delete(c.watchers, id)
		close(ch)
		c.mu.Unlock()
	}()

	return ch
}

func (c *Client) setSession(sess *models.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session = sess
	for _, ch := range c.watchers {
		// Replace an unread value
		select {
		case <-ch:
		default:
		}
		ch <- sess
	}

	if sess != nil {
		slog.Debug("session changed", "user_id", sess.User.ID)
	} else {
		slog.Debug("session cleared")
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package rcon sends admin commands to the game server through the HTTP
// bridge that holds its RCON connection.
package rcon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// CommandPath is where the bridge accepts commands.
const CommandPath = "/rcon/command"

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	key     string
	http    *http.Client
}

// New creates a client for the bridge at baseURL. key is sent in the
// X-Bridge-Key header when non-empty.
func New(baseURL, key string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		http:    httpClient,
	}
}

type commandRequest struct {
	Command string `json:"command"`
}

type commandResponse struct {
	Response string `json:"response"`
}

// Execute runs one raw RCON command and returns the server's reply.
func (c *Client) Execute(ctx context.Context, command string) (string, error) {
	body, err := json.Marshal(commandRequest{Command: command})
	if err != nil {
		return "", fmt.Errorf("encode command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+CommandPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		req.Header.Set("X-Bridge-Key", c.key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("send %q: %w", verb(command), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("send %q: status %d: %s", verb(command), resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out commandResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && err != io.EOF {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.Response, nil
}

// Warn sends msg to one player.
func (c *Client) Warn(ctx context.Context, playerID, msg string) error {
	_, err := c.Execute(ctx, fmt.Sprintf("AdminWarn %q %s", playerID, msg))
	return err
}

// Broadcast sends msg to every player.
func (c *Client) Broadcast(ctx context.Context, msg string) error {
	_, err := c.Execute(ctx, "AdminBroadcast "+msg)
	return err
}

// SetCurrentMap switches the running match to layerID.
func (c *Client) SetCurrentMap(ctx context.Context, layerID string) error {
	_, err := c.Execute(ctx, "AdminChangeLayer "+layerID)
	return err
}

// SetNextMap queues layerID as the next layer.
func (c *Client) SetNextMap(ctx context.Context, layerID string) error {
	_, err := c.Execute(ctx, "AdminSetNextLayer "+layerID)
	return err
}

func verb(command string) string {
	if i := strings.IndexByte(command, ' '); i > 0 {
		return command[:i]
	}
	return command
}

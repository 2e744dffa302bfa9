// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votelog

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/mapvote/models"
)

// embedColor is the accent color of webhook embeds.
const embedColor = 16761867

// Sink receives vote started/ended events.
type Sink interface {
	LogVote(ctx context.Context, ev models.VoteEvent) error
}

// SQLSink appends events to the vote_event table.
type SQLSink struct {
	db *sql.DB
}

func NewSQLSink(db *sql.DB) *SQLSink {
	return &SQLSink{db: db}
}

func (s *SQLSink) LogVote(ctx context.Context, ev models.VoteEvent) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote_event (id, session_id, kind, channel, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), ev.SessionID, ev.Kind, ev.Channel, ev.Text, at.UTC())
	if err != nil {
		return fmt.Errorf("insert vote event: %w", err)
	}
	return nil
}

// Events returns the events logged for a session, oldest first.
func (s *SQLSink) Events(ctx context.Context, sessionID string) ([]models.VoteEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, kind, channel, body, created_at
		FROM vote_event
		WHERE session_id = $1
		ORDER BY created_at, kind DESC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query vote events: %w", err)
	}
	defer rows.Close()

	var events []models.VoteEvent
	for rows.Next() {
		var ev models.VoteEvent
		if err := rows.Scan(&ev.SessionID, &ev.Kind, &ev.Channel, &ev.Text, &ev.At); err != nil {
			return nil, fmt.Errorf("scan vote event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// WebhookSink posts events as chat embeds to a webhook URL.
type WebhookSink struct {
	url    string
	client *http.Client
}

func NewWebhookSink(url string, client *http.Client) *WebhookSink {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WebhookSink{url: url, client: client}
}

type embedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []embedField `json:"fields"`
	Timestamp string       `json:"timestamp"`
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

func (s *WebhookSink) LogVote(ctx context.Context, ev models.VoteEvent) error {
	title, field := "Vote Started", "Options:"
	if ev.Kind == models.EventVoteEnded {
		title, field = "Vote Ended", "Winner:"
	}
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	body, err := json.Marshal(webhookPayload{Embeds: []embed{{
		Title:     title,
		Color:     embedColor,
		Fields:    []embedField{{Name: field, Value: ev.Text}},
		Timestamp: at.UTC().Format(time.RFC3339),
	}}})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("post webhook: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Multi fans an event out to every sink. All sinks are attempted; their
// errors are joined.
type Multi []Sink

func (m Multi) LogVote(ctx context.Context, ev models.VoteEvent) error {
	var errs []error
	for _, s := range m {
		if err := s.LogVote(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

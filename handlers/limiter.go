// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	chatRate         = 1 // messages per second
	chatBurst        = 3
	limiterIdleAfter = 10 * time.Minute
	limiterSweep     = 5 * time.Minute
)

type playerLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ChatLimiter throttles chat commands per player so a single player cannot
// flood the engine or the RCON channel.
type ChatLimiter struct {
	mu       sync.Mutex
	limiters map[string]*playerLimiter
	now      func() time.Time
}

func NewChatLimiter() *ChatLimiter {
	return &ChatLimiter{
		limiters: make(map[string]*playerLimiter),
		now:      time.Now,
	}
}

// Allow reports whether playerID may send another command now.
func (l *ChatLimiter) Allow(playerID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.limiters[playerID]
	if !ok {
		entry = &playerLimiter{limiter: rate.NewLimiter(chatRate, chatBurst)}
		l.limiters[playerID] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// Prune forgets players idle for longer than maxIdle and returns how many
// were removed.
func (l *ChatLimiter) Prune(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for id, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > maxIdle {
			delete(l.limiters, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked players.
func (l *ChatLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// Run prunes idle players every few minutes until ctx is done.
func (l *ChatLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(limiterSweep)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Prune(limiterIdleAfter); n > 0 {
				slog.Debug("pruned chat limiters", "removed", n)
			}
		}
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/mapvote/models"
	"github.com/danielhkuo/mapvote/scheduler"
)

// Status describes the engine for the status endpoint. Vote counts are
// left out when the options hide them.
func (e *Engine) Status() models.VoteStatusResponse {
	e.mu.Lock()
	defer e.unlock()

	resp := models.VoteStatusResponse{
		Phase:            e.phase,
		Choices:          []models.ChoiceStatus{},
		ActiveTimeFrames: append([]string(nil), e.frames...),
	}

	if s := e.session; s != nil {
		started := s.StartedAt
		resp.SessionID = s.ID
		resp.StartedAt = &started
		resp.Voters = s.Tally.Voters()

		choice := func(i int) models.ChoiceStatus {
			c := models.ChoiceStatus{Index: i, Label: s.List.Slots[i].Label()}
			if !e.opts.HideVotesCount {
				n := s.Tally.Count(i)
				c.Votes = &n
			}
			return c
		}
		for i := 1; i < s.List.Len(); i++ {
			resp.Choices = append(resp.Choices, choice(i))
		}
		if s.List.HasReroll() {
			resp.Choices = append(resp.Choices, choice(0))
		}
	}

	if due, ok := e.timers.Deadline(scheduler.AutoStart); ok {
		resp.AutoStartDue = &due
		resp.AutoStartIn = humanize.RelTime(due, e.clock.Now(), "ago", "from now")
	}
	return resp
}

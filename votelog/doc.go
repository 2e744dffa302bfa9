// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package votelog delivers "vote started" and "vote ended" events.

SQLSink appends rows to the vote_event table. WebhookSink posts a chat
embed to a webhook URL:

	{"embeds":[{"title":"Vote Ended","color":16761867,
	  "fields":[{"name":"Winner:","value":"Narva AAS USMC-RUS"}],
	  "timestamp":"2025-06-01T20:30:00Z"}]}

Multi fans one event out to several sinks.
*/
package votelog

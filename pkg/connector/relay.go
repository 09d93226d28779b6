// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package connector

import (
	"github.com/rs/zerolog"
	"maunium.net/go/mautrix/event"

	"github.com/aiku/mautrix-irc/pkg/connector/ircfmt"
	"github.com/aiku/mautrix-irc/pkg/ircaction"
)

// Line is a single line to send to an IRC channel.
type Line struct {
	Type ircaction.ActionType
	Text string
}

// Relay turns Matrix events into IRC lines. It is safe for concurrent use
// once the config has been post-processed.
type Relay struct {
	config     *Config
	translator *ircaction.Translator
	log        zerolog.Logger
}

// NewRelay creates a Relay. cfg must have been post-processed.
func NewRelay(cfg *Config, log zerolog.Logger) *Relay {
	return &Relay{
		config:     cfg,
		translator: ircaction.NewTranslator(ircfmt.Formatter{}, log.With().Str("component", "translator").Logger()),
		log:        log,
	}
}

// HandleMatrixEvent converts a Matrix event into IRC lines. displayName is
// the sender's resolved room display name and may be empty. A nil result
// means nothing should be sent.
func (r *Relay) HandleMatrixEvent(evt *event.Event, displayName string) []Line {
	if evt == nil {
		return nil
	}
	ma := ircaction.FromEvent(evt, ircaction.EventOptions{MediaURL: r.config.MediaURL})
	if ma == nil {
		r.log.Trace().Str("event_type", evt.Type.Type).Msg("Ignoring event with no IRC representation")
		return nil
	}
	ma.SenderDisplayName = displayName

	action := r.translator.FromMatrixAction(ma)
	if action == nil {
		r.log.Debug().
			Str("event_id", string(evt.ID)).
			Str("kind", string(ma.Kind)).
			Msg("Skipping event with nothing to relay")
		return nil
	}
	return r.Render(action)
}

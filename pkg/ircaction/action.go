// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ircaction

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"maunium.net/go/mautrix/id"
)

// ErrUnknownActionType is returned when an IrcAction is constructed with a
// type outside the four IRC action types.
var ErrUnknownActionType = errors.New("unknown IrcAction type")

// ActionType is the kind of line sent to IRC.
type ActionType string

const (
	ActionMessage ActionType = "message"
	ActionEmote   ActionType = "emote"
	ActionNotice  ActionType = "notice"
	ActionTopic   ActionType = "topic"
)

// Valid reports whether t is one of the four IRC action types.
func (t ActionType) Valid() bool {
	switch t {
	case ActionMessage, ActionEmote, ActionNotice, ActionTopic:
		return true
	default:
		return false
	}
}

// IrcAction is a normalized outbound event for the IRC side.
//
// Only Text may change after construction; downstream renderers rewrite it
// when splitting or truncating.
type IrcAction struct {
	Text string

	typ         ActionType
	ts          int64
	sender      id.UserID
	displayName string
}

// NewIrcAction validates typ and builds an action. sender and displayName may
// be empty.
func NewIrcAction(typ ActionType, text string, ts int64, sender id.UserID, displayName string) (*IrcAction, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActionType, string(typ))
	}
	return &IrcAction{
		Text:        text,
		typ:         typ,
		ts:          ts,
		sender:      sender,
		displayName: displayName,
	}, nil
}

// Type returns the action type.
func (a *IrcAction) Type() ActionType { return a.typ }

// Timestamp returns the origin server timestamp of the source event.
func (a *IrcAction) Timestamp() int64 { return a.ts }

// Sender returns the Matrix user that sent the source event.
func (a *IrcAction) Sender() id.UserID { return a.sender }

// DisplayName returns the explicit display name, or the localpart of the
// sender when none was given.
func (a *IrcAction) DisplayName() string {
	if a.displayName != "" {
		return a.displayName
	}
	return Localpart(a.sender)
}

// Localpart returns the part of userID before the first ':' with one leading
// sigil removed. An empty ID yields "".
func Localpart(userID id.UserID) string {
	if userID == "" {
		return ""
	}
	local, _, _ := strings.Cut(string(userID), ":")
	if local == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(local)
	return local[size:]
}

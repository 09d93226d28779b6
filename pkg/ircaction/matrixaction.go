// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ircaction

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"go.mau.fi/util/ptr"
	"maunium.net/go/mautrix/event"
	"maunium.net/go/mautrix/id"
)

// Kind is the kind of a Matrix action. Values outside the constants below
// are carried as-is so the translator can report them.
type Kind string

const (
	KindMessage Kind = "message"
	KindEmote   Kind = "emote"
	KindNotice  Kind = "notice"
	KindImage   Kind = "image"
	KindVideo   Kind = "video"
	KindAudio   Kind = "audio"
	KindFile    Kind = "file"
	KindTopic   Kind = "topic"
)

// MatrixAction is a normalized inbound Matrix event.
type MatrixAction struct {
	Kind Kind
	// Text is nil when the event carries no plain-text body.
	Text *string
	// HTMLText is the org.matrix.custom.html body, or "" when absent.
	HTMLText          string
	Timestamp         int64
	Sender            id.UserID
	SenderDisplayName string
}

// EventOptions controls how FromEvent renders media references.
type EventOptions struct {
	// MediaURL is the public base URL used to turn mxc:// URIs into
	// download links. Media is referenced by filename only when empty.
	MediaURL string
}

var msgTypeKinds = map[event.MessageType]Kind{
	event.MsgText:   KindMessage,
	event.MsgEmote:  KindEmote,
	event.MsgNotice: KindNotice,
	event.MsgImage:  KindImage,
	event.MsgVideo:  KindVideo,
	event.MsgAudio:  KindAudio,
	event.MsgFile:   KindFile,
}

// FromEvent builds a MatrixAction from a parsed m.room.message or
// m.room.topic event. It returns nil for any other content.
func FromEvent(evt *event.Event, opts EventOptions) *MatrixAction {
	if evt == nil {
		return nil
	}
	switch content := evt.Content.Parsed.(type) {
	case *event.TopicEventContent:
		return &MatrixAction{
			Kind:      KindTopic,
			Text:      ptr.Ptr(content.Topic),
			Timestamp: evt.Timestamp,
			Sender:    evt.Sender,
		}
	case *event.MessageEventContent:
		return fromMessageContent(evt, content, opts)
	default:
		return nil
	}
}

func fromMessageContent(evt *event.Event, content *event.MessageEventContent, opts EventOptions) *MatrixAction {
	if content.NewContent != nil {
		content = content.NewContent
	}
	// Redacted events keep their type but lose all content.
	if content.MsgType == "" {
		return nil
	}
	// Work on a copy so the caller's event is left untouched.
	c := *content
	c.RemoveReplyFallback()

	action := &MatrixAction{
		Timestamp: evt.Timestamp,
		Sender:    evt.Sender,
	}
	kind, ok := msgTypeKinds[c.MsgType]
	if !ok {
		kind = Kind(strings.TrimPrefix(string(c.MsgType), "m."))
	}
	action.Kind = kind

	switch kind {
	case KindImage, KindVideo, KindAudio, KindFile:
		action.Text = ptr.Ptr(mediaReference(&c, opts.MediaURL))
	default:
		if c.Body != "" {
			action.Text = ptr.Ptr(c.Body)
		}
		if c.Format == event.FormatHTML && c.FormattedBody != "" {
			action.HTMLText = c.FormattedBody
		}
	}
	return action
}

// mediaReference renders "<name> (<size>) < <url> >", dropping the parts
// that are unknown.
func mediaReference(c *event.MessageEventContent, mediaURL string) string {
	name := c.GetFileName()
	uri := c.URL
	if c.File != nil {
		uri = c.File.URL
	}
	link := mediaDownloadURL(mediaURL, uri)

	var sb strings.Builder
	sb.WriteString(name)
	if c.Info != nil && c.Info.Size > 0 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "(%s)", humanize.IBytes(uint64(c.Info.Size)))
	}
	if link != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "< %s >", link)
	}
	return sb.String()
}

// mediaDownloadURL converts an mxc:// URI into a client-server download URL.
func mediaDownloadURL(base string, uri id.ContentURIString) string {
	if base == "" || uri == "" {
		return ""
	}
	parsed, err := uri.Parse()
	if err != nil || parsed.Homeserver == "" || parsed.FileID == "" {
		return ""
	}
	return fmt.Sprintf("%s/_matrix/media/v3/download/%s/%s",
		strings.TrimSuffix(base, "/"), parsed.Homeserver, parsed.FileID)
}

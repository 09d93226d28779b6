// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ircaction

import (
	"testing"

	"github.com/stretchr/testify/require"
	"maunium.net/go/mautrix/event"
	"maunium.net/go/mautrix/id"
)

func messageEvent(content *event.MessageEventContent) *event.Event {
	return &event.Event{
		Sender:    "@alice:example.org",
		Type:      event.EventMessage,
		Timestamp: 1700000000000,
		Content:   event.Content{Parsed: content},
	}
}

func TestFromEvent_Text(t *testing.T) {
	t.Parallel()
	ma := FromEvent(messageEvent(&event.MessageEventContent{
		MsgType: event.MsgText,
		Body:    "hello",
	}), EventOptions{})

	require.NotNil(t, ma)
	require.Equal(t, KindMessage, ma.Kind)
	require.Equal(t, "hello", *ma.Text)
	require.Empty(t, ma.HTMLText)
	require.Equal(t, int64(1700000000000), ma.Timestamp)
	require.Equal(t, id.UserID("@alice:example.org"), ma.Sender)
}

func TestFromEvent_KindMapping(t *testing.T) {
	t.Parallel()
	tests := []struct {
		msgType event.MessageType
		want    Kind
	}{
		{event.MsgText, KindMessage},
		{event.MsgEmote, KindEmote},
		{event.MsgNotice, KindNotice},
		{event.MsgImage, KindImage},
		{event.MsgVideo, KindVideo},
		{event.MsgAudio, KindAudio},
		{event.MsgFile, KindFile},
		{event.MsgLocation, "location"},
	}
	for _, tt := range tests {
		ma := FromEvent(messageEvent(&event.MessageEventContent{MsgType: tt.msgType, Body: "x"}), EventOptions{})
		require.NotNil(t, ma)
		require.Equal(t, tt.want, ma.Kind, "msgtype %q", tt.msgType)
	}
}

func TestFromEvent_HTMLOnlyWhenFormatted(t *testing.T) {
	t.Parallel()
	withFormat := FromEvent(messageEvent(&event.MessageEventContent{
		MsgType:       event.MsgText,
		Body:          "bold",
		Format:        event.FormatHTML,
		FormattedBody: "<b>bold</b>",
	}), EventOptions{})
	require.Equal(t, "<b>bold</b>", withFormat.HTMLText)

	withoutFormat := FromEvent(messageEvent(&event.MessageEventContent{
		MsgType:       event.MsgText,
		Body:          "bold",
		FormattedBody: "<b>bold</b>",
	}), EventOptions{})
	require.Empty(t, withoutFormat.HTMLText)
}

func TestFromEvent_EmptyBodyHasNoText(t *testing.T) {
	t.Parallel()
	ma := FromEvent(messageEvent(&event.MessageEventContent{MsgType: event.MsgText}), EventOptions{})
	require.NotNil(t, ma)
	require.Nil(t, ma.Text)
}

func TestFromEvent_RedactedMessage(t *testing.T) {
	t.Parallel()
	require.Nil(t, FromEvent(messageEvent(&event.MessageEventContent{}), EventOptions{}))
	require.Nil(t, FromEvent(messageEvent(&event.MessageEventContent{
		MsgType:    event.MsgText,
		NewContent: &event.MessageEventContent{},
	}), EventOptions{}))
}

func TestFromEvent_Edit(t *testing.T) {
	t.Parallel()
	ma := FromEvent(messageEvent(&event.MessageEventContent{
		MsgType: event.MsgText,
		Body:    " * fixed",
		NewContent: &event.MessageEventContent{
			MsgType: event.MsgText,
			Body:    "fixed",
		},
	}), EventOptions{})
	require.NotNil(t, ma)
	require.Equal(t, "fixed", *ma.Text)
}

func TestFromEvent_ReplyFallbackRemoved(t *testing.T) {
	t.Parallel()
	content := &event.MessageEventContent{
		MsgType:       event.MsgText,
		Body:          "> <@bob:example.org> old\n\nnew",
		Format:        event.FormatHTML,
		FormattedBody: "<mx-reply><blockquote>old</blockquote></mx-reply>new",
		RelatesTo: &event.RelatesTo{
			InReplyTo: &event.InReplyTo{EventID: "$old"},
		},
	}
	ma := FromEvent(messageEvent(content), EventOptions{})

	require.NotNil(t, ma)
	require.Equal(t, "new", *ma.Text)
	require.Equal(t, "new", ma.HTMLText)
	require.Equal(t, "> <@bob:example.org> old\n\nnew", content.Body, "source event must not change")
}

func TestFromEvent_Media(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content *event.MessageEventContent
		opts    EventOptions
		want    string
	}{
		{
			name: "url and size",
			content: &event.MessageEventContent{
				MsgType: event.MsgImage,
				Body:    "cat.png",
				URL:     "mxc://example.org/abcd",
				Info:    &event.FileInfo{Size: 2048},
			},
			opts: EventOptions{MediaURL: "https://matrix.example.org/"},
			want: "cat.png (2.0 KiB) < https://matrix.example.org/_matrix/media/v3/download/example.org/abcd >",
		},
		{
			name: "no media url",
			content: &event.MessageEventContent{
				MsgType: event.MsgFile,
				Body:    "report.pdf",
				URL:     "mxc://example.org/abcd",
			},
			want: "report.pdf",
		},
		{
			name: "encrypted file",
			content: &event.MessageEventContent{
				MsgType:  event.MsgVideo,
				Body:     "caption",
				FileName: "clip.mp4",
				File:     &event.EncryptedFileInfo{URL: "mxc://example.org/enc"},
			},
			opts: EventOptions{MediaURL: "https://matrix.example.org"},
			want: "clip.mp4 < https://matrix.example.org/_matrix/media/v3/download/example.org/enc >",
		},
		{
			name: "bad uri",
			content: &event.MessageEventContent{
				MsgType: event.MsgAudio,
				Body:    "voice.ogg",
				URL:     "https://not-mxc",
			},
			opts: EventOptions{MediaURL: "https://matrix.example.org"},
			want: "voice.ogg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ma := FromEvent(messageEvent(tt.content), tt.opts)
			require.NotNil(t, ma)
			require.NotNil(t, ma.Text)
			require.Equal(t, tt.want, *ma.Text)
			require.Empty(t, ma.HTMLText)
		})
	}
}

func TestFromEvent_Topic(t *testing.T) {
	t.Parallel()
	ma := FromEvent(&event.Event{
		Sender:    "@op:example.org",
		Type:      event.StateTopic,
		Timestamp: 10,
		Content:   event.Content{Parsed: &event.TopicEventContent{Topic: "new topic"}},
	}, EventOptions{})

	require.NotNil(t, ma)
	require.Equal(t, KindTopic, ma.Kind)
	require.Equal(t, "new topic", *ma.Text)
	require.Equal(t, int64(10), ma.Timestamp)
}

func TestFromEvent_Unsupported(t *testing.T) {
	t.Parallel()
	require.Nil(t, FromEvent(nil, EventOptions{}))
	require.Nil(t, FromEvent(&event.Event{Type: event.EventReaction, Content: event.Content{
		Parsed: &event.ReactionEventContent{},
	}}, EventOptions{}))
	require.Nil(t, FromEvent(&event.Event{Type: event.EventMessage}, EventOptions{}))
}

// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ircaction

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Formatter converts Matrix markup into IRC markup. Both methods return
// false when there is nothing they can convert; neither may panic.
type Formatter interface {
	HTMLToIRC(html string) (string, bool)
	MarkdownCodeToIRC(text string) (string, bool)
}

// mediaPhrases holds the emote text used for uploads, keyed by kind.
var mediaPhrases = map[Kind]string{
	KindImage: "uploaded an image: ",
	KindVideo: "uploaded a video: ",
	KindAudio: "uploaded an audio file: ",
	KindFile:  "posted a file: ",
}

// Translator turns MatrixActions into IrcActions. It is safe for
// concurrent use.
type Translator struct {
	formatter Formatter
	log       zerolog.Logger
}

// NewTranslator creates a Translator using formatter for rich text.
func NewTranslator(formatter Formatter, log zerolog.Logger) *Translator {
	return &Translator{
		formatter: formatter,
		log:       log,
	}
}

// FromMatrixAction converts ma into an IrcAction. A nil result means the
// event must not be forwarded to IRC.
func (t *Translator) FromMatrixAction(ma *MatrixAction) *IrcAction {
	if ma == nil {
		return nil
	}
	switch ma.Kind {
	case KindMessage, KindEmote, KindNotice:
		if ma.Text == nil {
			return nil
		}
		return t.build(ActionType(ma.Kind), t.messageText(ma), ma)
	case KindImage, KindVideo, KindAudio, KindFile:
		ref := ""
		if ma.Text != nil {
			ref = *ma.Text
		}
		return t.build(ActionEmote, mediaPhrases[ma.Kind]+ref, ma)
	case KindTopic:
		if ma.Text == nil {
			return nil
		}
		return t.build(ActionTopic, *ma.Text, ma)
	default:
		t.log.Error().
			Str("kind", string(ma.Kind)).
			Str("sender", string(ma.Sender)).
			Msg("Unknown action type, dropping")
		return nil
	}
}

// messageText returns the plain body unless ma carries HTML, in which case
// it tries the HTML conversion, then code markdown on the plain body, then
// the plain body itself. ma.Text must be non-nil.
func (t *Translator) messageText(ma *MatrixAction) string {
	if ma.HTMLText == "" {
		return *ma.Text
	}
	if text, ok := t.formatter.HTMLToIRC(ma.HTMLText); ok {
		return text
	}
	if text, ok := t.formatter.MarkdownCodeToIRC(*ma.Text); ok {
		return text
	}
	return *ma.Text
}

func (t *Translator) build(typ ActionType, text string, ma *MatrixAction) *IrcAction {
	action, err := NewIrcAction(typ, text, ma.Timestamp, ma.Sender, ma.SenderDisplayName)
	if err != nil {
		panic(fmt.Errorf("translator produced an invalid action: %w", err))
	}
	return action
}

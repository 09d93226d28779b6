// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ircaction converts Matrix events into actions for the IRC side of
// the bridge.
//
// A [MatrixAction] is the normalized form of an inbound Matrix event, built
// from a mautrix event with [FromEvent]. A [Translator] turns it into an
// [IrcAction], which is limited to the four IRC action types: message,
// emote, notice and topic. Uploads become emotes, and rich text goes through
// a [Formatter] before falling back to the plain body.
//
// The sender's display name is never written into the action text. It is
// exposed through [IrcAction.DisplayName] so the presentation layer decides
// how, and whether, to prefix lines.
package ircaction

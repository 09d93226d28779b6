// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package connector relays Matrix events to IRC as formatted lines.
//
// # Core Types
//
// [Relay] takes a parsed mautrix event, builds an
// [ircaction.MatrixAction] from it, translates that into an
// [ircaction.IrcAction] and renders the result into [Line] values sized for
// IRC.
//
// [Config] holds the YAML settings: the media URL used for upload links, the
// display name prefix template and the line limits.
//
// # Prefixing
//
// The sender's name is added here and nowhere else. Translated actions carry
// the display name separately, so each line gets the prefix exactly once.
//
// # Sub-packages
//
//   - ircfmt converts Matrix HTML and markdown code spans to IRC formatting.
package connector

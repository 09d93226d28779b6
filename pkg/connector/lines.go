// Copyright 2024-2026 Aiku AI

package connector

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/aiku/mautrix-irc/pkg/connector/ircfmt"
	"github.com/aiku/mautrix-irc/pkg/ircaction"
)

// truncationMarker is appended to the last line when MaxLines drops lines.
const truncationMarker = " [...]"

// lineBreaks folds every line ending IRC servers accept into "\n" and drops
// NUL, which may not appear on the wire at all.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\x00", "")

// Render splits an action into IRC lines, prefixing message, notice and
// emote lines with the sender when one is known. When lines are dropped
// because of MaxLines, action.Text is rewritten to the text actually sent.
func (r *Relay) Render(action *ircaction.IrcAction) []Line {
	if action.Type() == ircaction.ActionTopic {
		topic := strings.Join(strings.Fields(lineBreaks.Replace(action.Text)), " ")
		return []Line{{Type: ircaction.ActionTopic, Text: splitLine(topic, r.config.LineLimit)[0]}}
	}

	var prefix string
	if name := action.DisplayName(); name != "" {
		prefix = r.config.FormatDisplayname(DisplaynameParams{
			DisplayName: name,
			UserID:      action.Sender(),
			Localpart:   ircaction.Localpart(action.Sender()),
		})
	}
	avail := r.config.LineLimit - len(prefix)
	if avail <= 0 {
		avail = r.config.LineLimit
	}

	var parts []string
	for _, raw := range strings.Split(lineBreaks.Replace(action.Text), "\n") {
		if strings.TrimSpace(ircfmt.StripCodes(raw)) == "" {
			continue
		}
		parts = append(parts, splitLine(raw, avail)...)
	}
	if len(parts) == 0 {
		return nil
	}
	if limit := r.config.MaxLines; limit > 0 && len(parts) > limit {
		r.log.Debug().
			Int("lines", len(parts)).
			Int("max_lines", limit).
			Msg("Truncating long message")
		parts = parts[:limit]
		last := parts[limit-1]
		if room := avail - len(truncationMarker); r.config.LineLimit > 0 && room > 0 && len(last) > room {
			last = splitLine(last, room)[0]
		}
		parts[limit-1] = last + truncationMarker
		action.Text = strings.Join(parts, "\n")
	}

	lines := make([]Line, len(parts))
	for i, part := range parts {
		lines[i] = Line{Type: action.Type(), Text: prefix + part}
	}
	return lines
}

// splitLine breaks line into chunks of at most limit bytes without cutting
// grapheme clusters, preferring to break at spaces. A single cluster longer
// than limit gets a chunk of its own.
func splitLine(line string, limit int) []string {
	if limit <= 0 || len(line) <= limit {
		return []string{line}
	}
	var parts []string
	emit := func(s string) {
		if s = strings.TrimRight(s, " "); s != "" {
			parts = append(parts, s)
		}
	}
	cur := ""
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		cl := gr.Str()
		if cl == " " {
			if cur == "" {
				continue
			}
			if len(cur)+1 > limit {
				emit(cur)
				cur = ""
				continue
			}
		}
		for cur != "" && len(cur)+len(cl) > limit {
			if sp := strings.LastIndexByte(cur, ' '); sp > 0 {
				emit(cur[:sp])
				cur = cur[sp+1:]
			} else {
				emit(cur)
				cur = ""
			}
		}
		cur += cl
	}
	emit(cur)
	return parts
}

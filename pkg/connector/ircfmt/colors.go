// Copyright 2024-2026 Aiku AI

package ircfmt

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// palette is the 16-colour mIRC palette, indexed by colour code.
var palette = [16]string{
	"#ffffff", // 00 white
	"#000000", // 01 black
	"#00007f", // 02 navy
	"#009300", // 03 green
	"#ff0000", // 04 red
	"#7f0000", // 05 maroon
	"#9c009c", // 06 purple
	"#fc7f00", // 07 orange
	"#ffff00", // 08 yellow
	"#00fc00", // 09 light green
	"#009393", // 10 teal
	"#00ffff", // 11 cyan
	"#0000fc", // 12 blue
	"#ff00ff", // 13 pink
	"#7f7f7f", // 14 grey
	"#d2d2d2", // 15 light grey
}

var paletteColors = func() [16]colorful.Color {
	var out [16]colorful.Color
	for i, hex := range palette {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}()

// NearestColor returns the IRC colour code closest to a CSS hex colour
// ("#rgb" or "#rrggbb"). It returns false when hex cannot be parsed.
func NearestColor(hex string) (int, bool) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return 0, false
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, false
	}
	best, bestDist := 0, -1.0
	for i, p := range paletteColors {
		d := c.DistanceLab(p)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, true
}

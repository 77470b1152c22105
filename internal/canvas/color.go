package canvas

import (
	"fmt"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/olivier-w/wavview/internal/render"
)

type colorProfile uint8

const (
	colorNone colorProfile = iota
	colorANSI16
	colorANSI256
	colorTrueColor
)

type colorRGB struct {
	R uint8
	G uint8
	B uint8
}

var (
	profileOnce sync.Once
	profile     colorProfile
	seqCache    sync.Map
)

func currentColorProfile() colorProfile {
	profileOnce.Do(func() {
		profile = detectColorProfile(os.LookupEnv)
	})
	return profile
}

func detectColorProfile(lookup func(string) (string, bool)) colorProfile {
	if _, disabled := lookup("NO_COLOR"); disabled {
		return colorNone
	}
	term, _ := lookup("TERM")
	colorTerm, _ := lookup("COLORTERM")
	term = strings.ToLower(term)
	colorTerm = strings.ToLower(colorTerm)
	switch {
	case strings.Contains(colorTerm, "truecolor"), strings.Contains(colorTerm, "24bit"):
		return colorTrueColor
	case strings.Contains(term, "256color"):
		return colorANSI256
	case term == "", term == "dumb":
		return colorNone
	default:
		return colorANSI16
	}
}

func paletteRGB(c render.Color) colorRGB {
	if int(c) >= len(render.RGB) {
		return colorRGB{R: 255, G: 255, B: 255}
	}
	p := render.RGB[c]
	return colorRGB{R: p[0], G: p[1], B: p[2]}
}

type ansiState struct {
	profile colorProfile
	current uint32
}

func newANSIState(p colorProfile) ansiState {
	return ansiState{profile: p, current: ^uint32(0)}
}

func (s *ansiState) set(sb *strings.Builder, c colorRGB) {
	if s.profile == colorNone {
		return
	}
	key := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	if key == s.current {
		return
	}
	sb.WriteString(colorSequence(s.profile, c))
	s.current = key
}

func (s *ansiState) reset(sb *strings.Builder) {
	if s.profile == colorNone || s.current == ^uint32(0) {
		return
	}
	sb.WriteString("\x1b[0m")
	s.current = ^uint32(0)
}

var ansi16 = []colorRGB{
	{R: 0, G: 0, B: 0},
	{R: 205, G: 49, B: 49},
	{R: 13, G: 188, B: 121},
	{R: 229, G: 229, B: 16},
	{R: 36, G: 114, B: 200},
	{R: 188, G: 63, B: 188},
	{R: 17, G: 168, B: 205},
	{R: 229, G: 229, B: 229},
}

func colorSequence(profile colorProfile, c colorRGB) string {
	key := uint32(profile)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	if seq, ok := seqCache.Load(key); ok {
		return seq.(string)
	}

	var seq string
	switch profile {
	case colorTrueColor:
		seq = fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
	case colorANSI256:
		r := int(c.R) * 5 / 255
		g := int(c.G) * 5 / 255
		b := int(c.B) * 5 / 255
		seq = fmt.Sprintf("\x1b[38;5;%dm", 16+36*r+6*g+b)
	case colorANSI16:
		best := 0
		bestDist := math.MaxFloat64
		for i, p := range ansi16 {
			dr := float64(c.R) - float64(p.R)
			dg := float64(c.G) - float64(p.G)
			db := float64(c.B) - float64(p.B)
			if d := dr*dr + dg*dg + db*db; d < bestDist {
				bestDist = d
				best = i
			}
		}
		seq = fmt.Sprintf("\x1b[%dm", 30+best)
	}

	seqCache.Store(key, seq)
	return seq
}

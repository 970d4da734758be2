// Package render implements the interactive windowed viewer of
// spec.md §1/§6: an ebiten.Game adapter over a model.Model.
package render

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"wator/model"
)

const pixelScale = 8 // Pixels per cell.

var colBg = color.RGBA{20, 40, 90, 255}

// View implements ebiten.Game over a running model.Model. It is the one
// place outside cmd/predprey allowed to call Tick() (spec.md §4.9).
type View struct {
	m            model.Model
	log          *slog.Logger
	tick         int
	ticksPerStep int // Update() advances the model once every ticksPerStep frames.
	colors       map[uint32]color.Color
}

// New builds a View over m. ticksPerStep controls simulation pacing
// relative to ebiten's frame rate (default 2, matching the project's
// original pacing).
func New(m model.Model, log *slog.Logger, ticksPerStep int) *View {
	if ticksPerStep <= 0 {
		ticksPerStep = 2
	}

	colors := make(map[uint32]color.Color, m.Params().Count())
	for _, id := range m.Params().SpecieIDs() {
		name, _ := m.Params().NameByID(id)
		sp := m.Params().ByID(id)
		if sp.Color != nil {
			colors[id] = *sp.Color
			continue
		}
		colors[id] = fallbackColor(id)
		log.Debug("no configured color, using fallback", slog.String("specie", name), slog.Uint64("id", uint64(id)))
	}

	return &View{m: m, log: log, ticksPerStep: ticksPerStep, colors: colors}
}

// fallbackColor derives a stable color from a specie id when the config
// doesn't supply one.
func fallbackColor(id uint32) color.Color {
	h := id * 2654435761 // Knuth multiplicative hash, spread ids across hue space.
	return color.RGBA{
		R: uint8(h >> 16),
		G: uint8(h >> 8),
		B: uint8(h),
		A: 0xff,
	}
}

// Update advances the simulation once every ticksPerStep frames.
func (v *View) Update() error {
	if v.tick%v.ticksPerStep != 0 {
		v.tick++
		return nil
	}
	v.m.Tick()
	v.tick++
	return nil
}

// Draw renders the current grid, one pixelScale x pixelScale block per
// occupied cell.
func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(colBg)
	g := v.m.Grid()
	size := g.Size()

	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			cell := g.Get(x, y)
			if cell.IsEmpty() {
				continue
			}
			c := v.colors[cell.SpecieID()]
			for dy := 0; dy < pixelScale; dy++ {
				for dx := 0; dx < pixelScale; dx++ {
					screen.Set(x*pixelScale+dx, y*pixelScale+dy, c)
				}
			}
		}
	}
}

// Layout reports the logical screen size.
func (v *View) Layout(outsideW, outsideH int) (int, int) {
	size := v.m.Grid().Size()
	return size.W * pixelScale, size.H * pixelScale
}

// Run opens the ebiten window and blocks until it's closed.
func Run(v *View) error {
	size := v.m.Grid().Size()
	ebiten.SetWindowSize(size.W*pixelScale, size.H*pixelScale)
	ebiten.SetWindowTitle(fmt.Sprintf("predprey | %dx%d | %s", size.W, size.H, v.m.Params().Model()))
	return ebiten.RunGame(v)
}

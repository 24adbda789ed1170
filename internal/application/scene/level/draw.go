package level

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/gemrun/internal/application/state"
	"github.com/younwookim/gemrun/internal/domain/entity"
	"github.com/younwookim/gemrun/internal/ecs"
	"github.com/younwookim/gemrun/internal/infrastructure/tilemap"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorBackground = color.RGBA{44, 52, 72, 255}
	colorPlatform   = color.RGBA{80, 80, 100, 255}
	colorExit       = color.RGBA{90, 200, 220, 255}
	colorForeground = color.RGBA{30, 90, 50, 200}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorGem        = color.RGBA{255, 215, 0, 255}
	colorSkull      = color.RGBA{220, 220, 200, 255}
	colorOverlay    = color.RGBA{0, 0, 0, 128}
)

func (l *Level) draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	l.cam.follow(l.world.GetPlayerPosition().Point())

	names := l.deps.Config.Layers
	for _, name := range names.Background {
		l.drawLayer(screen, name, colorBackground)
	}
	l.drawLayer(screen, names.Platforms, colorPlatform)
	l.drawLayer(screen, names.Exit, colorExit)

	for _, id := range l.world.Pickups() {
		l.drawEntity(screen, id, colorGem)
	}
	for _, id := range l.world.Enemies() {
		l.drawEntity(screen, id, colorSkull)
	}
	if l.world.HasPlayer() {
		l.drawEntity(screen, l.world.PlayerID, colorPlayer)
	}

	for _, name := range names.Foreground {
		l.drawLayer(screen, name, colorForeground)
	}

	l.drawHUD(screen)
	if l.state.Is(state.StatePaused) {
		l.drawPauseOverlay(screen)
	}
}

func (l *Level) drawLayer(screen *ebiten.Image, name string, c color.Color) {
	layer, ok := l.tiles.TileLayer(name)
	if !ok || !layer.Visible && name != l.deps.Config.Layers.Exit {
		return
	}
	tw, th := float64(layer.TileWidth), float64(layer.TileHeight)
	layer.Each(func(tx, ty, _ int) {
		r := entity.Rect{X: float64(tx) * tw, Y: float64(ty) * th, W: tw, H: th}
		if !l.cam.visible(r) {
			return
		}
		x, y, w, h := l.cam.rect(r)
		ebitenutil.DrawRect(screen, x, y, w, h, c)
	})
}

func (l *Level) drawEntity(screen *ebiten.Image, id ecs.EntityID, c color.Color) {
	r := ecs.Bounds(l.world.Position[id], l.world.Size[id])
	if !l.cam.visible(r) {
		return
	}
	x, y, w, h := l.cam.rect(r)
	ebitenutil.DrawRect(screen, x, y, w, h, c)

	// facing marker
	if f, ok := l.world.Facing[id]; ok {
		mx := x + w - 2
		if !f.Right {
			mx = x
		}
		ebitenutil.DrawRect(screen, mx, y+h/4, 2, 2, colorBG)
	}
}

func (l *Level) drawHUD(screen *ebiten.Image) {
	hud := fmt.Sprintf("%s  Score: %d  Gems left: %d", l.cfg.Key, l.score, l.world.CountPickups())
	ebitenutil.DebugPrintAt(screen, hud, 4, 4)
}

func (l *Level) drawPauseOverlay(screen *ebiten.Image) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	ebitenutil.DrawRect(screen, 0, 0, float64(sw), float64(sh), colorOverlay)

	text := "PAUSED\n\nPress ESC to resume"
	ebitenutil.DebugPrintAt(screen, text, sw/2-50, sh/2-20)
}

// exitTiles counts the exit cells of a layer, for diagnostics.
func exitTiles(layer *tilemap.TileLayer) int {
	n := 0
	layer.Each(func(_, _, index int) {
		if entity.IsExitTile(index) {
			n++
		}
	})
	return n
}

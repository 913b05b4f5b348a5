package api

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"wavebreaker/internal/game"
)

// Preview frame dimensions. Square so the arena circle fills the frame.
const (
	PreviewWidth  = 720
	PreviewHeight = 720
)

// RenderPreview draws a top-down debug frame of a snapshot. The real
// client renders the scene itself; this exists so a browser tab or a
// curl can show what the simulation is doing without any client.
func RenderPreview(snap *game.GameSnapshot, width, height int) image.Image {
	dc := gg.NewContext(width, height)

	arenaRadius := snap.ArenaRadius
	if arenaRadius <= 0 {
		arenaRadius = 40.0
	}

	// World-to-screen: arena circle with a small margin
	cx := float64(width) / 2
	cy := float64(height) / 2
	scale := (math.Min(float64(width), float64(height))/2 - 20) / arenaRadius

	toScreen := func(x, z float64) (float64, float64) {
		return cx + x*scale, cy + z*scale
	}

	drawBackground(dc, width, height)

	// Arena boundary
	dc.SetColor(color.RGBA{60, 60, 90, 255})
	dc.SetLineWidth(2)
	dc.DrawCircle(cx, cy, arenaRadius*scale)
	dc.Stroke()

	// Spawn ring hint
	dc.SetColor(color.RGBA{40, 40, 60, 255})
	dc.SetLineWidth(1)
	dc.DrawCircle(cx, cy, 12.0*scale)
	dc.Stroke()

	for _, en := range snap.Enemies {
		drawEnemy(dc, en, toScreen, scale)
	}

	for _, proj := range snap.Projectiles {
		drawProjectile(dc, proj, toScreen)
	}

	drawPlayerMarker(dc, snap.Player, toScreen, scale, snap.GameOver)
	drawHUD(dc, snap, width)

	return dc.Image()
}

func drawBackground(dc *gg.Context, width, height int) {
	dc.SetColor(color.RGBA{12, 12, 28, 255})
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()
}

func drawEnemy(dc *gg.Context, en game.EnemySnapshot, toScreen func(x, z float64) (float64, float64), scale float64) {
	x, y := toScreen(en.X, en.Z)
	r := en.Radius * scale
	c := parseHexColor(en.Color)

	if en.State == "dead" {
		// Faded corpse during the cleanup grace period
		c.A = 70
		dc.SetColor(c)
		dc.DrawCircle(x, y, r)
		dc.Fill()
		return
	}

	dc.SetColor(c)
	dc.DrawCircle(x, y, r)
	dc.Fill()

	// Facing tick
	dc.SetColor(color.White)
	dc.SetLineWidth(2)
	dc.DrawLine(x, y, x+math.Sin(en.Yaw)*r*1.4, y+math.Cos(en.Yaw)*r*1.4)
	dc.Stroke()

	// HP bar
	if en.HP < en.MaxHP {
		frac := float64(en.HP) / float64(en.MaxHP)
		barW := r * 2
		dc.SetColor(color.RGBA{0, 0, 0, 160})
		dc.DrawRectangle(x-r, y-r-8, barW, 4)
		dc.Fill()
		dc.SetColor(color.RGBA{231, 76, 60, 255})
		dc.DrawRectangle(x-r, y-r-8, barW*frac, 4)
		dc.Fill()
	}
}

func drawProjectile(dc *gg.Context, proj game.ProjectileSnapshot, toScreen func(x, z float64) (float64, float64)) {
	x, y := toScreen(proj.X, proj.Z)
	c := parseHexColor(proj.Color)

	// Glow then core dot
	c.A = 90
	dc.SetColor(c)
	dc.DrawCircle(x, y, 6)
	dc.Fill()

	c.A = 255
	dc.SetColor(c)
	dc.DrawCircle(x, y, 3)
	dc.Fill()
}

func drawPlayerMarker(dc *gg.Context, p game.PlayerSnapshot, toScreen func(x, z float64) (float64, float64), scale float64, gameOver bool) {
	x, y := toScreen(p.X, p.Z)
	r := 0.8 * scale

	if p.IsDead || gameOver {
		dc.SetColor(color.RGBA{120, 120, 120, 200})
		dc.DrawCircle(x, y, r)
		dc.Fill()
		dc.SetColor(color.RGBA{231, 76, 60, 255})
		dc.SetLineWidth(3)
		dc.DrawLine(x-r, y-r, x+r, y+r)
		dc.DrawLine(x-r, y+r, x+r, y-r)
		dc.Stroke()
		return
	}

	dc.SetColor(color.RGBA{78, 205, 196, 255})
	dc.DrawCircle(x, y, r)
	dc.Fill()

	// Aim direction
	dc.SetColor(color.White)
	dc.SetLineWidth(2)
	dc.DrawLine(x, y, x+math.Sin(p.Yaw)*r*2, y+math.Cos(p.Yaw)*r*2)
	dc.Stroke()
}

func drawHUD(dc *gg.Context, snap *game.GameSnapshot, width int) {
	dc.SetColor(color.White)
	dc.DrawString(fmt.Sprintf("WAVE %d", snap.Wave.Number), 16, 28)
	dc.DrawString(fmt.Sprintf("HP %d/%d", snap.Player.HP, snap.Player.MaxHP), 16, 48)
	dc.DrawString(fmt.Sprintf("SCORE %d  KILLS %d", snap.Player.Score, snap.TotalKills), 16, 68)
	dc.DrawString(fmt.Sprintf("ENEMIES %d  QUEUED %d", snap.AliveEnemies, snap.Wave.Queued), 16, 88)

	if snap.GameOver {
		dc.SetColor(color.RGBA{231, 76, 60, 255})
		dc.DrawStringAnchored("GAME OVER", float64(width)/2, 40, 0.5, 0.5)
	}
}

func parseHexColor(hex string) color.RGBA {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{255, 255, 255, 255}
	}

	var r, g, b uint8
	fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	return color.RGBA{r, g, b, 255}
}

package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/combiner/clicker/internal/config"
	"github.com/combiner/clicker/internal/core/event"
	"github.com/combiner/clicker/internal/data"
	"github.com/combiner/clicker/internal/game"
	"github.com/combiner/clicker/internal/geom"
	"github.com/combiner/clicker/internal/hud"
	"github.com/combiner/clicker/internal/logging"
	"github.com/combiner/clicker/internal/platform"
	"github.com/combiner/clicker/internal/scripting"
	"github.com/combiner/clicker/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Machine catalog and economy scripts
	catalog, err := loadCatalog(cfg.Data)
	if err != nil {
		return err
	}
	log.Info("machine catalog loaded", zap.Int("kinds", catalog.Count()))

	lua, err := scripting.NewEngine(cfg.Data.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer lua.Close()
	econ := lua.GetEconomy()

	fmtr, err := hud.NewFormatter(cfg.Game.Language)
	if err != nil {
		return err
	}

	// 4. Session
	src := platform.NewSource(cfg.Window.Width, cfg.Window.Height)
	src.Panels = []image.Rectangle{shopPanel(len(catalog.All()))}
	g := game.New(game.Options{
		Config:  cfg,
		Catalog: catalog,
		Economy: econ,
		Source:  src,
		Log:     log,
	})
	game.Subscribe(g, func(e event.PlaceResult) {
		if e.Outcome != world.Placed {
			log.Debug("placement rejected", zap.Stringer("kind", e.Kind),
				zap.Stringer("tile", e.Tile), zap.Stringer("outcome", e.Outcome))
		}
	})

	a := &app{game: g, hud: fmtr, cfg: cfg}
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	log.Info("window open", zap.String("title", cfg.Window.Title), zap.String("lang", fmtr.Language().String()))
	if err := ebiten.RunGame(a); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	log.Info("session ended", zap.Stringer("balance", g.Balance()), zap.Duration("elapsed", g.Elapsed()))
	return nil
}

func loadCatalog(cfg config.DataConfig) (*data.MachineCatalog, error) {
	if cfg.CatalogPath == "" {
		c, err := data.DefaultMachineCatalog()
		if err != nil {
			return nil, fmt.Errorf("embedded catalog: %w", err)
		}
		return c, nil
	}
	c, err := data.LoadMachineCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return c, nil
}

// ---------- ebiten.Game ----------

const (
	lineHeight = 16
	shopX      = 8
	shopY      = 28
	shopWidth  = 220
)

var (
	gridColor    = color.RGBA{0x30, 0x30, 0x38, 0xff}
	spotColor    = color.RGBA{0x3c, 0x5a, 0x3c, 0xff}
	ghostColor   = color.RGBA{0x80, 0x80, 0xff, 0x60}
	coinColor    = color.RGBA{0xf0, 0xc8, 0x30, 0xff}
	machineColor = map[world.MachineKind]color.RGBA{
		world.Miner:         {0x8a, 0x6a, 0x4a, 0xff},
		world.Collector:     {0x40, 0xa0, 0x40, 0xff},
		world.ConveyorUp:    {0x70, 0x70, 0x70, 0xff},
		world.ConveyorDown:  {0x70, 0x70, 0x70, 0xff},
		world.ConveyorLeft:  {0x70, 0x70, 0x70, 0xff},
		world.ConveyorRight: {0x70, 0x70, 0x70, 0xff},
		world.Adder:         {0x40, 0x70, 0xc0, 0xff},
		world.Multiplier:    {0xc0, 0x50, 0x50, 0xff},
	}
)

func shopPanel(entries int) image.Rectangle {
	return image.Rect(0, 0, shopX+shopWidth, shopY+(entries+1)*lineHeight)
}

type app struct {
	game *game.Game
	hud  *hud.Formatter
	cfg  *config.Config
}

func (a *app) Update() error {
	a.handleKeys()
	a.game.Tick(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// handleKeys maps 1-9 to the shop entries, Escape to clearing the tool and
// Home to recentring the camera.
func (a *app) handleKeys() {
	specs := a.game.Catalog().All()
	for i, spec := range specs {
		if i >= 9 {
			break
		}
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			a.game.SelectTool(spec.Kind)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.game.ClearTool()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		a.game.Camera().ScrollTo(0, 0, 0.4, ease.OutCubic)
	}
}

func (a *app) Draw(screen *ebiten.Image) {
	cam := a.game.Camera()
	px := float32(world.TileSize * cam.Zoom)

	for _, s := range a.game.Spots() {
		if s.Hidden {
			continue
		}
		drawTile(screen, cam.WorldToScreen(s.Tile.Center()), px, spotColor, false)
	}
	for _, m := range a.game.Machines() {
		drawTile(screen, cam.WorldToScreen(m.Tile.Center()), px*0.9, machineColor[m.Kind], true)
	}
	if tile, ok := a.game.Ghost(); ok {
		drawTile(screen, cam.WorldToScreen(tile.Center()), px, ghostColor, true)
	}
	for _, c := range a.game.Coins() {
		p := cam.WorldToScreen(c.Pos)
		r := float32(40*cam.Zoom*c.Scale) + 1
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), r, coinColor, true)
	}
	a.drawHUD(screen)
}

func drawTile(dst *ebiten.Image, centre geom.Vec2, size float32, clr color.Color, filled bool) {
	x, y := float32(centre.X)-size/2, float32(centre.Y)-size/2
	if filled {
		vector.DrawFilledRect(dst, x, y, size, size, clr, false)
		return
	}
	vector.StrokeRect(dst, x, y, size, size, 2, clr, false)
	vector.StrokeRect(dst, x+size/4, y+size/4, size/2, size/2, 1, gridColor, false)
}

func (a *app) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, a.hud.Balance(a.game.Balance()), shopX, 8)
	entries := a.hud.Shop(a.game.Catalog().All(), a.game.Balance())
	for i, e := range entries {
		ebitenutil.DebugPrintAt(screen, a.hud.Line(e), shopX, shopY+i*lineHeight)
	}
	spec, ok := a.game.Catalog().Lookup(a.game.Tool())
	ebitenutil.DebugPrintAt(screen, a.hud.Tool(spec, ok), shopX, shopY+len(entries)*lineHeight)
}

func (a *app) Layout(_, _ int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

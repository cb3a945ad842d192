package main

import (
	"flag"
	"os"
	"time"

	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/player/validator"
	"github.com/KweezyCode/NoCheatPlus/settings"
	"github.com/KweezyCode/NoCheatPlus/worker"
	"github.com/KweezyCode/NoCheatPlus/world"
	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sandertv/gophertunnel/minecraft/protocol/packet"
	"github.com/sirupsen/logrus"
)

// The following program replays a scripted movement scenario through the validator and logs every result.
func main() {
	var (
		path     = flag.String("config", "ncp.toml", "settings file, created with the defaults if missing")
		scenario = flag.String("scenario", "fall", "scenario to replay: fall, hover, bunnyhop, glide or water")
		version  = flag.String("version", game.VersionLatest.String(), "client version of the simulated entity")
		debug    = flag.Bool("debug", false, "log envelope failures")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     false,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.Fatalf("error initialising sentry: %v", err)
		}
		defer sentry.Flush(time.Second * 5)
	}

	if _, err := os.Stat(*path); os.IsNotExist(err) {
		if err := settings.SaveDefault(*path); err != nil {
			log.Fatalf("error creating settings: %v", err)
		}
	}
	s, err := settings.Load(*path)
	if err != nil {
		log.Fatalf("error loading settings: %v", err)
	}
	v, err := game.ParseVersion(*version)
	if err != nil {
		log.Fatalf("error parsing version: %v", err)
	}

	if s.Debug.StatsAddr != "" {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(s.Debug.StatsAddr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	gen, ok := scenarios[*scenario]
	if !ok {
		log.Fatalf("unknown scenario %q", *scenario)
	}

	cache := newWorld(log)
	val, err := validator.New(cache, s, log, prometheus.DefaultRegisterer, nil)
	if err != nil {
		log.Fatalf("error creating validator: %v", err)
	}
	pool := worker.New(val, s.Workers.Count, log)

	id := uuid.New()
	var violations int
	done := make(chan struct{})
	reports := gen(id, v)
	for i, r := range reports {
		last := i == len(reports)-1
		err := pool.Submit(r, func(res validator.Result) {
			logResult(log, r, res)
			violations += len(res.Violations)
			if last {
				close(done)
			}
		})
		if err != nil {
			log.Fatalf("error submitting move: %v", err)
		}
	}
	<-done
	if err := pool.Disconnect(id); err != nil {
		log.Errorf("error disconnecting entity: %v", err)
	}
	pool.Close()

	log.WithFields(logrus.Fields{
		"scenario":   *scenario,
		"moves":      len(reports),
		"violations": violations,
		"cache":      cache.Stats(),
	}).Info("scenario replayed")
}

func logResult(log *logrus.Logger, r validator.MoveReport, res validator.Result) {
	entry := log.WithFields(logrus.Fields{
		"tick":    r.Tick,
		"outcome": res.Outcome,
		"y":       game.Round64(res.Record.YDistance, 5),
		"h":       game.Round64(res.Record.HDistance, 5),
		"medium":  res.To.Medium,
		"ground":  res.To.OnGround(),
	})
	if res.Record.BunnyHop {
		entry = entry.WithField("bunnyhop", true)
	}
	if res.LiquidPush != (mgl64.Vec3{}) {
		entry = entry.WithField("push", res.LiquidPush)
	}
	for _, d := range res.Diagnostics {
		entry.Debug(d.String())
	}
	if !res.Valid() {
		entry.WithField("violations", res.Violations).Warn("move broke envelope")
		return
	}
	entry.Info("move evaluated")
}

// newWorld returns a stone floor at y=63 with a water pool and an ice strip cut into it.
func newWorld(log *logrus.Logger) *world.ShapeCache {
	w := world.New(world.OverworldRange, log)
	cache := world.NewShapeCache(w, block.Vanilla())
	w.Subscribe(cache)

	w.Fill(cube.Pos{-16, 63, -16}, cube.Pos{16, 63, 16}, block.State{Name: "minecraft:stone"})
	w.Fill(cube.Pos{4, 60, -2}, cube.Pos{8, 63, 2}, block.State{Name: "minecraft:water"})
	w.Fill(cube.Pos{3, 59, -3}, cube.Pos{9, 59, 3}, block.State{Name: "minecraft:stone"})
	w.Fill(cube.Pos{-8, 63, -1}, cube.Pos{-4, 63, 1}, block.State{Name: "minecraft:ice"})
	return cache
}

type generator func(id uuid.UUID, v game.ClientVersion) []validator.MoveReport

var scenarios = map[string]generator{
	"fall":     fallScenario,
	"hover":    hoverScenario,
	"bunnyhop": bunnyhopScenario,
	"glide":    glideScenario,
	"water":    waterScenario,
}

func newReport(id uuid.UUID, v game.ClientVersion, tick uint64, from, to mgl64.Vec3) validator.MoveReport {
	return validator.MoveReport{
		Entity:   id,
		Tick:     tick,
		From:     from,
		To:       to,
		GameMode: packet.GameTypeSurvival,
		Version:  v,
		Width:    0.6,
		Height:   1.8,
	}
}

// replay turns a list of per-tick velocities into reports starting at pos.
func replay(id uuid.UUID, v game.ClientVersion, pos mgl64.Vec3, velocities []mgl64.Vec3, edit func(*validator.MoveReport)) []validator.MoveReport {
	var out []validator.MoveReport
	for i, vel := range velocities {
		next := pos.Add(vel)
		r := newReport(id, v, uint64(i+1), pos, next)
		if edit != nil {
			edit(&r)
		}
		out = append(out, r)
		pos = next
	}
	return out
}

func fallScenario(id uuid.UUID, v game.ClientVersion) []validator.MoveReport {
	var (
		vel []mgl64.Vec3
		y   float64
	)
	for i := 0; i < 15; i++ {
		y = (y - game.DefaultGravity) * game.GravityMultiplier
		vel = append(vel, mgl64.Vec3{0, y, 0})
	}
	return replay(id, v, mgl64.Vec3{0.5, 72, 0.5}, vel, nil)
}

func hoverScenario(id uuid.UUID, v game.ClientVersion) []validator.MoveReport {
	vel := make([]mgl64.Vec3, 8)
	for i := range vel {
		vel[i] = mgl64.Vec3{0.1, 0, 0}
	}
	return replay(id, v, mgl64.Vec3{0.5, 70, 0.5}, vel, nil)
}

func bunnyhopScenario(id uuid.UUID, v game.ClientVersion) []validator.MoveReport {
	var (
		out  []validator.MoveReport
		pos  = mgl64.Vec3{-12.5, 64, 0.5}
		tick uint64
	)
	move := func(d mgl64.Vec3) {
		tick++
		next := pos.Add(d)
		next[1] = max(next[1], 64)
		r := newReport(id, v, tick, pos, next)
		r.Sprinting = true
		r.ClientOnGround = next[1] == 64
		out = append(out, r)
		pos = next
	}
	move(mgl64.Vec3{0.2, 0, 0})
	for hop := 0; hop < 3; hop++ {
		for y := game.DefaultJumpMotion; ; y = (y - game.DefaultGravity) * game.GravityMultiplier {
			move(mgl64.Vec3{0.35, y, 0})
			if pos[1] == 64 {
				break
			}
		}
		move(mgl64.Vec3{0.25, 0, 0})
	}
	return out
}

func glideScenario(id uuid.UUID, v game.ClientVersion) []validator.MoveReport {
	vel := make([]mgl64.Vec3, 10)
	for i := range vel {
		vel[i] = mgl64.Vec3{0.4 + 0.03*float64(i), -0.1 - 0.005*float64(i), 0}
	}
	return replay(id, v, mgl64.Vec3{-10.5, 90, 5.5}, vel, func(r *validator.MoveReport) {
		r.Gliding = true
	})
}

func waterScenario(id uuid.UUID, v game.ClientVersion) []validator.MoveReport {
	vel := make([]mgl64.Vec3, 12)
	for i := range vel {
		vel[i] = mgl64.Vec3{0, -0.02, 0.05}
	}
	return replay(id, v, mgl64.Vec3{6.5, 62.5, -1.5}, vel, func(r *validator.MoveReport) {
		r.Effects = validator.Effects{packet.EffectSpeed: 1}
	})
}

package game

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/deadwars/internal/entity"
	"github.com/samdwyer/deadwars/internal/geom"
	"github.com/samdwyer/deadwars/internal/logger"
	"github.com/samdwyer/deadwars/internal/telemetry"
	"github.com/samdwyer/deadwars/internal/world"
)

// Game holds the state of one play session: the map, its units, the camera
// and the turn machine. It is not safe for concurrent use; frontends drive it
// from a single goroutine.
type Game struct {
	cfg     Config
	grid    *world.Grid
	units   *entity.Registry
	camera  *Camera
	machine *Machine

	log       logrus.FieldLogger
	tracer    trace.Tracer
	sessionID string
	ticks     uint64
	paused    bool
}

// Option customizes a Game.
type Option func(*Game)

// WithLogger sets the logger. Defaults to logger.Log.
func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Game) { g.log = l }
}

// WithTracer sets the tracer used for turn spans.
func WithTracer(t trace.Tracer) Option {
	return func(g *Game) { g.tracer = t }
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(g *Game) { g.sessionID = id }
}

// New creates a session over grid and units.
func New(cfg Config, grid *world.Grid, units *entity.Registry, opts ...Option) *Game {
	g := &Game{
		cfg:       cfg,
		grid:      grid,
		units:     units,
		camera:    NewCamera(cfg.ScrollSpeed),
		log:       logger.Log,
		tracer:    telemetry.Tracer("game"),
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.WithField("session", g.sessionID)

	g.machine = NewMachine(units, g.camera, MachineOptions{
		Mapper: g.Mapper(),
		Bounds: grid.Contains,
		Menu: MenuLayout{
			TopLeft:   cfg.MenuAnchor,
			Width:     cfg.MenuWidth,
			RowHeight: cfg.MenuRowHeight,
		},
	})

	g.log.WithFields(logrus.Fields{
		"width":  grid.Width,
		"height": grid.Height,
		"units":  units.Len(),
	}).Info("session started")
	return g
}

// SetFocus pauses the session while its window is in the background. A paused
// session ignores input and does not tick. Losing focus releases every held
// scroll key, since their key-up events go to another window.
func (g *Game) SetFocus(focused bool) {
	if focused == !g.paused {
		return
	}
	g.paused = !focused
	if g.paused {
		g.camera.ReleaseAll()
		g.log.WithField("ticks", g.ticks).Info("session paused")
		return
	}
	g.log.WithField("ticks", g.ticks).Info("session resumed")
}

// Paused reports whether the session is waiting for focus.
func (g *Game) Paused() bool {
	return g.paused
}

// HandleEvent feeds one input event to the camera and the turn machine.
func (g *Game) HandleEvent(ctx context.Context, ev Event) Transition {
	if g.paused {
		return g.machine.unchanged()
	}
	switch ev := ev.(type) {
	case KeyDown:
		g.camera.KeyDown(ev.Key)
	case KeyUp:
		g.camera.KeyUp(ev.Key)
	}
	t := g.machine.HandleEvent(ev)
	g.observe(ctx, t)
	return t
}

// Tick runs one update: scroll, re-evaluate the pointer if the view moved,
// then advance the active move.
func (g *Game) Tick(ctx context.Context) Transition {
	if g.paused {
		return g.machine.unchanged()
	}
	g.ticks++
	if g.camera.Tick() {
		g.observe(ctx, g.machine.Rescan())
	}
	t := g.machine.Tick()
	g.observe(ctx, t)
	return t
}

// observe logs phase changes and traces move outcomes.
func (g *Game) observe(ctx context.Context, t Transition) {
	if !t.Changed() && !t.Committed && !t.Undone {
		return
	}

	fields := logrus.Fields{
		"phase_from": t.From.String(),
		"phase_to":   t.To.String(),
		"unit":       t.Unit,
		"ticks":      g.ticks,
	}
	if t.Changed() {
		g.log.WithFields(fields).Debug("turn phase changed")
	}

	attrs := []attribute.KeyValue{
		attribute.Int64("unit.id", int64(t.Unit)),
		attribute.String("phase.from", t.From.String()),
		attribute.Int64("game.ticks", int64(g.ticks)),
	}
	if u, ok := g.units.Unit(t.Unit); ok {
		attrs = append(attrs,
			attribute.String("unit.kind", u.Kind.ID()),
			attribute.Int("unit.x", u.Pos.X),
			attribute.Int("unit.y", u.Pos.Y),
		)
	}

	switch {
	case t.Engagement != nil:
		e := t.Engagement
		attrs = append(attrs, attribute.Int64("target.id", int64(e.Target)))
		_, span := g.tracer.Start(ctx, "turn.engage", trace.WithAttributes(attrs...))
		span.End()
		g.log.WithFields(fields).WithField("target", e.Target).Info("engagement declared")
	case t.Committed:
		_, span := g.tracer.Start(ctx, "turn.move", trace.WithAttributes(attrs...))
		span.End()
		g.log.WithFields(fields).Info("move committed")
	case t.Undone:
		_, span := g.tracer.Start(ctx, "turn.undo", trace.WithAttributes(attrs...))
		span.End()
		g.log.WithFields(fields).Info("move undone")
	}
}

// Hints returns what to draw for the current turn state.
func (g *Game) Hints() Hints {
	return g.machine.Hints()
}

// Grid returns the map.
func (g *Game) Grid() *world.Grid {
	return g.grid
}

// Units returns the unit registry. Callers must not mutate it.
func (g *Game) Units() *entity.Registry {
	return g.units
}

// Offset returns the camera translation.
func (g *Game) Offset() geom.Vec {
	return g.camera.Offset()
}

// Phase returns the current turn phase.
func (g *Game) Phase() Phase {
	return g.machine.Phase()
}

// Ticks returns how many update ticks have run.
func (g *Game) Ticks() uint64 {
	return g.ticks
}

// SessionID identifies this session in logs and traces.
func (g *Game) SessionID() string {
	return g.sessionID
}

// Config returns the session configuration.
func (g *Game) Config() Config {
	return g.cfg
}

// Mapper returns the screen/grid mapper for the configured tile size.
func (g *Game) Mapper() geom.Mapper {
	return geom.Mapper{TileSize: g.cfg.TileSize}
}

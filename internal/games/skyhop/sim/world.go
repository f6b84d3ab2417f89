package sim

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/games/skyhop/physics"
)

const (
	maxSubstep    = 0.08 // Longest player move between two contact queries
	hurtCooldown  = 0.5  // Seconds of immunity after an enemy hit
	knockbackTime = 0.25 // Seconds the knockback overrides steering
	pickupLift    = 1.2  // Pickup height above its platform top
	windowSlack   = 4.0  // Extra physics window height above the lookahead
)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithGeneration switches procedural generation. Without it a run starts
// with only the start platform and callers place entities themselves.
func WithGeneration(enabled bool) Option {
	return func(w *World) {
		w.generate = enabled
	}
}

// WithRand replaces the seeded random source of the generator.
func WithRand(r Rand) Option {
	return func(w *World) {
		w.customRand = r
	}
}

// World is one run of the simulation. All state is owned by the World and
// mutated only from Step.
type World struct {
	cfg        config.SkyhopConfig
	dt         float64
	seed       int64
	logger     *log.Logger
	generate   bool
	customRand Rand

	catalog   *Catalog
	curve     *config.DifficultyCurve
	behaviors map[Category]PlatformBehavior

	sched      *Scheduler
	space      *physics.Space
	resolver   *CollisionResolver
	jump       *AutoJumpController
	powerups   *PowerUpCoordinator
	activation *EnemyActivation
	gen        *Generator

	nextID    EntityID
	player    *Player
	platforms []*Platform
	enemies   []*Enemy
	pickups   []*Pickup
	camera    Camera
	score     Score
	events    []Event

	knockback float64
	hurt      float64
	defeated  int
	collected int
	over      bool
	won       bool
}

// NewWorld creates a world and starts a run with the given seed.
func NewWorld(cfg config.SkyhopConfig, seed int64, dt float64, opts ...Option) *World {
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	w := &World{
		cfg:       cfg,
		dt:        dt,
		logger:    discardLogger(),
		generate:  true,
		behaviors: defaultBehaviors(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.catalog = NewCatalog(cfg.Generator.Catalog)
	w.curve = config.NewDifficultyCurve(cfg.Difficulty)
	w.Reset(seed)
	return w
}

// Reset discards every entity, timer, attachment and power-up and rebuilds
// the run from scratch.
func (w *World) Reset(seed int64) {
	w.seed = seed
	cfg := w.cfg

	var rng Rand = rand.New(rand.NewSource(seed)) //#nosec G404 -- gameplay randomness, not security
	if w.customRand != nil {
		rng = w.customRand
	}

	w.nextID = NoEntity
	w.platforms = nil
	w.enemies = nil
	w.pickups = nil
	w.events = nil
	w.knockback, w.hurt = 0, 0
	w.defeated, w.collected = 0, 0
	w.over, w.won = false, false

	startY := 0.0
	w.player = &Player{
		BaseJumpForce: cfg.Player.JumpForce,
		BaseMoveSpeed: cfg.Player.MoveSpeed,
		JumpForce:     cfg.Player.JumpForce,
		MoveSpeed:     cfg.Player.MoveSpeed,
		Facing:        1,
	}
	w.player.ID = w.allocID()
	w.player.Box = core.NewBox(core.V(0, startY+cfg.Platforms.Height/2+cfg.Player.Height/2), cfg.Player.Width, cfg.Player.Height)

	w.camera = Camera{
		Y:          w.player.Box.Center.Y - cfg.Camera.StartOffset,
		ViewHeight: cfg.Camera.ViewHeight,
		HalfWidth:  cfg.Generator.LevelWidth + cfg.Generator.WrapMargin,
	}
	w.score = NewScore(w.player.Box.Center.Y, cfg.Score.HeightMultiplier)

	halfW := cfg.Generator.LevelWidth + cfg.Generator.WrapMargin + cfg.Generator.MovingDistance.MaxMax + 2
	height := cfg.Camera.ViewHeight + cfg.Camera.DestroyMargin + cfg.Generator.Lookahead +
		2*cfg.Generator.Gap.MaxMax + cfg.Enemies.FlyHeight + windowSlack
	w.space = physics.NewSpace(2*halfW, height, w.windowOrigin(), cfg.Physics.CellSize)
	if err := w.space.Add(physics.BodyID(w.player.ID), physics.KindPlayer, w.player.Box); err != nil {
		w.logger.Error("cannot add player body", "err", err)
	}

	w.sched = NewScheduler(w.dt)
	w.resolver = NewCollisionResolver(cfg.Collision, w.space, w.sched, w.logger, w.emit)
	w.jump = NewAutoJumpController(w.player, w.emit)
	w.powerups = NewPowerUpCoordinator(cfg.PowerUps, w.player, w.allocID, w.logger, w.emit)
	w.activation = NewEnemyActivation(cfg.Enemies.ActivationMargin, w.toggleEnemy)
	w.gen = NewGenerator(cfg, w.catalog, w.curve, rng, w.logger)

	if w.generate {
		for _, s := range w.gen.Seed(startY, w.camera.Top()) {
			w.spawn(s)
		}
	} else {
		w.AddPlatform(DefaultPrefab, core.V(0, startY), nil)
	}
	w.events = nil

	w.logger.Debug("run started", "seed", seed, "platforms", len(w.platforms))
}

func (w *World) allocID() EntityID {
	w.nextID++
	return w.nextID
}

// emit records an event for the current tick. The first grounding also
// starts the camera.
func (w *World) emit(e Event) {
	if e.Type == EventCameraFollow {
		w.camera.Begin(w.player.Box.Center.Y)
	}
	w.events = append(w.events, e)
}

// windowOrigin is the bottom of the physics window, just below the line
// where entities are destroyed.
func (w *World) windowOrigin() float64 {
	return w.camera.Bottom() - w.cfg.Camera.DestroyMargin - 1
}

// Step advances the simulation by one fixed tick and returns the events of
// that tick. The returned slice is owned by the caller.
func (w *World) Step(in core.InputFrame) []Event {
	w.events = nil
	if w.over {
		return nil
	}

	w.sched.Advance()
	w.powerups.Tick(w.dt)
	w.updatePlatforms()
	w.updateEnemies()
	w.handleAttack(in)
	w.updatePlayer(in.Axis)

	w.camera.Follow(w.player.Box.Center.Y)
	w.score.Observe(w.player.Box.Center.Y)
	w.cleanup()
	w.space.Recenter(w.windowOrigin())
	if w.generate {
		for _, s := range w.gen.Fill(w.camera.Top(), w.sched.Tick()) {
			w.spawn(s)
		}
	}
	w.checkEnd()

	events := w.events
	w.events = nil
	return events
}

func (w *World) updatePlatforms() {
	for _, p := range append([]*Platform(nil), w.platforms...) {
		if b, ok := w.behaviors[p.Category]; ok {
			b.Update(w, p, w.dt)
		}
	}
}

// movePlatform translates a platform and its body.
func (w *World) movePlatform(p *Platform, delta core.Vec2) {
	p.Box = p.Box.Moved(delta)
	w.space.SetBox(physics.BodyID(p.ID), p.Box)
	w.space.SetVelocity(physics.BodyID(p.ID), p.Velocity)
}

// carryPlayer moves the player along with the platform it rides.
func (w *World) carryPlayer(delta core.Vec2) {
	w.player.Box = w.player.Box.Moved(delta)
	w.syncPlayer()
}

func (w *World) syncPlayer() {
	w.space.SetBox(physics.BodyID(w.player.ID), w.player.Box)
	w.space.SetVelocity(physics.BodyID(w.player.ID), w.player.Velocity)
}

func (w *World) updateEnemies() {
	view := w.camera.View()
	for _, e := range w.enemies {
		w.activation.Update(e, view)
		if e.Kind == EnemyGround {
			if home := w.Platform(e.Home); home != nil {
				e.Box.Center.X += home.Box.Center.X - e.AnchorX
				e.AnchorX = home.Box.Center.X
				e.Box.Center.Y = home.Box.Top() + e.Box.Half.Y
			}
		}
		MoveEnemy(e, w.dt)
		if e.HasBody {
			w.space.SetBox(physics.BodyID(e.ID), e.Box)
			w.space.SetVelocity(physics.BodyID(e.ID), e.Velocity)
		}
	}
}

func (w *World) toggleEnemy(e *Enemy, active bool) {
	if e.HasBody {
		w.space.SetEnabled(physics.BodyID(e.ID), active)
	}
}

func (w *World) handleAttack(in core.InputFrame) {
	pl := w.player
	pl.AttackCooldown = math.Max(pl.AttackCooldown-w.dt, 0)
	if !in.Has(core.ActionAttack) || pl.AttackCooldown > 0 {
		return
	}
	pl.AttackCooldown = w.cfg.Player.AttackCooldown

	var hit []*Enemy
	for _, e := range w.enemies {
		if e.Activation == Active && !e.Defeated && e.Box.Center.Dist(pl.Box.Center) <= w.cfg.Player.AttackRange {
			hit = append(hit, e)
		}
	}
	for _, e := range hit {
		w.defeatEnemy(e)
	}
}

func (w *World) updatePlayer(axis float64) {
	pl := w.player
	if axis != 0 {
		pl.Facing = core.Sign(axis)
	}
	if w.knockback > 0 {
		w.knockback -= w.dt
	} else {
		pl.Velocity.X = core.ClampF(axis, -1, 1) * pl.MoveSpeed
	}
	w.hurt = math.Max(w.hurt-w.dt, 0)

	if w.powerups.Ascending() {
		pl.Velocity.Y = w.cfg.PowerUps.AscentSpeed
	} else {
		pl.Velocity.Y = math.Max(pl.Velocity.Y-w.cfg.Physics.Gravity*w.dt, -w.cfg.Physics.MaxFallSpeed)
	}

	w.jump.BeginTick()
	w.movePlayer()
	w.jump.EndTick()
	w.wrapPlayer()
}

// movePlayer integrates the player in substeps short enough that a fall
// cannot skip a platform, querying contacts after each one.
func (w *World) movePlayer() {
	pl := w.player
	disp := pl.Velocity.Scale(w.dt)
	steps := int(math.Ceil(math.Max(math.Abs(disp.X), math.Abs(disp.Y)) / maxSubstep))
	if steps < 1 {
		steps = 1
	}
	sub := w.dt / float64(steps)

	for i := 0; i < steps && !w.over; i++ {
		pl.Box = pl.Box.Moved(pl.Velocity.Scale(sub))
		w.syncPlayer()
		w.resolveContacts()
	}
}

func (w *World) resolveContacts() {
	landed := false
	for _, c := range w.space.Contacts(physics.BodyID(w.player.ID)) {
		id := EntityID(c.Other)
		switch c.OtherKind {
		case physics.KindPlatform:
			if p := w.Platform(id); p != nil && !landed {
				landed = w.contactPlatform(p, c)
			}
		case physics.KindEnemy:
			if e := w.Enemy(id); e != nil {
				stomp := w.resolver.Classify(c) == ContactLanding && w.player.Velocity.Y <= 0
				w.contactEnemy(e, stomp)
			}
		case physics.KindPickup:
			w.collectPickup(id)
		}
	}

	// Enemies the physics window refused are checked by plain overlap
	for _, e := range append([]*Enemy(nil), w.enemies...) {
		if e.HasBody || e.Activation != Active || e.Defeated || !e.Box.Intersects(w.player.Box) {
			continue
		}
		stomp := w.player.Velocity.Y <= 0 && w.player.Box.Bottom() >= e.Box.Center.Y
		w.contactEnemy(e, stomp)
	}
}

// contactPlatform handles one player contact with a platform and reports
// whether it was a landing. Landings only count while falling, so platforms
// are one-way from below.
func (w *World) contactPlatform(p *Platform, c physics.Contact) bool {
	class := w.resolver.Resolve(c)
	if class != ContactLanding || w.player.Velocity.Y > 0 {
		return false
	}

	if b, ok := w.behaviors[p.Category]; ok {
		b.Landed(w, p, c)
	}

	pl := w.player
	pl.Box.Center.Y = p.Box.Top() + pl.Box.Half.Y
	pl.Velocity.Y = 0
	w.jump.Land(p)
	w.syncPlayer()
	return true
}

func (w *World) contactEnemy(e *Enemy, stomp bool) {
	if e.Defeated {
		return
	}
	if stomp {
		w.defeatEnemy(e)
		w.jump.Bounce()
		w.emit(Event{Type: EventJumped, Entity: e.ID})
		w.syncPlayer()
		return
	}
	if w.hurt > 0 {
		return
	}

	pl := w.player
	w.hurt = hurtCooldown
	w.knockback = knockbackTime
	dir := core.Sign(pl.Box.Center.X - e.Box.Center.X)
	if dir == 0 {
		dir = -pl.Facing
	}
	pl.Velocity.X = dir * w.cfg.Player.KnockbackSpeed
	pl.Velocity.Y = math.Min(pl.Velocity.Y, 0)
	w.emit(Event{Type: EventPlayerHit, Entity: e.ID})
	w.syncPlayer()
}

func (w *World) defeatEnemy(e *Enemy) {
	e.Defeated = true
	w.defeated++
	w.score.AddBonus(w.cfg.Score.EnemyBonus)
	w.emit(Event{Type: EventEnemyDefeated, Entity: e.ID})
	w.destroyEnemy(e.ID)
}

func (w *World) collectPickup(id EntityID) {
	pk := w.Pickup(id)
	if pk == nil || pk.Collected {
		return
	}
	pk.Collected = true
	w.collected++
	w.destroyPickup(id)
	w.powerups.ActivateDefault(pk.Type)
}

func (w *World) wrapPlayer() {
	limit := w.cfg.Generator.LevelWidth + w.cfg.Generator.WrapMargin
	x := w.player.Box.Center.X
	switch {
	case x > limit:
		x -= 2 * limit
	case x < -limit:
		x += 2 * limit
	default:
		return
	}
	w.player.Box.Center.X = x
	w.syncPlayer()
}

// cleanup destroys everything that fell below the destroy line.
func (w *World) cleanup() {
	line := w.camera.Bottom() - w.cfg.Camera.DestroyMargin

	var gone []EntityID
	for _, p := range w.platforms {
		if p.Box.Top() < line {
			gone = append(gone, p.ID)
		}
	}
	for _, id := range gone {
		w.destroyPlatform(id)
	}

	gone = gone[:0]
	for _, e := range w.enemies {
		if e.Box.Top() < line {
			gone = append(gone, e.ID)
		}
	}
	for _, id := range gone {
		w.destroyEnemy(id)
	}

	gone = gone[:0]
	for _, pk := range w.pickups {
		if pk.Box.Top() < line {
			gone = append(gone, pk.ID)
		}
	}
	for _, id := range gone {
		w.destroyPickup(id)
	}
}

func (w *World) checkEnd() {
	pl := w.player
	if pl.Box.Bottom() < w.camera.Bottom()-w.cfg.Camera.GameOverMargin {
		w.over = true
		w.emit(Event{Type: EventGameOver, Entity: pl.ID})
		w.logger.Info("run over", "score", w.score.Value(), "height", w.score.MaxHeight(), "ticks", w.sched.Tick())
		return
	}
	if w.generate && w.gen.Done() && pl.Box.Center.Y > w.gen.LastY()+w.cfg.Generator.SummitMargin {
		w.over = true
		w.won = true
		w.emit(Event{Type: EventSummit, Entity: pl.ID})
		w.logger.Info("summit reached", "score", w.score.Value(), "ticks", w.sched.Tick())
	}
}

// spawn turns a generator spawn into entities.
func (w *World) spawn(s PlatformSpawn) {
	p := w.AddPlatform(s.Prefab, s.Center, s.Movement)
	if p == nil {
		return
	}
	p.Index = s.Index
	if s.HasEnemy {
		w.AddEnemy(s.EnemyKind, p)
	}
	if s.PowerUp != PowerUpNone {
		w.AddPickup(s.PowerUp, p)
	}
}

// AddPlatform places a platform. It returns nil when the physics window
// refuses the body.
func (w *World) AddPlatform(prefab Prefab, center core.Vec2, m *Movement) *Platform {
	p := &Platform{
		ID:       w.allocID(),
		Index:    len(w.platforms),
		Prefab:   prefab.Name,
		Category: prefab.Category,
		Box:      core.NewBox(center, prefab.Width, w.cfg.Platforms.Height),
		OriginX:  center.X,
		Alpha:    1,
	}
	if prefab.Category.IsMoving() {
		if m == nil {
			m = &Movement{Speed: w.cfg.Generator.MovingSpeed.Min, Distance: w.cfg.Generator.MovingDistance.Min, Direction: 1}
		}
		p.Movement = m
		p.Velocity = core.V(m.Direction*m.Speed, 0)
	}

	if err := w.space.Add(physics.BodyID(p.ID), physics.KindPlatform, p.Box); err != nil {
		w.logger.Warn("platform dropped", "platform", p.ID, "err", err)
		return nil
	}
	w.space.SetVelocity(physics.BodyID(p.ID), p.Velocity)
	w.platforms = append(w.platforms, p)
	return p
}

// AddEnemy spawns an enemy on a platform. When the physics window refuses
// its body the enemy still moves by translation and hits by overlap.
func (w *World) AddEnemy(kind EnemyKind, home *Platform) *Enemy {
	ec := w.cfg.Enemies
	e := &Enemy{
		ID:         w.allocID(),
		Kind:       kind,
		Activation: Dormant,
		Home:       home.ID,
		Dir:        1,
		SpeedScale: 1,
	}

	center := core.V(home.Box.Center.X, home.Box.Top()+ec.Height/2)
	e.Range = math.Max(home.Box.Half.X-ec.Width/2, 0)
	e.BaseSpeed = ec.GroundSpeed
	if kind == EnemyFlying {
		center = core.V(home.Box.Center.X, home.Box.Center.Y+ec.FlyHeight)
		e.Range = ec.FlyRange
		e.BaseSpeed = ec.FlySpeed
	}
	e.Box = core.NewBox(center, ec.Width, ec.Height)
	e.AnchorX = center.X
	e.Velocity = core.V(e.BaseSpeed, 0)

	if err := w.space.Add(physics.BodyID(e.ID), physics.KindEnemy, e.Box); err != nil {
		w.logger.Warn("enemy has no body, falling back to translation", "enemy", e.ID, "err", err)
	} else {
		e.HasBody = true
		w.space.SetEnabled(physics.BodyID(e.ID), false)
	}

	w.powerups.RegisterEnemy(e)
	w.enemies = append(w.enemies, e)
	return e
}

// AddPickup places a power-up pickup above a platform. It returns nil when
// the physics window refuses the body.
func (w *World) AddPickup(t PowerUpType, home *Platform) *Pickup {
	size := w.cfg.PowerUps.Size
	pk := &Pickup{
		ID:   w.allocID(),
		Type: t,
		Box:  core.NewBox(core.V(home.Box.Center.X, home.Box.Top()+pickupLift), size, size),
	}
	if err := w.space.Add(physics.BodyID(pk.ID), physics.KindPickup, pk.Box); err != nil {
		w.logger.Debug("pickup dropped", "pickup", pk.ID, "err", err)
		return nil
	}
	w.pickups = append(w.pickups, pk)
	return pk
}

// destroyPlatform removes a platform and cancels its deferred actions.
func (w *World) destroyPlatform(id EntityID) {
	for i, p := range w.platforms {
		if p.ID != id {
			continue
		}
		w.platforms = append(w.platforms[:i], w.platforms[i+1:]...)
		w.sched.CancelOwner(id)
		w.resolver.Forget(id)
		w.jump.Detach(id)
		w.space.Remove(physics.BodyID(id))
		return
	}
}

func (w *World) destroyEnemy(id EntityID) {
	for i, e := range w.enemies {
		if e.ID != id {
			continue
		}
		w.enemies = append(w.enemies[:i], w.enemies[i+1:]...)
		w.sched.CancelOwner(id)
		w.powerups.UnregisterEnemy(id)
		w.space.Remove(physics.BodyID(id))
		return
	}
}

func (w *World) destroyPickup(id EntityID) {
	for i, pk := range w.pickups {
		if pk.ID != id {
			continue
		}
		w.pickups = append(w.pickups[:i], w.pickups[i+1:]...)
		w.space.Remove(physics.BodyID(id))
		return
	}
}

// Platform returns a live platform by id, or nil.
func (w *World) Platform(id EntityID) *Platform {
	for _, p := range w.platforms {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Enemy returns a live enemy by id, or nil.
func (w *World) Enemy(id EntityID) *Enemy {
	for _, e := range w.enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Pickup returns a live pickup by id, or nil.
func (w *World) Pickup(id EntityID) *Pickup {
	for _, pk := range w.pickups {
		if pk.ID == id {
			return pk
		}
	}
	return nil
}

// Player returns the player. Callers outside Step must not mutate it.
func (w *World) Player() *Player { return w.player }

// Platforms returns the live platforms in spawn order.
func (w *World) Platforms() []*Platform { return w.platforms }

// Enemies returns the live enemies in spawn order.
func (w *World) Enemies() []*Enemy { return w.enemies }

// Pickups returns the live pickups in spawn order.
func (w *World) Pickups() []*Pickup { return w.pickups }

// Camera returns a copy of the camera.
func (w *World) Camera() Camera { return w.camera }

// Score returns the current score value.
func (w *World) Score() int { return w.score.Value() }

// MaxHeight returns the best height reached above the start.
func (w *World) MaxHeight() float64 { return w.score.MaxHeight() }

// PowerUps returns the power-up coordinator for read-only display.
func (w *World) PowerUps() *PowerUpCoordinator { return w.powerups }

// Resolver returns the collision resolver.
func (w *World) Resolver() *CollisionResolver { return w.resolver }

// Difficulty returns the latched generator difficulty.
func (w *World) Difficulty() float64 { return w.gen.Difficulty() }

// Generated returns how many platforms the generator produced.
func (w *World) Generated() int { return w.gen.Count() }

// Ticks returns the number of simulated ticks.
func (w *World) Ticks() int { return w.sched.Tick() }

// Time returns the simulated time in seconds.
func (w *World) Time() float64 { return w.sched.Now() }

// Seed returns the seed of the current run.
func (w *World) Seed() int64 { return w.seed }

// EnemiesDefeated returns how many enemies the player defeated.
func (w *World) EnemiesDefeated() int { return w.defeated }

// PickupsCollected returns how many pickups the player collected.
func (w *World) PickupsCollected() int { return w.collected }

// Over reports whether the run has ended.
func (w *World) Over() bool { return w.over }

// Won reports whether the run ended at the summit.
func (w *World) Won() bool { return w.won }

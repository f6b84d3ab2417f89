package skyhop

import (
	"math"

	"github.com/vovakirdan/skyhop/internal/games/skyhop/sim"
)

// snapshotScale quantizes world positions to thousandths of a unit.
const snapshotScale = 1000

// Snapshot contains the observable game state for replay checks and
// determinism tests. Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick    uint64
	Score   int
	State   string
	Mode    int // 0=Campaign, 1=Endless
	Seed    int64
	CameraY int

	// Player: X, Y, VX, VY, JumpState
	PlayerData []int

	PowerUp          int
	PowerUpRemaining int // Milliseconds

	// Each platform is 5 ints: ID, Category, X, Y, Flags (1=landed 2=breaking 4=broken 8=fading)
	PlatformCount int
	PlatformData  []int

	// Each enemy is 5 ints: ID, Kind, X, Y, Active
	EnemyCount int
	EnemyData  []int

	// Each pickup is 4 ints: ID, Type, X, Y
	PickupCount int
	PickupData  []int
}

func quantize(v float64) int {
	return int(math.Round(v * snapshotScale))
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	pl := w.Player()

	platforms := w.Platforms()
	platformData := make([]int, 0, len(platforms)*5)
	for _, p := range platforms {
		flags := 0
		if p.LandedOn {
			flags |= 1
		}
		if p.Breaking {
			flags |= 2
		}
		if p.Broken {
			flags |= 4
		}
		if p.Fading {
			flags |= 8
		}
		platformData = append(platformData, int(p.ID), int(p.Category), quantize(p.Box.Center.X), quantize(p.Box.Center.Y), flags) //#nosec G115 -- ids stay small
	}

	enemies := w.Enemies()
	enemyData := make([]int, 0, len(enemies)*5)
	for _, e := range enemies {
		active := 0
		if e.Activation == sim.Active {
			active = 1
		}
		enemyData = append(enemyData, int(e.ID), int(e.Kind), quantize(e.Box.Center.X), quantize(e.Box.Center.Y), active) //#nosec G115 -- ids stay small
	}

	pickups := w.Pickups()
	pickupData := make([]int, 0, len(pickups)*4)
	for _, pk := range pickups {
		pickupData = append(pickupData, int(pk.ID), int(pk.Type), quantize(pk.Box.Center.X), quantize(pk.Box.Center.Y)) //#nosec G115 -- ids stay small
	}

	return Snapshot{
		Tick:    uint64(w.Ticks()), //#nosec G115 -- tick count is always positive
		Score:   w.Score(),
		State:   g.state,
		Mode:    int(g.mode),
		Seed:    w.Seed(),
		CameraY: quantize(w.Camera().Y),
		PlayerData: []int{
			quantize(pl.Box.Center.X), quantize(pl.Box.Center.Y),
			quantize(pl.Velocity.X), quantize(pl.Velocity.Y),
			int(pl.State),
		},
		PowerUp:          int(w.PowerUps().Active()),
		PowerUpRemaining: quantize(w.PowerUps().Remaining()),
		PlatformCount:    len(platforms),
		PlatformData:     platformData,
		EnemyCount:       len(enemies),
		EnemyData:        enemyData,
		PickupCount:      len(pickups),
		PickupData:       pickupData,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Mode)             //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Seed)             //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.CameraY)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PowerUp)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PowerUpRemaining) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlatformCount)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EnemyCount)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PickupCount)      //#nosec G115 -- hash computation

	for _, data := range [][]int{snap.PlayerData, snap.PlatformData, snap.EnemyData, snap.PickupData} {
		for _, v := range data {
			h = h*31 + uint64(v) //#nosec G115 -- hash computation
		}
	}
	for _, r := range snap.State {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}
	return h
}

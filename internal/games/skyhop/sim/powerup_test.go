package sim

import (
	"testing"

	"github.com/vovakirdan/skyhop/internal/config"
)

func newTestCoordinator(emit func(Event)) (*PowerUpCoordinator, *Player) {
	pl := newJumpPlayer()
	var next EntityID = 100
	c := NewPowerUpCoordinator(config.DefaultSkyhopConfig().PowerUps, pl, func() EntityID {
		next++
		return next
	}, discardLogger(), emit)
	return c, pl
}

func TestJumpPowerUpLifetime(t *testing.T) {
	c, pl := newTestCoordinator(nil)
	dt := 1.0 / 60.0

	c.Activate(PowerUpJump, 15, 1.5)
	if pl.JumpForce != 9 {
		t.Fatalf("JumpForce = %v, expected 9", pl.JumpForce)
	}

	// 899 ticks is just short of 15 seconds
	for i := 0; i < 899; i++ {
		c.Tick(dt)
	}
	if c.Active() != PowerUpJump || pl.JumpForce != 9 {
		t.Fatalf("power-up ended early: active=%s jump=%v", c.Active(), pl.JumpForce)
	}

	c.Tick(dt)
	if c.Active() != PowerUpNone {
		t.Errorf("Active() = %s at 15s, expected none", c.Active())
	}
	if pl.JumpForce != 6 {
		t.Errorf("JumpForce = %v after expiry, expected 6", pl.JumpForce)
	}
}

func TestActivateReplacesActive(t *testing.T) {
	c, pl := newTestCoordinator(nil)

	c.Activate(PowerUpJump, 15, 1.5)
	c.Activate(PowerUpSpeed, 10, 1.5)

	if c.Active() != PowerUpSpeed {
		t.Fatalf("Active() = %s, expected speed", c.Active())
	}
	if pl.JumpForce != 6 {
		t.Errorf("JumpForce = %v, the replaced jump boost must be gone", pl.JumpForce)
	}
	if pl.MoveSpeed != 7.5 {
		t.Errorf("MoveSpeed = %v, expected 7.5", pl.MoveSpeed)
	}
}

func TestMultiplierAppliesToBaseline(t *testing.T) {
	c, pl := newTestCoordinator(nil)

	c.Activate(PowerUpJump, 15, 1.5)
	c.Activate(PowerUpJump, 15, 1.5)
	c.Activate(PowerUpJump, 15, 1.5)

	if pl.JumpForce != 9 {
		t.Errorf("JumpForce = %v after repeated activation, expected 9", pl.JumpForce)
	}
	if c.Remaining() != 15 {
		t.Errorf("Remaining() = %v, expected a fresh 15", c.Remaining())
	}
}

func TestSlowTracksEnemies(t *testing.T) {
	c, _ := newTestCoordinator(nil)
	early := &Enemy{ID: 1}
	c.RegisterEnemy(early)

	c.Activate(PowerUpSlow, 10, 0.5)
	if early.SpeedScale != 0.5 {
		t.Errorf("existing enemy scale = %v, expected 0.5", early.SpeedScale)
	}

	late := &Enemy{ID: 2}
	c.RegisterEnemy(late)
	if late.SpeedScale != 0.5 {
		t.Errorf("enemy registered during slow has scale %v, expected 0.5", late.SpeedScale)
	}

	c.Deactivate()
	if early.SpeedScale != 1 || late.SpeedScale != 1 {
		t.Errorf("scales after deactivate = %v, %v; expected 1", early.SpeedScale, late.SpeedScale)
	}

	c.UnregisterEnemy(1)
	c.Activate(PowerUpSlow, 10, 0.5)
	if early.SpeedScale != 1 {
		t.Error("unregistered enemy still affected by slow")
	}
}

func TestBatWings(t *testing.T) {
	c, pl := newTestCoordinator(nil)
	pl.Attached = 9

	c.ActivateDefault(PowerUpBatWings)
	if len(c.Wings()) != 2 {
		t.Fatalf("wings = %d, expected 2", len(c.Wings()))
	}
	if !c.Ascending() {
		t.Error("Ascending() = false while bat wings are active")
	}
	if pl.Velocity.Y != config.DefaultSkyhopConfig().PowerUps.AscentSpeed {
		t.Errorf("vy = %v, expected ascent speed", pl.Velocity.Y)
	}
	if pl.Attached != NoEntity {
		t.Error("bat wings must unparent the player")
	}

	c.Activate(PowerUpJump, 1, 2)
	if len(c.Wings()) != 0 || c.Ascending() {
		t.Error("replacing bat wings must clear the decorations and the ascent")
	}
}

func TestActivateDuringDeactivateIsSequenced(t *testing.T) {
	var c *PowerUpCoordinator
	var pl *Player
	var observed []float64
	chained := false

	c, pl = newTestCoordinator(func(e Event) {
		if e.Type != EventPowerUpExpired || chained {
			return
		}
		chained = true
		observed = append(observed, pl.JumpForce)
		c.Activate(PowerUpSpeed, 5, 2)
		observed = append(observed, pl.MoveSpeed)
	})

	c.Activate(PowerUpJump, 15, 1.5)
	c.Deactivate()

	if c.Active() != PowerUpSpeed {
		t.Fatalf("Active() = %s, expected the queued speed", c.Active())
	}
	// Inside the deactivation the queued activation has not run yet
	if observed[0] != 6 || observed[1] != 5 {
		t.Errorf("stats seen during deactivate = %v, expected baselines [6 5]", observed)
	}
	if pl.MoveSpeed != 10 || pl.JumpForce != 6 {
		t.Errorf("after sequencing: move=%v jump=%v", pl.MoveSpeed, pl.JumpForce)
	}
}

func TestAtMostOneActive(t *testing.T) {
	c, pl := newTestCoordinator(nil)
	types := []PowerUpType{PowerUpJump, PowerUpSlow, PowerUpSpeed, PowerUpBatWings}

	for i := 0; i < 40; i++ {
		c.ActivateDefault(types[i%len(types)])
		c.Tick(0.5)

		switch c.Active() {
		case PowerUpNone, PowerUpJump, PowerUpSlow, PowerUpSpeed, PowerUpBatWings:
		default:
			t.Fatalf("invalid active type %d", c.Active())
		}
		if c.Active() != PowerUpJump && pl.JumpForce != pl.BaseJumpForce {
			t.Fatalf("jump force %v leaked while %s active", pl.JumpForce, c.Active())
		}
		if c.Active() != PowerUpSpeed && pl.MoveSpeed != pl.BaseMoveSpeed {
			t.Fatalf("move speed %v leaked while %s active", pl.MoveSpeed, c.Active())
		}
	}

	c.Deactivate()
	if c.Active() != PowerUpNone || pl.JumpForce != 6 || pl.MoveSpeed != 5 {
		t.Errorf("after Deactivate: active=%s jump=%v move=%v", c.Active(), pl.JumpForce, pl.MoveSpeed)
	}
}

package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/skyhop/internal/core"
)

const (
	player   BodyID = 1
	platform BodyID = 2
)

func newTestSpace(t *testing.T) *Space {
	t.Helper()
	s := NewSpace(12, 30, -5, 1)
	if err := s.Add(platform, KindPlatform, core.NewBox(core.V(0, 0), 2, 0.3)); err != nil {
		t.Fatalf("Add(platform) failed: %v", err)
	}
	if err := s.Add(player, KindPlayer, core.NewBox(core.V(0, 3), 0.8, 1)); err != nil {
		t.Fatalf("Add(player) failed: %v", err)
	}
	return s
}

func TestContactsLanding(t *testing.T) {
	s := newTestSpace(t)

	if got := s.Contacts(player); len(got) != 0 {
		t.Fatalf("expected no contacts while apart, got %d", len(got))
	}

	// Feet 0.1 below the platform top
	s.SetBox(player, core.NewBox(core.V(0.2, 0.15+0.5-0.1), 0.8, 1))
	s.SetVelocity(player, core.V(0, -3))

	contacts := s.Contacts(player)
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}
	c := contacts[0]
	if c.Other != platform || c.OtherKind != KindPlatform {
		t.Errorf("contact other = %d (%s), expected platform", c.Other, c.OtherKind)
	}
	if n := c.Normal(); n != core.V(0, 1) {
		t.Errorf("normal = %v, expected (0, 1)", n)
	}
	if math.Abs(c.Depth-0.1) > 1e-9 {
		t.Errorf("depth = %v, expected 0.1", c.Depth)
	}
	for _, p := range c.Points {
		if math.Abs(p.Point.Y-0.15) > 1e-9 {
			t.Errorf("contact point y = %v, expected platform top 0.15", p.Point.Y)
		}
	}
	if c.RelativeVelocity != core.V(0, -3) {
		t.Errorf("relative velocity = %v, expected (0, -3)", c.RelativeVelocity)
	}
}

func TestContactsSide(t *testing.T) {
	s := newTestSpace(t)

	// Player clipping the right edge of the platform
	s.SetBox(player, core.NewBox(core.V(1.35, 0), 0.8, 1))

	contacts := s.Contacts(player)
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}
	if n := contacts[0].Normal(); n != core.V(1, 0) {
		t.Errorf("normal = %v, expected (1, 0)", n)
	}
}

func TestContactsContainedAndAligned(t *testing.T) {
	s := newTestSpace(t)
	const (
		pickup BodyID = 3
		enemy  BodyID = 4
	)

	// Pickup fully inside the player, enemy of the same width under its feet
	if err := s.Add(pickup, KindPickup, core.NewBox(core.V(0, 3), 0.6, 0.6)); err != nil {
		t.Fatalf("Add(pickup) failed: %v", err)
	}
	if err := s.Add(enemy, KindEnemy, core.NewBox(core.V(0, 2.3), 0.8, 0.8)); err != nil {
		t.Fatalf("Add(enemy) failed: %v", err)
	}

	contacts := s.Contacts(player)
	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
	if contacts[0].Other != pickup || contacts[1].Other != enemy {
		t.Errorf("contacts = %d, %d, expected pickup then enemy", contacts[0].Other, contacts[1].Other)
	}
	if n := contacts[1].Normal(); n != core.V(0, 1) {
		t.Errorf("enemy normal = %v, expected (0, 1)", n)
	}
}

func TestPairAndColliderSwitches(t *testing.T) {
	s := newTestSpace(t)
	s.SetBox(player, core.NewBox(core.V(0, 0.6), 0.8, 1))

	s.SetPairEnabled(player, platform, false)
	if s.PairEnabled(platform, player) {
		t.Error("pair should be disabled regardless of order")
	}
	if got := s.Contacts(player); len(got) != 0 {
		t.Errorf("disabled pair still reports %d contacts", len(got))
	}

	s.SetPairEnabled(platform, player, true)
	if got := s.Contacts(player); len(got) != 1 {
		t.Errorf("re-enabled pair reports %d contacts, expected 1", len(got))
	}

	s.SetEnabled(platform, false)
	if s.Enabled(platform) {
		t.Error("Enabled() should report the collider off")
	}
	if got := s.Contacts(player); len(got) != 0 {
		t.Errorf("disabled collider still reports %d contacts", len(got))
	}
}

func TestAddErrors(t *testing.T) {
	s := newTestSpace(t)

	if err := s.Add(platform, KindPlatform, core.NewBox(core.V(0, 0), 1, 1)); !errors.Is(err, ErrDuplicateBody) {
		t.Errorf("duplicate Add error = %v", err)
	}
	if err := s.Add(9, KindEnemy, core.NewBox(core.V(0, 100), 1, 1)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("out of window Add error = %v", err)
	}
	if err := s.Add(10, KindEnemy, core.NewBox(core.V(0, 0), 0, 1)); !errors.Is(err, ErrInvalidBox) {
		t.Errorf("empty box Add error = %v", err)
	}
}

func TestRemoveClearsPairs(t *testing.T) {
	s := newTestSpace(t)
	s.SetPairEnabled(player, platform, false)
	s.Remove(platform)

	if s.Has(platform) {
		t.Fatal("platform still present after Remove")
	}
	if !s.PairEnabled(player, platform) {
		t.Error("Remove should drop pair overrides")
	}
	if _, ok := s.Distance(player, platform); ok {
		t.Error("Distance should fail for removed bodies")
	}
}

func TestRecenterKeepsContacts(t *testing.T) {
	s := NewSpace(12, 20, 0, 1)
	if err := s.Add(platform, KindPlatform, core.NewBox(core.V(0, 15), 2, 0.3)); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(player, KindPlayer, core.NewBox(core.V(0, 15.6), 0.8, 1)); err != nil {
		t.Fatal(err)
	}

	s.Recenter(10)
	if s.Origin() != 10 {
		t.Fatalf("Origin() = %v, expected 10", s.Origin())
	}
	if got := s.Contacts(player); len(got) != 1 {
		t.Errorf("after Recenter got %d contacts, expected 1", len(got))
	}

	d, ok := s.Distance(player, platform)
	if !ok || math.Abs(d-0.6) > 1e-9 {
		t.Errorf("Distance() = %v, %v; expected 0.6", d, ok)
	}
}

func TestVelocityRoundTrip(t *testing.T) {
	s := newTestSpace(t)
	s.SetVelocity(player, core.V(1.5, -2))

	if v, ok := s.Velocity(player); !ok || v != core.V(1.5, -2) {
		t.Errorf("Velocity() = %v, %v", v, ok)
	}
	if _, ok := s.Velocity(99); ok {
		t.Error("Velocity() of unknown body should fail")
	}
}

package gift

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/core"
	"github.com/vovakirdan/santa-racer/internal/games/santa/level"
	"github.com/vovakirdan/santa-racer/internal/games/santa/score"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
	"github.com/vovakirdan/santa-racer/internal/platform/audio"
)

var epoch = time.Date(2020, 12, 24, 18, 0, 0, 0, time.UTC)

func solid(t *testing.T, name string, w, h, cols, rows int) *sprite.Sprite {
	t.Helper()
	mask := make([]bool, w*h)
	for i := range mask {
		mask[i] = true
	}
	s, err := sprite.NewFromMask(name, w, h, cols, rows, mask)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func empty(rows, cols int) level.Grid {
	g := make(level.Grid, rows)
	for y := range g {
		g[y] = make([]float64, cols)
		for x := range g[y] {
			g[y][x] = -1
		}
	}
	return g
}

type fixture struct {
	env   *Env
	rec   *audio.Recorder
	score *score.Score
	gift  *sprite.Sprite
	star  *sprite.Sprite
}

func newFixture(t *testing.T, bg level.Grid, chimneys []Chimney) *fixture {
	t.Helper()
	lvl, err := level.New(solid(t, "level", 64, 96*2, 1, 2), bg, empty(bg.Rows(), bg.Cols()), core.V(640, 480), config.LevelConfig{Rows: 5})
	if err != nil {
		t.Fatal(err)
	}
	rec := &audio.Recorder{}
	sc := score.New(config.ScoreConfig{TotalTime: time.Minute})
	return &fixture{
		env:   &Env{Now: epoch, Level: lvl, Score: sc, Audio: rec, Chimneys: chimneys},
		rec:   rec,
		score: sc,
		gift:  solid(t, "gift1", 10*15, 10, 15, 1),
		star:  solid(t, "bigStar", 8*10, 8, 10, 1),
	}
}

func (f *fixture) tick(d time.Duration) {
	f.env.Now = f.env.Now.Add(d)
}

func TestParseChimneys(t *testing.T) {
	chimneys, err := ParseChimneys([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 20)
	if err != nil {
		t.Fatalf("ParseChimneys() error = %v", err)
	}
	expected := []Chimney{
		{Position: core.V(1, 2), Size: core.V(3, 20), Frame: 4},
		{Position: core.V(5, 6), Size: core.V(7, 20), Frame: 8},
	}
	for i := range expected {
		if chimneys[i] != expected[i] {
			t.Errorf("chimney %d = %+v, expected %+v", i, chimneys[i], expected[i])
		}
	}

	if _, err := ParseChimneys([]float64{1, 2, 3}, 20); !errors.Is(err, ErrChimneyData) {
		t.Errorf("ParseChimneys(3 values) error = %v, expected ErrChimneyData", err)
	}
}

func TestGiftFallsToGround(t *testing.T) {
	f := newFixture(t, empty(5, 20), nil)
	cfg := config.DefaultSantaConfig().Gift

	g := New(cfg, Spawn{Position: core.V(100, 50), Velocity: core.V(0, 50), Sprite: f.gift, Star: f.star}, epoch)

	f.tick(time.Second)
	g.Update(f.env)
	if g.Mode() != Falling {
		t.Fatalf("Mode() after tick 1 = %v, expected falling", g.Mode())
	}
	if g.Position().Y != 300 {
		t.Errorf("Position().Y after tick 1 = %v, expected 300", g.Position().Y)
	}

	f.tick(time.Second)
	g.Update(f.env)
	if g.Mode() != CanBeDeleted {
		t.Fatalf("Mode() after tick 2 = %v, expected can_be_deleted", g.Mode())
	}

	f.tick(time.Second)
	g.Update(f.env)
	if g.Mode() != CanBeDeleted {
		t.Errorf("Mode() after tick 3 = %v, expected to stay can_be_deleted", g.Mode())
	}
	if f.score.DamagePoints() != cfg.GroundDamage {
		t.Errorf("DamagePoints() = %v, expected %v exactly once", f.score.DamagePoints(), cfg.GroundDamage)
	}
	if f.rec.Count(SoundGround) != 1 {
		t.Errorf("ground sound played %d times, expected 1", f.rec.Count(SoundGround))
	}
}

func TestGiftHitsChimney(t *testing.T) {
	tests := []struct {
		row      int
		bonus    bool
		expected float64
	}{
		{0, false, 10},
		{1, false, 10},
		{2, false, 15},
		{3, false, 20},
		{4, true, 40},
	}
	for _, tc := range tests {
		bg := empty(5, 20)
		bg[tc.row][2] = 1
		f := newFixture(t, bg, []Chimney{{Position: core.V(20, 30), Size: core.V(24, 20), Frame: 1}})
		cfg := config.DefaultSantaConfig().Gift
		cfg.Acceleration = core.Vec2{}

		// tile (2, row) sits at (128, 96*row); chimney box starts at (148, 96*row+30)
		top := float64(96*tc.row) + 30
		g := New(cfg, Spawn{Position: core.V(155, top-10), Velocity: core.V(0, 100), Bonus: tc.bonus, Sprite: f.gift, Star: f.star}, epoch)

		f.tick(100 * time.Millisecond)
		g.Update(f.env)

		if g.Mode() != ShowingPoints {
			t.Fatalf("row %d: Mode() = %v, expected showing_points", tc.row, g.Mode())
		}
		if f.score.GiftPoints() != tc.expected {
			t.Errorf("row %d: GiftPoints() = %v, expected %v", tc.row, f.score.GiftPoints(), tc.expected)
		}
		if f.rec.Count(SoundChimney) != 1 {
			t.Errorf("row %d: chimney sound played %d times, expected 1", tc.row, f.rec.Count(SoundChimney))
		}
		if len(g.Visuals()) == 0 {
			t.Errorf("row %d: Visuals() empty while showing points", tc.row)
		}
	}
}

func TestGiftIgnoresOtherTileFrames(t *testing.T) {
	bg := empty(5, 20)
	bg[3][2] = 0
	f := newFixture(t, bg, []Chimney{{Position: core.V(20, 30), Size: core.V(24, 20), Frame: 1}})
	cfg := config.DefaultSantaConfig().Gift
	cfg.Acceleration = core.Vec2{}

	g := New(cfg, Spawn{Position: core.V(155, 308), Velocity: core.V(0, 100), Sprite: f.gift, Star: f.star}, epoch)
	f.tick(100 * time.Millisecond)
	g.Update(f.env)

	if g.Mode() != Falling || f.score.GiftPoints() != 0 {
		t.Errorf("Mode() = %v, GiftPoints() = %v, expected falling and 0", g.Mode(), f.score.GiftPoints())
	}
}

func TestShowingPointsEndsAfterStars(t *testing.T) {
	bg := empty(5, 20)
	bg[0][2] = 1
	f := newFixture(t, bg, []Chimney{{Position: core.V(20, 30), Size: core.V(24, 20), Frame: 1}})
	cfg := config.DefaultSantaConfig().Gift
	cfg.Acceleration = core.Vec2{}

	g := New(cfg, Spawn{Position: core.V(155, 20), Velocity: core.V(0, 100), Sprite: f.gift, Star: f.star}, epoch)
	f.tick(100 * time.Millisecond)
	g.Update(f.env)
	if g.Mode() != ShowingPoints {
		t.Fatalf("Mode() = %v, expected showing_points", g.Mode())
	}

	// star3 offset 4 + 10 star frames = 14 frames at 15 fps
	f.tick(900 * time.Millisecond)
	g.Update(f.env)
	if g.Mode() != ShowingPoints {
		t.Fatalf("Mode() after 0.9s = %v, expected showing_points", g.Mode())
	}

	f.tick(100 * time.Millisecond)
	g.Update(f.env)
	if g.Mode() != CanBeDeleted {
		t.Fatalf("Mode() after 1s = %v, expected can_be_deleted", g.Mode())
	}

	for i := 0; i < 5; i++ {
		f.tick(time.Second)
		g.Update(f.env)
		if g.Mode() != CanBeDeleted {
			t.Fatalf("Mode() = %v, a deleted gift must stay deleted", g.Mode())
		}
	}
	if f.score.GiftPoints() != 10 {
		t.Errorf("GiftPoints() = %v, expected 10", f.score.GiftPoints())
	}
}

func TestCollectionCompacts(t *testing.T) {
	f := newFixture(t, empty(5, 20), nil)
	cfg := config.DefaultSantaConfig().Gift

	var c Collection
	low := New(cfg, Spawn{Position: core.V(0, 475), Velocity: core.V(0, 50), Sprite: f.gift, Star: f.star}, epoch)
	high1 := New(cfg, Spawn{Position: core.V(50, 0), Sprite: f.gift, Star: f.star}, epoch)
	high2 := New(cfg, Spawn{Position: core.V(100, 0), Sprite: f.gift, Star: f.star}, epoch)
	c.Add(low)
	c.Add(high1)
	c.Add(high2)

	f.tick(100 * time.Millisecond)
	c.Update(f.env)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", c.Len())
	}
	for _, g := range c.Items() {
		if g == low {
			t.Error("grounded gift was not removed")
		}
	}
	if f.score.DamagePoints() != cfg.GroundDamage {
		t.Errorf("DamagePoints() = %v, expected %v", f.score.DamagePoints(), cfg.GroundDamage)
	}
	// both survivors were ticked
	if high1.Position().Y <= 0 || high2.Position().Y <= 0 {
		t.Error("surviving gifts should have been updated")
	}
	if len(c.Visuals()) != 2 {
		t.Errorf("Visuals() = %d records, expected 2", len(c.Visuals()))
	}

	c.Reset()
	if c.Len() != 0 {
		t.Errorf("Len() after Reset = %d, expected 0", c.Len())
	}
}

package breakout

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Snapshot contains the complete simulation state at a tick boundary.
// Uses plain values only so two snapshots compare and hash reliably.
type Snapshot struct {
	Tick   uint64
	Over   bool
	Level  int
	Points int

	BallX, BallY   float64
	BallVX, BallVY float64
	BallRadius     float64

	PaddleX, PaddleY float64
	PaddleW, PaddleH float64
	PaddleSpeed      float64

	LowestBrickLine float64

	// Bricks holds X, Y, W, H per live brick, in grid order.
	Bricks []float64
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:            g.sched.Ticks(),
		Over:            g.over,
		Level:           g.level,
		Points:          g.points,
		PaddleSpeed:     g.paddleSpeed,
		LowestBrickLine: g.lowestBrickLine,
	}
	if b := g.ball; b != nil {
		snap.BallX, snap.BallY = b.Position.X(), b.Position.Y()
		snap.BallVX, snap.BallVY = b.Velocity.X(), b.Velocity.Y()
		snap.BallRadius = b.Radius()
	}
	if p := g.paddle; p != nil {
		snap.PaddleX, snap.PaddleY = p.Position.X(), p.Position.Y()
		snap.PaddleW, snap.PaddleH = p.Width(), p.Height()
	}

	snap.Bricks = make([]float64, 0, len(g.bricks)*4)
	for _, br := range g.bricks {
		snap.Bricks = append(snap.Bricks, br.Position.X(), br.Position.Y(), br.Width(), br.Height())
	}
	return snap
}

// Hash returns an xxhash digest of the snapshot for determinism checks.
// Floats are hashed bit for bit.
func (snap *Snapshot) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	putU := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	putF := func(f float64) { putU(math.Float64bits(f)) }

	putU(snap.Tick)
	if snap.Over {
		putU(1)
	} else {
		putU(0)
	}
	putU(uint64(snap.Level))  //#nosec G115 -- hash computation
	putU(uint64(snap.Points)) //#nosec G115 -- hash computation

	for _, f := range []float64{
		snap.BallX, snap.BallY, snap.BallVX, snap.BallVY, snap.BallRadius,
		snap.PaddleX, snap.PaddleY, snap.PaddleW, snap.PaddleH, snap.PaddleSpeed,
		snap.LowestBrickLine,
	} {
		putF(f)
	}

	putU(uint64(len(snap.Bricks)))
	for _, f := range snap.Bricks {
		putF(f)
	}
	return d.Sum64()
}

package flood_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/katalvlaran/gridflood/flood"
	"github.com/katalvlaran/gridflood/gridgeom"
	"github.com/katalvlaran/gridflood/obstacle"
)

// BenchmarkRun_Open measures a full breadth-first flood corner to corner
// on an empty 200×200 board.
// Complexity: O(W×H)
func BenchmarkRun_Open(b *testing.B) {
	const n, s = 200, 30
	geom, err := gridgeom.New(s, n*s, n*s)
	if err != nil {
		b.Fatalf("setup gridgeom.New failed: %v", err)
	}
	origin := gridgeom.Cell{}
	target := gridgeom.Cell{X: (n - 1) * s, Y: (n - 1) * s}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e, _ := flood.New(geom, nil)
		_ = e.Start(&origin, &target)
		if _, err := e.Run(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkStep_Walls measures single expansions on a 200×200 board with
// roughly 25% random walls.
func BenchmarkStep_Walls(b *testing.B) {
	const n, s = 200, 30
	geom, err := gridgeom.New(s, n*s, n*s)
	if err != nil {
		b.Fatalf("setup gridgeom.New failed: %v", err)
	}
	r := rand.New(rand.NewSource(42))
	walls := obstacle.New()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if (x != 0 || y != 0) && r.Intn(4) == 0 {
				walls.Add(gridgeom.Cell{X: x * s, Y: y * s})
			}
		}
	}
	origin := gridgeom.Cell{}
	target := gridgeom.Cell{X: -s * 10, Y: 0} // never reached: exercise the full flood

	e, _ := flood.New(geom, walls)
	_ = e.Start(&origin, &target)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if e.State() != flood.Running {
			_ = e.Start(&origin, &target)
		}
		_, _ = e.Step()
	}
}

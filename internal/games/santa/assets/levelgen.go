package assets

import "math/rand"

// NPC markers placed by the generator. They match the default marker table.
const (
	markerAngel   = 70
	markerHeart   = 71
	markerWine    = 72
	markerGift    = 73
	markerCloud   = 74
	markerShield  = 75
	markerFinish  = 76
	markerGoblin  = 68
	markerSnowman = 29
)

var airborne = []float64{markerAngel, markerAngel, markerHeart, markerWine, markerGift, markerGift, markerCloud, markerShield}

// generated is a level laid out row-major.
type generated struct {
	background []float64
	foreground []float64
	chimneys   []float64
}

// generateLevel builds a street of houses of one to three storeys with
// trees and hills in between, NPCs in the air and on rooftops, and a
// finish line near the end. The first columns are kept clear.
func generateLevel(seed int64, cols, rows int) generated {
	rng := rand.New(rand.NewSource(seed))
	bg := make([]float64, cols*rows)
	fg := make([]float64, cols*rows)
	for i := range bg {
		bg[i] = -1
		fg[i] = -1
	}
	at := func(x, y int) int { return y*cols + x }
	ground := rows - 1

	const clearCols = 10
	tops := make([]int, cols)
	for x := 0; x < cols; x++ {
		storeys := 1
		switch r := rng.Float64(); {
		case x < clearCols || x >= cols-4:
		case r < 0.12:
			bg[at(x, ground)] = float64(houseFrames + rng.Intn(treeFrames))
			tops[x] = ground
			continue
		case r < 0.2:
			bg[at(x, ground)] = float64(hillFirstFrame + rng.Intn(hillFrames))
			tops[x] = ground
			continue
		case r < 0.55:
			storeys = 2
		case r < 0.7:
			storeys = 3
		}
		storeys = min(storeys, rows-1)
		top := ground - storeys + 1
		for y := top + 1; y <= ground; y++ {
			bg[at(x, y)] = wallFrame
		}
		bg[at(x, top)] = float64(rng.Intn(houseFrames))
		tops[x] = top
	}

	for x := clearCols; x < cols-4; x += 3 + rng.Intn(4) {
		if tops[x] > 1 && rng.Float64() < 0.3 {
			m := float64(markerGoblin)
			if rng.Intn(2) == 0 {
				m = markerSnowman
			}
			fg[at(x, tops[x]-1)] = m
			continue
		}
		y := rng.Intn(max(tops[x]-1, 1))
		fg[at(x, y)] = airborne[rng.Intn(len(airborne))]
	}
	fg[at(cols-3, 0)] = markerFinish

	var chimneys []float64
	for f := 0; f < houseFrames; f++ {
		chimneys = append(chimneys, float64(chimneyX(f)), chimneyTop, chimneyWidth, float64(f))
	}
	return generated{background: bg, foreground: fg, chimneys: chimneys}
}

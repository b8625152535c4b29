package reveal

import (
	"math/rand"

	"github.com/vibeos/vibeos/internal/constants"
	"github.com/vibeos/vibeos/internal/models"
)

// GridSize is the side length of the square reveal grid.
const GridSize = constants.RevealGridSize

// TotalCells is the size of the reveal index space.
const TotalCells = GridSize * GridSize

// GetOrCreate returns the persisted permutation unchanged if it covers the
// full index space, so a reload always reveals the same cells in the same
// order. Otherwise it generates a uniformly random permutation of
// [0, TotalCells) and reports created=true exactly once so the caller can
// persist it.
func GetOrCreate(existing []int, rng *rand.Rand) (perm []int, created bool) {
	if len(existing) == TotalCells {
		return existing, false
	}

	perm = make([]int, TotalCells)
	for i := range perm {
		perm[i] = i
	}
	// Fisher-Yates, every permutation equally likely.
	rng.Shuffle(TotalCells, func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	return perm, true
}

// Progress derives the reveal progress percentage from the number of
// unique calendar days with a recorded focus session, against the target
// project count. Clamped to [0, 100].
func Progress(sessions []models.TimerSession, targetProjects int) float64 {
	if targetProjects <= 0 {
		return 0
	}
	days := make(map[string]struct{}, len(sessions))
	for _, s := range sessions {
		days[s.Date] = struct{}{}
	}
	p := float64(len(days)) / float64(targetProjects) * 100
	if p > 100 {
		p = 100
	}
	return p
}

// RevealedCount returns how many cells are revealed at the given progress.
// The count is derived, never stored.
func RevealedCount(progress float64) int {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return int(progress / 100 * TotalCells)
}

// RevealedPrefix returns the revealed cell indices: a prefix of the
// permutation, so a growing progress only ever grows the revealed set.
func RevealedPrefix(perm []int, progress float64) []int {
	n := RevealedCount(progress)
	if n > len(perm) {
		n = len(perm)
	}
	return perm[:n]
}

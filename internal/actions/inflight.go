package actions

import (
	"sync"

	"gitwise/internal/models"
)

// ErrOperationInFlight is returned when a toggle targets an entity
// whose previous toggle has not resolved yet.
var ErrOperationInFlight = &models.AppError{
	Code:    models.CodeConflict,
	Message: "A previous request for this item is still in progress.",
}

type opKind string

const (
	opPostLike    opKind = "post_like"
	opCommentLike opKind = "comment_like"
	opFavorite    opKind = "favorite"
)

type opRef struct {
	kind opKind
	id   uint
}

// gate tracks in-flight operations per entity. Overlapping toggles on
// the same entity are rejected instead of racing.
type gate struct {
	mu   sync.Mutex
	busy map[opRef]struct{}
}

func newGate() *gate {
	return &gate{busy: make(map[opRef]struct{})}
}

// tryAcquire reserves the entity, reporting false when it is busy.
func (g *gate) tryAcquire(kind opKind, id uint) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	ref := opRef{kind: kind, id: id}
	if _, exists := g.busy[ref]; exists {
		return false
	}
	g.busy[ref] = struct{}{}
	return true
}

func (g *gate) release(kind opKind, id uint) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.busy, opRef{kind: kind, id: id})
}

package statemachine

import (
	"errors"
	"fmt"

	"campus-errand-api/models"
)

// Actors that may trigger order transitions
const (
	ActorRequester = "requester"
	ActorRunner    = "runner"
	ActorSystem    = "system"
)

// ErrInvalidTransition is wrapped by every transition rejection so callers
// can distinguish lifecycle violations from other failures.
var ErrInvalidTransition = errors.New("invalid transition")

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Runner accepts a pending order
	{From: models.StatusPending, To: models.StatusAccepted, Actor: ActorRunner},
	// Runner marks the order delivered
	{From: models.StatusAccepted, To: models.StatusCompletedByRunner, Actor: ActorRunner},
	// Requester confirms completion
	{From: models.StatusCompletedByRunner, To: models.StatusConfirmed, Actor: ActorRequester},
	// Runner abandons an accepted order, putting it back in the lobby
	{From: models.StatusAccepted, To: models.StatusPending, Actor: ActorRunner},
	// Requester or the system cancels before completion
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorRequester},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorSystem},
	{From: models.StatusAccepted, To: models.StatusCancelled, Actor: ActorRequester},
	{From: models.StatusAccepted, To: models.StatusCancelled, Actor: ActorSystem},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// IsTerminal reports whether no transitions leave the given state
func IsTerminal(status models.OrderStatus) bool {
	return len(ValidTransitionsFrom(status)) == 0
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return fmt.Errorf("%w: %s → %s is not allowed for actor %q; valid transitions from %s are: %s",
		ErrInvalidTransition, from, to, actor, from, describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

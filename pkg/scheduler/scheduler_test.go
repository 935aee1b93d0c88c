package scheduler

import (
	"testing"

	"github.com/sokoban/levelbuilder/pkg/model"
)

func straightLineState(t *testing.T) *model.State {
	t.Helper()
	terrain := model.NewTerrainGrid(5, 1)
	for x := 0; x < 5; x++ {
		terrain.Set(x, 0, model.Floor)
	}
	terrain.Set(3, 0, model.Target)
	state, err := model.Create(terrain, model.Position{X: 0, Y: 0}, []model.Position{{X: 1, Y: 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return state
}

func TestSchedulerRunAppliesMovesInOrder(t *testing.T) {
	state := straightLineState(t)
	sched := New(state)

	sched.EnqueueAll([]model.Move{
		{Kind: model.PlayerMove, PlayerFrom: model.Position{X: 0, Y: 0}, PlayerTo: model.Position{X: 1, Y: 0}},
	})

	var notified []model.Move
	sched.AddObserver(ObserverFunc(func(current *model.State, applied model.Move) {
		notified = append(notified, applied)
	}))

	applied, err := sched.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied != 1 {
		t.Fatalf("expected 1 move applied, got %d", applied)
	}
	if len(notified) != 1 {
		t.Fatalf("expected 1 observer notification, got %d", len(notified))
	}
	if sched.Current().Player() != (model.Position{X: 1, Y: 0}) {
		t.Fatalf("expected player at (1,0) after Run, got %v", sched.Current().Player())
	}
}

func TestSchedulerClearEmptiesQueue(t *testing.T) {
	state := straightLineState(t)
	sched := New(state)
	sched.Enqueue(model.Move{Kind: model.PlayerMove, PlayerFrom: model.Position{X: 0, Y: 0}, PlayerTo: model.Position{X: 1, Y: 0}})
	sched.Clear()

	applied, err := sched.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied != 0 {
		t.Fatalf("expected 0 moves applied after Clear, got %d", applied)
	}
	if sched.Current().Player() != (model.Position{X: 0, Y: 0}) {
		t.Fatalf("expected player unchanged after Clear, got %v", sched.Current().Player())
	}
}

func TestSchedulerMultipleObserversAllNotified(t *testing.T) {
	state := straightLineState(t)
	sched := New(state)
	sched.Enqueue(model.Move{Kind: model.PlayerMove, PlayerFrom: model.Position{X: 0, Y: 0}, PlayerTo: model.Position{X: 1, Y: 0}})

	count1, count2 := 0, 0
	sched.AddObserver(ObserverFunc(func(current *model.State, applied model.Move) { count1++ }))
	sched.AddObserver(ObserverFunc(func(current *model.State, applied model.Move) { count2++ }))

	if _, err := sched.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count1 != 1 || count2 != 1 {
		t.Fatalf("expected both observers notified once, got %d and %d", count1, count2)
	}
}

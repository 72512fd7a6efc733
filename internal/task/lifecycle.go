package task

import (
	"context"

	"github.com/looplab/fsm"
)

const (
	stateOpen      = "open"
	stateCompleted = "completed"
	eventComplete  = "complete"
)

// lifecycle models a single task: it can move from open to completed once
// and never back. onComplete runs exactly on that transition.
func lifecycle(t Task, onComplete func()) *fsm.FSM {
	initial := stateOpen
	if t.Completed {
		initial = stateCompleted
	}
	return fsm.NewFSM(
		initial,
		fsm.Events{
			{Name: eventComplete, Src: []string{stateOpen}, Dst: stateCompleted},
		},
		fsm.Callbacks{
			"enter_" + stateCompleted: func(_ context.Context, _ *fsm.Event) {
				onComplete()
			},
		},
	)
}

func complete(ctx context.Context, t Task, onComplete func()) bool {
	m := lifecycle(t, onComplete)
	if !m.Can(eventComplete) {
		return false
	}
	return m.Event(ctx, eventComplete) == nil
}

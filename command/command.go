// Package command implements the engine's command lifecycle and scheduler:
// each scenario command mutates VM state synchronously, then optionally
// runs across several frames before the interpreter is allowed to fetch its
// next instruction.
package command

import (
	"context"

	"github.com/DCNick3/shin-go/tick"
	"github.com/DCNick3/shin-go/vm"
)

// StartableCommand is a scenario command ready to begin. ApplyState runs
// synchronously and must be pure and deterministic: any VM-observable
// effect (globals, registers) happens here so the very next instruction
// sees it, even if Start goes on to run across multiple frames.
type StartableCommand interface {
	ApplyState(vmState *vm.State)
	// Start begins the command's side effects. A nil RunningCommand means
	// the command is already complete; a non-nil one is polled by the
	// scheduler until it reports done.
	Start(ctx context.Context, env *Env) (RunningCommand, error)
}

// RunningCommand is a command still in flight after Start. Update is
// called once per scheduler tick until it reports done. A command must
// never ignore fastForward: tweens fast-forward to their target, wipes
// snap to completion, waits resolve immediately.
type RunningCommand interface {
	Update(ctx context.Context, env *Env, fastForward bool) (done bool, err error)
}

// LayerManager is the subset of the layer tree the command layer drives.
// Property identity is an opaque small int matching the layer package's
// property table; the command layer never interprets it.
type LayerManager interface {
	SetProperty(vlayer int32, prop int, target float64, duration tick.Ticks, easing tick.Easing)
	PropertiesIdle(vlayer int32, props []int) bool
	FastForwardProperties(vlayer int32, props []int)
	LoadLayer(ctx context.Context, id int32, kind string, params []byte) (done <-chan error)
	LoadMask(ctx context.Context, planeID int32, maskID int32, flags uint32) (done <-chan error)
}

// MessageManager is the subset of the message layer the command layer
// drives.
type MessageManager interface {
	SetStyle(style int32)
	SetText(text string, autoWait bool)
	Finished() bool
	Close() (done <-chan struct{})
}

// AudioManager is the subset of the runtime audio mixer the command layer
// drives.
type AudioManager interface {
	PlaySE(slot int32, params []byte)
	WaitStatus(slot int32) uint32
	PlayBGM(params []byte)
	StopBGM(fadeTicks tick.Ticks) (done <-chan struct{})
}

// InputSource reports whether the player performed an interrupting input
// action since the last poll, for WAIT's allow_interrupt behavior.
type InputSource interface {
	ActionPressed() bool
}

// Env bundles everything a command needs beyond its own parameters: the
// scenario's globals live in vm.State itself, so Env only carries the
// subsystems commands reach into.
type Env struct {
	VM       *vm.State
	Layers   LayerManager
	Messages MessageManager
	Audio    AudioManager
	Input    InputSource
}

package command

import (
	"context"
	"testing"

	"github.com/DCNick3/shin-go/format/scenario"
	"github.com/DCNick3/shin-go/tick"
	"github.com/DCNick3/shin-go/vm"
)

type fakeLayers struct {
	idle       bool
	setCalls   int
	ffCalls    int
	loadResult error
	maskResult error
}

func (f *fakeLayers) SetProperty(vlayer int32, prop int, target float64, d tick.Ticks, e tick.Easing) {
	f.setCalls++
}
func (f *fakeLayers) PropertiesIdle(vlayer int32, props []int) bool { return f.idle }
func (f *fakeLayers) FastForwardProperties(vlayer int32, props []int) { f.ffCalls++ }
func (f *fakeLayers) LoadLayer(ctx context.Context, id int32, kind string, params []byte) <-chan error {
	ch := make(chan error, 1)
	ch <- f.loadResult
	return ch
}
func (f *fakeLayers) LoadMask(ctx context.Context, planeID, maskID int32, flags uint32) <-chan error {
	ch := make(chan error, 1)
	ch <- f.maskResult
	return ch
}

type fakeMessages struct {
	finished bool
}

func (f *fakeMessages) SetStyle(int32)       {}
func (f *fakeMessages) SetText(string, bool) {}
func (f *fakeMessages) Finished() bool       { return f.finished }
func (f *fakeMessages) Close() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type fakeAudio struct {
	waitStatus uint32
}

func (f *fakeAudio) PlaySE(int32, []byte)   {}
func (f *fakeAudio) WaitStatus(int32) uint32 { return f.waitStatus }
func (f *fakeAudio) PlayBGM([]byte)          {}
func (f *fakeAudio) StopBGM(tick.Ticks) <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func newTestEnv() (*Env, *fakeLayers, *fakeMessages, *fakeAudio) {
	layers := &fakeLayers{idle: true}
	messages := &fakeMessages{finished: true}
	audio := &fakeAudio{}
	env := &Env{
		VM:       vm.NewState(1),
		Layers:   layers,
		Messages: messages,
		Audio:    audio,
	}
	return env, layers, messages, audio
}

func TestSchedulerWaitBlocksUntilElapsed(t *testing.T) {
	env, _, _, _ := newTestEnv()
	var sched Scheduler
	ctx := context.Background()

	cmd := &Wait{Amount: 3}
	if err := sched.Dispatch(ctx, cmd, env); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !sched.Busy() {
		t.Fatal("expected scheduler busy after dispatching a 3-tick wait")
	}

	for i := 0; i < 2; i++ {
		idle, err := sched.Poll(ctx, env, false)
		if err != nil {
			t.Fatalf("Poll: %v", err)
		}
		if idle {
			t.Fatalf("expected still busy after %d polls", i+1)
		}
	}
	idle, err := sched.Poll(ctx, env, false)
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if !idle {
		t.Fatal("expected idle after 3 polls")
	}
}

func TestSchedulerWaitFastForward(t *testing.T) {
	env, _, _, _ := newTestEnv()
	var sched Scheduler
	ctx := context.Background()

	cmd := &Wait{Amount: 1000}
	_ = sched.Dispatch(ctx, cmd, env)

	idle, err := sched.Poll(ctx, env, true)
	if err != nil || !idle {
		t.Fatalf("fast-forward should resolve a wait immediately: idle=%v err=%v", idle, err)
	}
}

func TestSchedulerRejectsDispatchWhileBusy(t *testing.T) {
	env, _, _, _ := newTestEnv()
	var sched Scheduler
	ctx := context.Background()

	_ = sched.Dispatch(ctx, &Wait{Amount: 5}, env)
	if err := sched.Dispatch(ctx, &Wait{Amount: 5}, env); err != ErrBusy {
		t.Fatalf("got %v, want ErrBusy", err)
	}
}

func TestLayerWaitCompletesWhenIdle(t *testing.T) {
	env, layers, _, _ := newTestEnv()
	layers.idle = false
	var sched Scheduler
	ctx := context.Background()

	cmd := &LayerWait{VLayer: 1, Props: []int{0}}
	if err := sched.Dispatch(ctx, cmd, env); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !sched.Busy() {
		t.Fatal("expected busy while properties not idle")
	}

	layers.idle = true
	idle, err := sched.Poll(ctx, env, false)
	if err != nil || !idle {
		t.Fatalf("expected idle once properties report idle: idle=%v err=%v", idle, err)
	}
}

func TestLayerWaitFastForwardSnaps(t *testing.T) {
	env, layers, _, _ := newTestEnv()
	layers.idle = false
	var sched Scheduler
	ctx := context.Background()

	cmd := &LayerWait{VLayer: 1, Props: []int{0}}
	_ = sched.Dispatch(ctx, cmd, env)

	idle, err := sched.Poll(ctx, env, true)
	if err != nil || !idle {
		t.Fatalf("fast-forward should resolve immediately: idle=%v err=%v", idle, err)
	}
	if layers.ffCalls != 1 {
		t.Errorf("expected FastForwardProperties called once, got %d", layers.ffCalls)
	}
}

func TestSeWaitMaskMatch(t *testing.T) {
	env, _, _, audio := newTestEnv()
	var sched Scheduler
	ctx := context.Background()

	cmd := &SeWait{Slot: 0, Mask: 0x1}
	if err := sched.Dispatch(ctx, cmd, env); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !sched.Busy() {
		t.Fatal("expected busy while mask unmatched")
	}

	audio.waitStatus = 0x1
	idle, err := sched.Poll(ctx, env, false)
	if err != nil || !idle {
		t.Fatalf("expected idle once mask matches: idle=%v err=%v", idle, err)
	}
}

func TestSGetSSetApplyStateIsImmediate(t *testing.T) {
	env, _, _, _ := newTestEnv()
	var sched Scheduler
	ctx := context.Background()

	env.VM.Globals[7] = 42
	dst := scenario.Register{Kind: scenario.RegR, Index: 3}

	if err := sched.Dispatch(ctx, &SGet{Global: 7, Destination: dst}, env); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if sched.Busy() {
		t.Fatal("SGET should complete immediately")
	}
	if got := env.VM.GetRegister(dst); got != 42 {
		t.Errorf("R[3] = %d, want 42", got)
	}

	if err := sched.Dispatch(ctx, &SSet{Global: 7, Value: 99}, env); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if env.VM.Globals[7] != 99 {
		t.Errorf("Globals[7] = %d, want 99", env.VM.Globals[7])
	}
}

package command

import (
	"context"

	"github.com/DCNick3/shin-go/format/scenario"
	"github.com/DCNick3/shin-go/tick"
	"github.com/DCNick3/shin-go/vm"
)

// Wait implements WAIT amt, allow_interrupt: completes after amt ticks
// elapse, or immediately on an interrupting input action if allowInterrupt
// is set.
type Wait struct {
	Amount         tick.Ticks
	AllowInterrupt bool
}

func (c *Wait) ApplyState(*vm.State) {}

func (c *Wait) Start(ctx context.Context, env *Env) (RunningCommand, error) {
	if c.Amount <= 0 {
		return nil, nil
	}
	return &runningWait{remaining: c.Amount, allowInterrupt: c.AllowInterrupt}, nil
}

type runningWait struct {
	remaining      tick.Ticks
	allowInterrupt bool
}

// Update is polled once per frame, and the scheduler's frame rate is fixed
// at tick.TicksPerSecond, so one call here always accounts for one tick.
func (r *runningWait) Update(ctx context.Context, env *Env, fastForward bool) (bool, error) {
	if fastForward {
		return true, nil
	}
	if r.allowInterrupt && env.Input != nil && env.Input.ActionPressed() {
		return true, nil
	}
	r.remaining--
	return r.remaining <= 0, nil
}

// LayerLoad implements LAYERLOAD id, ty, params: spawns an asynchronous
// decode through the layer manager that installs the layer under id on
// completion. ApplyState leaves the VM state unchanged; the load request
// is not recorded there.
type LayerLoad struct {
	ID     int32
	Kind   string
	Params []byte
}

func (c *LayerLoad) ApplyState(s *vm.State) {}

func (c *LayerLoad) Start(ctx context.Context, env *Env) (RunningCommand, error) {
	done := env.Layers.LoadLayer(ctx, c.ID, c.Kind, c.Params)
	return &runningAsync{done: done}, nil
}

// runningAsync completes as soon as its done channel yields a value,
// regardless of fast-forward: asset decode isn't something a wait or tween
// can meaningfully skip ahead of, it simply must finish.
type runningAsync struct {
	done <-chan error
}

func (r *runningAsync) Update(ctx context.Context, env *Env, fastForward bool) (bool, error) {
	select {
	case err := <-r.done:
		return true, err
	default:
		return false, nil
	}
}

// LayerCtrl implements LAYERCTRL vlayer, prop, target, time, flags: enqueues
// a tween on the named property's tweener. Fire-and-forget: ApplyState
// leaves the VM state unchanged (the new target is not recorded there),
// and the tween itself runs unattended (LAYERWAIT is what blocks on it).
type LayerCtrl struct {
	VLayer   int32
	Prop     int
	Target   float64
	Duration tick.Ticks
	Easing   tick.Easing
}

func (c *LayerCtrl) ApplyState(*vm.State) {}

func (c *LayerCtrl) Start(ctx context.Context, env *Env) (RunningCommand, error) {
	env.Layers.SetProperty(c.VLayer, c.Prop, c.Target, c.Duration, c.Easing)
	return nil, nil
}

// LayerWait implements LAYERWAIT vlayer, props[]: completes once every
// named property's tweener has gone idle. Fast-forward snaps them instead
// of waiting out their remaining duration.
type LayerWait struct {
	VLayer int32
	Props  []int
}

func (c *LayerWait) ApplyState(*vm.State) {}

func (c *LayerWait) Start(ctx context.Context, env *Env) (RunningCommand, error) {
	if env.Layers.PropertiesIdle(c.VLayer, c.Props) {
		return nil, nil
	}
	return &runningLayerWait{vlayer: c.VLayer, props: c.Props}, nil
}

type runningLayerWait struct {
	vlayer int32
	props  []int
}

func (r *runningLayerWait) Update(ctx context.Context, env *Env, fastForward bool) (bool, error) {
	if fastForward {
		env.Layers.FastForwardProperties(r.vlayer, r.props)
		return true, nil
	}
	return env.Layers.PropertiesIdle(r.vlayer, r.props), nil
}

// MaskLoad implements MASKLOAD maskid, flags: asks the layer manager to
// decode and install the mask texture asynchronously. ApplyState leaves
// the VM state unchanged; the request is not recorded there.
type MaskLoad struct {
	PlaneID int32
	MaskID  int32
	Flags   uint32
}

func (c *MaskLoad) ApplyState(*vm.State) {}

func (c *MaskLoad) Start(ctx context.Context, env *Env) (RunningCommand, error) {
	done := env.Layers.LoadMask(ctx, c.PlaneID, c.MaskID, c.Flags)
	return &runningAsync{done: done}, nil
}

// MsgInit implements MSGINIT style: sets the messagebox style immediately.
type MsgInit struct {
	Style int32
}

func (c *MsgInit) ApplyState(*vm.State) {}

func (c *MsgInit) Start(ctx context.Context, env *Env) (RunningCommand, error) {
	env.Messages.SetStyle(c.Style)
	return nil, nil
}

// MsgSet implements MSGSET text, auto_wait: displays text; if AutoWait is
// set, blocks until the message layer signals the reveal finished.
type MsgSet struct {
	Text     string
	AutoWait bool
}

func (c *MsgSet) ApplyState(*vm.State) {}

func (c *MsgSet) Start(ctx context.Context, env *Env) (RunningCommand, error) {
	env.Messages.SetText(c.Text, c.AutoWait)
	if !c.AutoWait || env.Messages.Finished() {
		return nil, nil
	}
	return &runningMsgSet{}, nil
}

type runningMsgSet struct{}

func (r *runningMsgSet) Update(ctx context.Context, env *Env, fastForward bool) (bool, error) {
	if fastForward {
		return true, nil
	}
	return env.Messages.Finished(), nil
}

// MsgClose implements MSGCLOSE: hides the messagebox, either immediately or
// after its close animation, depending on what the message layer reports.
type MsgClose struct{}

func (c *MsgClose) ApplyState(*vm.State) {}

func (c *MsgClose) Start(ctx context.Context, env *Env) (RunningCommand, error) {
	done := env.Messages.Close()
	select {
	case <-done:
		return nil, nil
	default:
		return &runningMsgClose{done: done}, nil
	}
}

type runningMsgClose struct {
	done <-chan struct{}
}

func (r *runningMsgClose) Update(ctx context.Context, env *Env, fastForward bool) (bool, error) {
	if fastForward {
		return true, nil
	}
	select {
	case <-r.done:
		return true, nil
	default:
		return false, nil
	}
}

// SePlay implements SEPLAY slot, ...: fire-and-forget sound effect playback.
type SePlay struct {
	Slot   int32
	Params []byte
}

func (c *SePlay) ApplyState(*vm.State) {}

func (c *SePlay) Start(ctx context.Context, env *Env) (RunningCommand, error) {
	env.Audio.PlaySE(c.Slot, c.Params)
	return nil, nil
}

// SeWait implements SEWAIT slot, mask: completes when the audio slot's
// wait-status bits AND mask is nonzero.
type SeWait struct {
	Slot int32
	Mask uint32
}

func (c *SeWait) ApplyState(*vm.State) {}

func (c *SeWait) Start(ctx context.Context, env *Env) (RunningCommand, error) {
	if env.Audio.WaitStatus(c.Slot)&c.Mask != 0 {
		return nil, nil
	}
	return &runningSeWait{slot: c.Slot, mask: c.Mask}, nil
}

type runningSeWait struct {
	slot int32
	mask uint32
}

func (r *runningSeWait) Update(ctx context.Context, env *Env, fastForward bool) (bool, error) {
	if fastForward {
		return true, nil
	}
	return env.Audio.WaitStatus(r.slot)&r.mask != 0, nil
}

// BgmPlay implements BGMPLAY: fire-and-forget background music start.
type BgmPlay struct {
	Params []byte
}

func (c *BgmPlay) ApplyState(*vm.State) {}

func (c *BgmPlay) Start(ctx context.Context, env *Env) (RunningCommand, error) {
	env.Audio.PlayBGM(c.Params)
	return nil, nil
}

// BgmStop implements BGMSTOP: blocks until the fade-out completes.
type BgmStop struct {
	FadeDuration tick.Ticks
}

func (c *BgmStop) ApplyState(*vm.State) {}

func (c *BgmStop) Start(ctx context.Context, env *Env) (RunningCommand, error) {
	done := env.Audio.StopBGM(c.FadeDuration)
	return &runningBgmStop{done: done}, nil
}

type runningBgmStop struct {
	done <-chan struct{}
}

func (r *runningBgmStop) Update(ctx context.Context, env *Env, fastForward bool) (bool, error) {
	if fastForward {
		return true, nil
	}
	select {
	case <-r.done:
		return true, nil
	default:
		return false, nil
	}
}

// SGet implements SGET global, dest: reads a global into a VM register,
// entirely within ApplyState since it has no asynchronous component.
type SGet struct {
	Global      int
	Destination scenario.Register
}

func (c *SGet) ApplyState(s *vm.State) {
	s.SetRegister(c.Destination, s.Globals[c.Global])
}

func (c *SGet) Start(ctx context.Context, env *Env) (RunningCommand, error) {
	return nil, nil
}

// SSet implements SSET global, value: writes a value into a global.
type SSet struct {
	Global int
	Value  int32
}

func (c *SSet) ApplyState(s *vm.State) {
	s.Globals[c.Global] = c.Value
}

func (c *SSet) Start(ctx context.Context, env *Env) (RunningCommand, error) {
	return nil, nil
}

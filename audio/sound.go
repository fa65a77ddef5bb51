package audio

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	formataudio "github.com/DCNick3/shin-go/format/audio"
)

// commandKind mirrors shin-audio's sound.rs Command enum (not present in
// the retrieved example set, but named exactly as handle.rs's three
// command constructors imply: SetVolume, SetPanning, Stop).
type commandKind int

const (
	cmdSetVolume commandKind = iota
	cmdSetPanning
	cmdStop
)

// command is one entry in a Sound's command queue, pushed by a Handle and
// drained on the audio output thread — shin-audio's lock-free ring buffer
// (ringbuf::HeapRb) generalized to a buffered Go channel, since no
// lock-free ring-buffer library appears anywhere in the example pack and
// a channel is the idiomatic Go substitute for a bounded SPSC queue.
type command struct {
	kind   commandKind
	target float32
	fade   time.Duration
}

const commandBufferCapacity = 16

// shared is the atomic state a Handle polls without touching the command
// queue, grounded on shin-audio's Shared (handle.rs's AudioHandle.shared).
type shared struct {
	waitStatus atomic.Uint32
	position   atomic.Uint32 // samples played
	amplitude  atomic.Uint32 // float32 bits of the last frame's peak magnitude
	stopped    atomic.Bool
	doneOnce   sync.Once
	done       chan struct{}
}

func newShared() *shared {
	return &shared{done: make(chan struct{})}
}

// Sound decodes a format/audio.FrameSource through a Resampler and applies
// volume/pan fades driven by its command queue, presenting the result as
// an io.Reader an oto.Player pulls 16-bit stereo PCM from. Grounded on
// shin-audio's AudioSound (data.rs/handle.rs), reading raw source frames
// through Resampler.Get the way the original's kira Sound::process does.
type Sound struct {
	source formataudio.FrameSource
	info   formataudio.Info

	resampler *Resampler
	block     []int16
	blockLen  int
	blockPos  int
	srcIndex  uint32
	frac      float32

	volume ramp
	pan    ramp
	speed  float32

	cmds   chan command
	shared *shared

	stopping    bool
	sourceEnded bool
}

// NewSound wraps source for playback at the given initial volume/pan
// (0..1 and -1..1 respectively), returning the Sound to hand to an
// oto.Player and the Handle a caller controls it through.
func NewSound(source formataudio.FrameSource, initialVolume, initialPan float32) (*Sound, *Handle) {
	info := source.Info()
	sh := newShared()
	sh.waitStatus.Store(uint32(StatusPlaying | StatusVolumeTweenerIdle | StatusPanningTweenerIdle | StatusPlaySpeedTweenerIdle))

	s := &Sound{
		source:    source,
		info:      info,
		resampler: NewResampler(0),
		block:     make([]int16, int(info.FrameSamples)*info.ChannelCount),
		volume:    newRamp(initialVolume),
		pan:       newRamp(initialPan),
		speed:     1,
		cmds:      make(chan command, commandBufferCapacity),
		shared:    sh,
	}
	return s, &Handle{cmds: s.cmds, shared: sh}
}

func (s *Sound) drainCommands(now time.Time) {
	for {
		select {
		case c := <-s.cmds:
			switch c.kind {
			case cmdSetVolume:
				s.volume.set(c.target, c.fade, now)
			case cmdSetPanning:
				s.pan.set(c.target, c.fade, now)
			case cmdStop:
				s.volume.set(0, c.fade, now)
				s.stopping = true
			}
		default:
			return
		}
	}
}

// nextSourceFrame decodes the next frame from source into the resampler
// window, setting sourceEnded once the source reports end of stream.
func (s *Sound) nextSourceFrame() Frame {
	if s.blockPos >= s.blockLen {
		n, err := s.source.ReadFrame(s.block)
		if err != nil || n == 0 {
			s.sourceEnded = true
			return Frame{}
		}
		s.blockLen = n * s.info.ChannelCount
		s.blockPos = 0
	}

	var l, r int16
	if s.info.ChannelCount == 1 {
		l = s.block[s.blockPos]
		r = l
		s.blockPos++
	} else {
		l = s.block[s.blockPos]
		r = s.block[s.blockPos+1]
		s.blockPos += 2
	}
	s.srcIndex++
	return Frame{L: float32(l) / 32768, R: float32(r) / 32768}
}

// Read fills p with interleaved 16-bit stereo PCM, satisfying io.Reader so
// a Sound can back an oto.Player directly. Returns io.EOF once a Stop
// command's fade has fully settled to silence and the shared state has
// been marked stopped, so oto retires the player.
func (s *Sound) Read(p []byte) (int, error) {
	now := time.Now()
	s.drainCommands(now)

	n := len(p) / 4
	for i := 0; i < n; i++ {
		s.frac += s.speed
		for s.frac >= 1 {
			s.frac--
			s.resampler.PushFrame(s.nextSourceFrame(), s.srcIndex)
		}

		f := s.resampler.Get(s.frac)
		vol := s.volume.value(now)
		pan := s.pan.value(now)
		l := f.L * vol * panGain(pan, true)
		r := f.R * vol * panGain(pan, false)

		binary.LittleEndian.PutUint16(p[i*4:], uint16(clampSample(l)))
		binary.LittleEndian.PutUint16(p[i*4+2:], uint16(clampSample(r)))

		peak := float32(math.Abs(float64(f.L)))
		if right := float32(math.Abs(float64(f.R))); right > peak {
			peak = right
		}
		s.shared.amplitude.Store(math.Float32bits(peak))
		s.shared.position.Store(s.srcIndex)
	}

	s.updateStatus(now)
	if s.sourceEnded || (s.stopping && s.volume.idle(now)) {
		s.shared.stopped.Store(true)
		s.shared.doneOnce.Do(func() { close(s.shared.done) })
		return n * 4, io.EOF
	}
	return n * 4, nil
}

func (s *Sound) updateStatus(now time.Time) {
	var st WaitStatus
	if s.shared.stopped.Load() {
		st |= StatusStopped
	} else {
		st |= StatusPlaying
	}
	if s.volume.idle(now) {
		st |= StatusVolumeTweenerIdle
	}
	if s.pan.idle(now) {
		st |= StatusPanningTweenerIdle
	}
	st |= StatusPlaySpeedTweenerIdle // no speed tween is ever queued yet
	s.shared.waitStatus.Store(uint32(st))
}

func panGain(pan float32, left bool) float32 {
	// equal-power pan law across [-1, 1]
	t := (pan + 1) / 2
	if left {
		return float32(math.Cos(float64(t) * math.Pi / 2))
	}
	return float32(math.Sin(float64(t) * math.Pi / 2))
}

func clampSample(v float32) int16 {
	s := v * 32767
	if s > 32767 {
		return 32767
	}
	if s < -32768 {
		return -32768
	}
	return int16(s)
}

package audio

import (
	"math"
	"time"
)

// Handle is the caller-facing control surface for a playing Sound,
// grounded on shin-audio's AudioHandle (handle.rs): every mutation is
// posted as a command rather than applied directly, since the Sound it
// addresses is being read from concurrently on the audio output thread.
type Handle struct {
	cmds   chan<- command
	shared *shared
}

// SetVolume fades the sound's volume (0..1, linear) to target over fade.
func (h *Handle) SetVolume(target float32, fade time.Duration) {
	h.push(command{kind: cmdSetVolume, target: target, fade: fade})
}

// SetPanning fades the sound's panning (-1 full left .. 1 full right) to
// target over fade.
func (h *Handle) SetPanning(target float32, fade time.Duration) {
	h.push(command{kind: cmdSetPanning, target: target, fade: fade})
}

// Stop fades the sound to silence over fade and retires it once the fade
// settles; the returned channel closes when that happens.
func (h *Handle) Stop(fade time.Duration) <-chan struct{} {
	h.push(command{kind: cmdStop, fade: fade})
	return h.shared.done
}

func (h *Handle) push(c command) {
	select {
	case h.cmds <- c:
	default:
		// command queue full: drop rather than block the VM thread, matching
		// shin-audio's try_push behavior on a full ring buffer.
	}
}

// WaitStatus reports the sound's current AudioWaitStatus bits.
func (h *Handle) WaitStatus() WaitStatus {
	return WaitStatus(h.shared.waitStatus.Load())
}

// Position returns the number of source samples played so far.
func (h *Handle) Position() uint32 {
	return h.shared.position.Load()
}

// Amplitude returns the most recent frame's peak magnitude (0..1),
// reserved for a future lip-sync feature the same way the original
// engine's get_amplitude is marked unused pending one.
func (h *Handle) Amplitude() float32 {
	bits := h.shared.amplitude.Load()
	return math.Float32frombits(bits)
}

package audio

import (
	"io"
	"testing"

	formataudio "github.com/DCNick3/shin-go/format/audio"
)

// constantSource yields an endless stream of a fixed stereo sample,
// enough to exercise Sound.Read without a real codec.
type constantSource struct {
	value int16
	left  int
}

func (s *constantSource) Info() formataudio.Info {
	return formataudio.Info{ChannelCount: 2, SampleRate: 48000, FrameSamples: 64}
}

func (s *constantSource) ReadFrame(buf []int16) (int, error) {
	if s.left <= 0 {
		return 0, nil
	}
	n := len(buf) / 2
	if n > s.left {
		n = s.left
	}
	for i := 0; i < n; i++ {
		buf[i*2] = s.value
		buf[i*2+1] = s.value
	}
	s.left -= n
	return n, nil
}

func (s *constantSource) SeekSamples(pos uint32) (uint32, error) { return pos, nil }

func TestSoundReadProducesNonSilentAudio(t *testing.T) {
	src := &constantSource{value: 16000, left: 4096}
	sound, _ := NewSound(src, 1, 0)

	buf := make([]byte, 256)
	n, err := sound.Read(buf)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("Read() = %d, want %d", n, len(buf))
	}

	allZero := true
	for _, b := range buf {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Fatal("expected nonzero PCM output for a nonzero constant source")
	}
}

func TestSoundStopFadesToSilenceThenEOF(t *testing.T) {
	src := &constantSource{value: 16000, left: 1 << 20}
	sound, handle := NewSound(src, 1, 0)

	done := handle.Stop(0)
	select {
	case <-done:
	default:
	}

	buf := make([]byte, 256)
	var lastErr error
	for i := 0; i < 100 && lastErr != io.EOF; i++ {
		_, lastErr = sound.Read(buf)
	}
	if lastErr != io.EOF {
		t.Fatal("expected Read to eventually report io.EOF after Stop(0)")
	}
	select {
	case <-done:
	default:
		t.Fatal("Stop's done channel should be closed once Read reports EOF")
	}
}

func TestWaitStatusReflectsStoppedSlot(t *testing.T) {
	var m Mixer
	m.slots = make(map[int32]voice)
	if got := m.WaitStatus(0); got&uint32(StatusStopped) == 0 {
		t.Fatalf("WaitStatus for an empty slot should report Stopped, got %#x", got)
	}
}

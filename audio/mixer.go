package audio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/DCNick3/shin-go/asset"
	formataudio "github.com/DCNick3/shin-go/format/audio"
	"github.com/DCNick3/shin-go/tick"
)

type rawBytesArgs struct{}

func loadRawBytes(_ context.Context, io asset.Io, path string, _ rawBytesArgs) ([]byte, error) {
	return asset.ReadAll(io, path)
}

// voice pairs a playing Sound's Handle with the oto.Player reading it, so
// both can be retired together.
type voice struct {
	handle *Handle
	player *oto.Player
}

// Mixer is the runtime's sound mixer, implementing command.AudioManager:
// PLAYSE/PLAYBGM fire-and-forget playback of an asset-backed sound,
// SEWAIT/BGMWAIT poll a Handle's WaitStatus, BGMSTOP fades the current
// BGM voice out. Grounded on shin-audio's split between AudioData (asset
// decode), AudioSound (the Sound in this package), and AudioHandle, with
// oto/v3 standing in for kira/cpal as the actual output device, following
// the NewContextOptions/NewContext/NewPlayer sequence
// IntuitionAmiga-IntuitionEngine's oto backend uses.
type Mixer struct {
	assets     *asset.Server
	ctx        *oto.Context
	sampleRate int

	mu    sync.Mutex
	slots map[int32]voice
	bgm   voice
}

// NewMixer opens an oto playback context at sampleRate (stereo, 16-bit)
// and returns a Mixer that decodes sounds through assets.
func NewMixer(assets *asset.Server, sampleRate int) (*Mixer, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("audio: open playback context: %w", err)
	}
	<-ready

	return &Mixer{
		assets:     assets,
		ctx:        ctx,
		sampleRate: sampleRate,
		slots:      make(map[int32]voice),
	}, nil
}

// loadSource reads path through the asset server and identifies its
// container. Known containers with no Go decoder in the dependency set
// (Opus, ADPCM — no such library appears in any example repo's go.mod)
// return a clear error rather than silently producing silence; this
// mirrors layer.Movie's undecodeable VideoFrameSource rather than
// fabricating a decoder.
func (m *Mixer) loadSource(path string) (formataudio.FrameSource, error) {
	data, err := asset.Load(context.Background(), m.assets, path, rawBytesArgs{}, loadRawBytes)
	if err != nil {
		return nil, err
	}
	container, err := formataudio.DetectContainer(data)
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("audio: no decoder available for container %d (path %q)", container, path)
}

func (m *Mixer) startVoice(src formataudio.FrameSource) voice {
	sound, handle := NewSound(src, 1, 0)
	player := m.ctx.NewPlayer(sound)
	player.Play()
	return voice{handle: handle, player: player}
}

// PlaySE decodes and plays the sound named by params (an asset path) on
// slot, replacing whatever was already playing there.
func (m *Mixer) PlaySE(slot int32, params []byte) {
	path := string(params)
	go func() {
		src, err := m.loadSource(path)
		if err != nil {
			return
		}
		v := m.startVoice(src)

		m.mu.Lock()
		old, had := m.slots[slot]
		m.slots[slot] = v
		m.mu.Unlock()

		if had {
			old.handle.Stop(0)
		}
	}()
}

// WaitStatus reports the AudioWaitStatus bits for slot, treating an empty
// slot as stopped (matching the original's initial-state semantics).
func (m *Mixer) WaitStatus(slot int32) uint32 {
	m.mu.Lock()
	v, ok := m.slots[slot]
	m.mu.Unlock()
	if !ok {
		return uint32(StatusStopped | StatusVolumeTweenerIdle | StatusPanningTweenerIdle | StatusPlaySpeedTweenerIdle)
	}
	return uint32(v.handle.WaitStatus())
}

// PlayBGM decodes and plays the track named by params, stopping (with no
// fade) and replacing whatever BGM voice was already playing.
func (m *Mixer) PlayBGM(params []byte) {
	path := string(params)
	go func() {
		src, err := m.loadSource(path)
		if err != nil {
			return
		}
		v := m.startVoice(src)

		m.mu.Lock()
		old := m.bgm
		m.bgm = v
		m.mu.Unlock()

		if old.handle != nil {
			old.handle.Stop(0)
		}
	}()
}

// StopBGM fades the current BGM voice to silence over fadeTicks, returning
// a channel closed once the fade settles. An empty BGM slot returns an
// already-closed channel.
func (m *Mixer) StopBGM(fadeTicks tick.Ticks) <-chan struct{} {
	m.mu.Lock()
	v := m.bgm
	m.bgm = voice{}
	m.mu.Unlock()

	if v.handle == nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return v.handle.Stop(time.Duration(fadeTicks.Seconds() * float64(time.Second)))
}

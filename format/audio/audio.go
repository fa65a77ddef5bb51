// Package audio decodes the engine's audio containers (Opus- and
// ADPCM-backed) and implements the Opus-in-Ogg remux the asset pipeline
// uses to hand playable streams to a standard Ogg/Opus decoder.
package audio

import "fmt"

// Info describes a decoded audio stream's format, independent of which
// codec backs it.
type Info struct {
	ChannelCount int
	SampleRate   uint32
	PreSkip      uint32
	FrameSamples uint32
}

// FrameSource yields decoded PCM frames one at a time. Concrete codecs
// (Opus, ADPCM) implement this; the runtime audio package's Sound wraps a
// FrameSource with resampling and tween-driven volume/pan.
type FrameSource interface {
	Info() Info
	// ReadFrame decodes the next frame into buf (interleaved int16 PCM,
	// ChannelCount channels) and returns the number of frames written. A
	// return of (0, nil) signals end of stream.
	ReadFrame(buf []int16) (int, error)
	// SeekSamples repositions the source to the given sample offset,
	// returning the offset actually landed on (codecs with frame-granular
	// seeking may round down).
	SeekSamples(pos uint32) (uint32, error)
}

var (
	opusMagic = [8]byte{'O', 'p', 'u', 's', 'H', 'e', 'a', 'd'}
	// adpcmMagic is not specified by any source material available here;
	// the four bytes below are a placeholder until a real sysse sample is
	// available to confirm the actual magic.
	adpcmMagic = [4]byte{'A', 'D', 'P', '4'}
)

// Container names which codec a file's magic bytes identify.
type Container int

const (
	ContainerUnknown Container = iota
	ContainerOpus
	ContainerADPCM
)

// DetectContainer inspects the leading bytes of data and identifies the
// codec container, without decoding anything.
func DetectContainer(data []byte) (Container, error) {
	switch {
	case len(data) >= 8 && string(data[:8]) == string(opusMagic[:]):
		return ContainerOpus, nil
	case len(data) >= 4 && string(data[:4]) == string(adpcmMagic[:]):
		return ContainerADPCM, nil
	default:
		return ContainerUnknown, fmt.Errorf("audio: unrecognized container magic % x", firstBytes(data, 8))
	}
}

func firstBytes(data []byte, n int) []byte {
	if len(data) < n {
		return data
	}
	return data[:n]
}

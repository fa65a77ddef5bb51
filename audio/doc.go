// Package audio is the runtime sound mixer: it decodes format/audio frame
// sources through a 4-tap resampler, drives per-sound volume/pan fades
// through a command queue a Handle posts to, and plays the result through
// ebitengine/oto/v3.
package audio

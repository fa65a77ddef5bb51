package audio

// WaitStatus mirrors the original engine's AudioWaitStatus bitflags
// (original_source/shin-core/src/vm/command/types/flags.rs), the bit
// layout SEWAIT/BGMWAIT mask against via command.AudioManager.WaitStatus.
type WaitStatus uint32

const (
	StatusPlaying              WaitStatus = 1 << 0
	StatusStopped              WaitStatus = 1 << 1
	StatusVolumeTweenerIdle    WaitStatus = 1 << 2
	StatusPanningTweenerIdle   WaitStatus = 1 << 3
	StatusPlaySpeedTweenerIdle WaitStatus = 1 << 4
)

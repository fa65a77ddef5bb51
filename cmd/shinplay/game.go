package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/DCNick3/shin-go/asset"
	"github.com/DCNick3/shin-go/audio"
	"github.com/DCNick3/shin-go/command"
	"github.com/DCNick3/shin-go/layer"
	"github.com/DCNick3/shin-go/message"
	"github.com/DCNick3/shin-go/render"
	"github.com/DCNick3/shin-go/tick"
	"github.com/DCNick3/shin-go/vm"
)

// screenWidth/screenHeight match the fixed canvas the layer tree composites
// against (layer.NewRain's default call site uses the same 1920x1080).
const (
	screenWidth  = 1920
	screenHeight = 1080
	sampleRate   = 48000
)

// noAudio is the fallback command.AudioManager for a headless run (no
// playback device available): every call is a no-op, SEWAIT/BGMWAIT
// resolve as if already idle rather than hanging the scenario forever.
type noAudio struct{}

func (noAudio) PlaySE(int32, []byte) {}
func (noAudio) WaitStatus(int32) uint32 {
	return uint32(audio.StatusStopped | audio.StatusVolumeTweenerIdle | audio.StatusPanningTweenerIdle | audio.StatusPlaySpeedTweenerIdle)
}
func (noAudio) PlayBGM([]byte) {}
func (noAudio) StopBGM(tick.Ticks) <-chan struct{} {
	done := make(chan struct{})
	close(done)
	return done
}

// noMessages is the fallback command.MessageManager used when no font
// could be loaded: text commands become silent no-ops instead of blocking
// AutoWait forever.
type noMessages struct{}

func (noMessages) SetStyle(int32)       {}
func (noMessages) SetText(string, bool) {}
func (noMessages) Finished() bool       { return true }
func (noMessages) Close() <-chan struct{} {
	done := make(chan struct{})
	close(done)
	return done
}

// keyboardInput reports WAIT's interrupt action as "is Space or Enter
// currently held", the simplest faithful stand-in for willow's button-poll
// InputSource absent a defined keymap.
type keyboardInput struct{}

func (keyboardInput) ActionPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyEnter)
}

func openAssetIo(root string) (asset.Io, func() error, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if info.IsDir() {
		return asset.NewDirIo(os.DirFS(root)), func() error { return nil }, nil
	}
	r, f, err := openRom(root)
	if err != nil {
		return nil, nil, err
	}
	return &romIo{r: r}, f.Close, nil
}

// game implements ebiten.Game, driving the interpreter/scheduler loop once
// per frame and compositing the layer tree plus the messagebox each Draw.
type game struct {
	interp    *vm.Interpreter
	scheduler *command.Scheduler
	env       *command.Env
	manager   *layer.Manager
	box       *message.Box
	font      *render.Font
	buf       *render.DynamicBuffer
	halted    bool
	fatal     error
}

func (g *game) Update() error {
	if g.halted {
		return g.fatal
	}

	const dt = tick.Ticks(1)
	g.manager.Update(dt)
	if g.box != nil {
		g.box.Update(dt)
	}

	ctx := context.Background()
	if g.scheduler.Busy() {
		idle, err := g.scheduler.Poll(ctx, g.env, false)
		if err != nil {
			g.halted, g.fatal = true, err
			return err
		}
		if !idle {
			return nil
		}
	}

	sig, err := g.interp.Step()
	if err != nil {
		g.halted, g.fatal = true, err
		return err
	}
	if sig == nil {
		g.halted = true
		return nil
	}

	r := g.interp.CommandArgs()
	cmd, err := command.Decode(sig.Instruction.CommandOp, r, g.interp.State())
	if err != nil {
		g.halted, g.fatal = true, err
		return err
	}
	g.interp.Commit(r)

	if err := g.scheduler.Dispatch(ctx, cmd, g.env); err != nil {
		g.halted, g.fatal = true, err
		return err
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.manager.Draw(screen, g.buf)

	if g.box == nil || g.font == nil || !g.box.Visible() {
		return
	}
	for _, e := range g.box.VisibleEvents() {
		if e.Kind != message.EventCharAt {
			continue
		}
		g.font.Draw(screen, string(e.Char), e.X, e.Y, message.Color{R: 1, G: 1, B: 1, A: 1})
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// runPlay wires asset/vm/command/layer/message/audio/render together and
// runs the named scenario in an Ebitengine window.
func runPlay(args []string) error {
	fset := flag.NewFlagSet("play", flag.ExitOnError)
	entryPoint := fset.Uint("entry", 0, "code offset to start execution at")
	fontPath := fset.String("font", "font/message.ttf", "asset path of the base message font")
	rubiFontPath := fset.String("rubi-font", "font/message.ttf", "asset path of the rubi annotation font")
	fset.Parse(args)
	if fset.NArg() != 2 {
		return fmt.Errorf("usage: shinplay play [flags] <root> <scenario>")
	}
	root, scenarioPath := fset.Arg(0), fset.Arg(1)

	assetIo, closeIo, err := openAssetIo(root)
	if err != nil {
		return err
	}
	defer closeIo()

	code, err := asset.ReadAll(assetIo, scenarioPath)
	if err != nil {
		return fmt.Errorf("read scenario %s: %w", scenarioPath, err)
	}

	server := asset.NewServer(assetIo, 4)
	manager := layer.NewManager(server)

	mixer, err := audio.NewMixer(server, sampleRate)
	var audioManager command.AudioManager = noAudio{}
	if err == nil {
		audioManager = mixer
	} else {
		fmt.Fprintf(os.Stderr, "shinplay: no audio device available, running muted: %v\n", err)
	}

	var box *message.Box
	var font *render.Font
	var messages command.MessageManager = noMessages{}
	if baseData, err := asset.ReadAll(assetIo, *fontPath); err == nil {
		if f, err := render.LoadFont(baseData, 36); err == nil {
			font = f
			rubi := f
			if *rubiFontPath != *fontPath {
				if rubiData, err := asset.ReadAll(assetIo, *rubiFontPath); err == nil {
					if rf, err := render.LoadFont(rubiData, 18); err == nil {
						rubi = rf
					}
				}
			}
			params := message.LayoutParams{LayoutWidth: screenWidth - 160, TextSize: 36, BaseFontHorizontalScale: 1}
			defaults := message.Defaults{DrawSpeed: 24, Fade: 0}
			box = message.NewBox(font, rubi, params, defaults)
			messages = box
		}
	}
	if font == nil {
		fmt.Fprintln(os.Stderr, "shinplay: no message font available, running without text")
	}

	state := vm.NewState(1)
	prog := &vm.Program{Code: code}
	interp := vm.New(prog, state, uint32(*entryPoint))

	env := &command.Env{
		VM:       state,
		Layers:   manager,
		Messages: messages,
		Audio:    audioManager,
		Input:    keyboardInput{},
	}

	g := &game{
		interp:    interp,
		scheduler: &command.Scheduler{},
		env:       env,
		manager:   manager,
		box:       box,
		font:      font,
		buf:       render.NewDynamicBuffer(),
	}

	ebiten.SetWindowSize(screenWidth/2, screenHeight/2)
	ebiten.SetWindowTitle("shinplay")
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/pincraft/assets"
	"github.com/lixenwraith/pincraft/audio"
	"github.com/lixenwraith/pincraft/config"
	"github.com/lixenwraith/pincraft/core"
	"github.com/lixenwraith/pincraft/engine"
	"github.com/lixenwraith/pincraft/input"
	"github.com/lixenwraith/pincraft/render"
	"github.com/lixenwraith/pincraft/scene"
)

var subtitles = map[string]string{
	config.LevelPinball: "Left/Right flip, Space launches. Enter to play, Esc quits.",
	config.LevelExplore: "WASD walk, mouse or , . turn, E inspects. Enter to play, Esc quits.",
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "pincraft: %v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}
	log.Printf("pincraft: level %s, layout %s, %d fps", cfg.Level, cfg.Layout, cfg.FrameRate)

	if err := run(cfg); err != nil {
		log.Printf("pincraft: %v", err)
		fmt.Fprintf(os.Stderr, "pincraft: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	manifest, err := assets.LoadManifest(cfg.AssetsPath)
	if err != nil {
		return err
	}
	level, err := scene.NewLevel(cfg.Level)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	core.RegisterScreen(screen)

	// Panic recovery: restore the terminal even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	hud := render.NewHUD(render.FieldScore, render.FieldDeaths)
	hud.Title = "PinCraft"
	hud.Subtitle = subtitles[cfg.Level]
	ms := scene.NewMainScene(level, hud)

	drawHUD := func() {
		screen.Fill(' ', tcell.StyleDefault.Background(render.Background))
		hud.Draw(screen)
		screen.Show()
	}

	ms.WillLoadAssets()
	drawHUD()
	sounds, err := assets.LoadSounds(manifest, func(ratio float64) {
		ms.AssetLoadProgress(ratio)
		drawHUD()
	})
	if err != nil {
		return err
	}
	ms.FinishedLoadingAssets()

	dev := openDevice(cfg.Mute)
	if sp, ok := dev.(*audio.SpeakerDevice); ok {
		defer sp.Close()
	}
	sound := audio.NewSound(dev, sounds)
	defer sound.StopMusic()

	in := input.New(cfg.KeyHoldTimeout)
	clock := engine.NewTimeProvider()
	ctx := scene.NewContext(manifest, level.Physics(manifest), scene.Deps{
		Input:  in,
		Sound:  sound,
		Clock:  clock,
		Layout: cfg.Layout,
	})
	if err := ms.Setup(ctx); err != nil {
		return err
	}

	runner := scene.NewRunner(ms, render.NewRenderer(screen), hud)
	runner.Resize(screen.Size())

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// Nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	frameTicker := time.NewTicker(cfg.FrameInterval())
	defer frameTicker.Stop()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					log.Printf("pincraft: quit after %d frames", runner.Frames())
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
				runner.Resize(ev.Size())
			}
			in.HandleEvent(ev, clock.Now())

		case <-frameTicker.C:
			runner.Frame()
			runner.Draw()
		}
	}
}

// openDevice returns the speaker, or a silent device when muted or unavailable
func openDevice(mute bool) audio.Device {
	if mute {
		return audio.NullDevice{}
	}
	dev, err := audio.OpenSpeaker()
	if err != nil {
		// Non-fatal, the game runs without sound
		log.Printf("pincraft: audio unavailable: %v", err)
		return audio.NullDevice{}
	}
	return dev
}

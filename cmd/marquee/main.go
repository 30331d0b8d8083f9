// Command marquee renders seamlessly looping item rows in the terminal.
// Each row is an independent engine instance; all rows share one
// pointer-following overlay. Move the mouse over a row to see it
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/marquee/config"
	"github.com/lixenwraith/marquee/core"
	"github.com/lixenwraith/marquee/engine"
	"github.com/lixenwraith/marquee/events"
	"github.com/lixenwraith/marquee/overlay"
	"github.com/lixenwraith/marquee/render"
	"github.com/lixenwraith/marquee/sched"
	"github.com/lixenwraith/marquee/status"
)

const frameInterval = 33 * time.Millisecond // ~30 FPS

var (
	rowsFlag         = flag.Int("rows", 2, "independent loop rows sharing one overlay")
	speedDesktopFlag = flag.Float64("speed-desktop", 12, "scroll speed in cells/second on wide terminals")
	speedMobileFlag  = flag.Float64("speed-mobile", 6, "scroll speed in cells/second on narrow terminals")
	reverseFlag      = flag.Bool("reverse", false, "scroll right instead of left")
	stopOnHoverFlag  = flag.Bool("stop-on-hover", false, "pause a row while the pointer rests on it")
	clickthroughFlag = flag.Bool("clickthrough", true, "allow clicking through to item links")
	soundFlag        = flag.Bool("sound", false, "play a tone when the pointer enters an item")
	configFlag       = flag.String("config", "", "settings file; flags override its values")
)

// demo item sets, one per row, cycled when -rows exceeds them
var rowItems = [][]core.Item{
	{
		{Title: "Autumn Collection", Image: core.Image{AssetURL: "https://img.example/autumn.jpg"},
			Button: &core.Link{URL: "https://example.com/autumn"}},
		{Title: "Winter Lookbook", Image: core.Image{AssetURL: "https://img.example/winter.jpg"},
			Button: &core.Link{URL: "https://example.com/winter", NewWindow: true}},
		{Title: "Archive Sale", Image: core.Image{AssetURL: "https://img.example/sale.jpg"}},
	},
	{
		{Title: "Studio Visits", Image: core.Image{AssetURL: "https://img.example/studio.jpg"}},
		{Title: "New Arrivals", Image: core.Image{AssetURL: "https://img.example/new.jpg"},
			Button: &core.Link{URL: "https://example.com/new"}},
		{Title: "Editorials", Image: core.Image{AssetURL: "https://img.example/edit.jpg"}},
		{Title: "About", Image: core.Image{AssetURL: "https://img.example/about.jpg"}},
	},
}

type loopRow struct {
	index int
	track *render.TerminalTrack
	anim  *render.TrackAnim
	inst  *engine.Instance
}

type app struct {
	screen   tcell.Screen
	frames   *sched.TickerFrames
	animator *render.Animator
	registry *overlay.Registry
	rows     []*loopRow
	st       *status.Registry

	audioReady bool

	hoverRow   int
	hoverChild int
	lastAction string
}

func (a *app) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventResize,
		events.EventPointerMove,
		events.EventPointerLeave,
		events.EventPointerClick,
	}
}

func (a *app) HandleEvent(_ struct{}, ev events.Event) {
	switch ev.Type {
	case events.EventResize:
		a.screen.Sync()
		for _, row := range a.rows {
			row.inst.NotifyResize()
		}

	case events.EventPointerMove:
		p := ev.Payload.(*events.PointerPayload)
		a.pointerMoved(int(p.X), int(p.Y))

	case events.EventPointerLeave:
		a.pointerLeave()

	case events.EventPointerClick:
		a.click()
	}
}

func (a *app) pointerMoved(x, y int) {
	for _, row := range a.rows {
		if !row.track.Contains(y) {
			continue
		}
		if a.hoverRow >= 0 && a.hoverRow != row.index {
			a.rows[a.hoverRow].inst.PointerLeft()
			a.rows[a.hoverRow].anim.SetHover(false)
		}

		child := row.track.HitTest(x, y, row.anim.Offset())
		row.inst.PointerMoved(float64(x), float64(y), child)
		row.anim.SetHover(true)

		if child >= 0 && (a.hoverRow != row.index || a.hoverChild != child) {
			a.playEnterTone()
		}
		a.hoverRow, a.hoverChild = row.index, child
		return
	}
	a.pointerLeave()
}

func (a *app) pointerLeave() {
	if a.hoverRow < 0 {
		return
	}
	a.rows[a.hoverRow].inst.PointerLeft()
	a.rows[a.hoverRow].anim.SetHover(false)
	a.hoverRow, a.hoverChild = -1, -1
}

func (a *app) click() {
	if a.hoverRow < 0 || a.hoverChild < 0 {
		return
	}
	row := a.rows[a.hoverRow]
	item, ok := row.inst.Resolve(a.hoverChild)
	if !ok || !item.Linkable() || !row.inst.Settings().AllowClickthrough {
		return
	}
	target := "same window"
	if item.OpensNewWindow(row.inst.Settings().NewWindowDefault) {
		target = "new window"
	}
	a.lastAction = fmt.Sprintf("open %s (%s)", item.Button.URL, target)
}

func (a *app) initAudio() {
	sampleRate := beep.SampleRate(44100)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("audio initialization failed: %v", err)
		return
	}
	a.audioReady = true
}

func (a *app) playEnterTone() {
	if !a.audioReady {
		return
	}
	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, 880)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(50*time.Millisecond), sine))
}

func (a *app) footer() string {
	ints := a.st.Ints
	return fmt.Sprintf("builds %d/%d  retries %d  rebuilds %d  overlay refs %d  %s  [q quits]",
		ints.Get(status.KeyBuildsCompleted).Load(),
		ints.Get(status.KeyBuildsStarted).Load(),
		ints.Get(status.KeyMeasureRetries).Load(),
		ints.Get(status.KeyResizeRebuilds).Load(),
		ints.Get(status.KeyOverlayRefs).Load(),
		a.lastAction)
}

func (a *app) cleanup() {
	for _, row := range a.rows {
		row.inst.Destroy()
	}
	a.animator.Stop()
	a.frames.Stop()
	if a.audioReady {
		speaker.Close()
	}
	a.screen.Fini()
}

// resolveOptions layers explicit flags over the optional settings file
func resolveOptions() (core.Settings, int, bool) {
	settings := core.Settings{
		SpeedMobile:       *speedMobileFlag,
		SpeedDesktop:      *speedDesktopFlag,
		Reverse:           *reverseFlag,
		StopOnHover:       *stopOnHoverFlag,
		AllowClickthrough: *clickthroughFlag,
	}
	rows := *rowsFlag
	sound := *soundFlag

	if *configFlag == "" {
		return settings, rows, sound
	}
	file, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("%v", err)
	}
	settings = file.Settings
	rows = file.Rows
	sound = file.Sound
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "speed-mobile":
			settings.SpeedMobile = *speedMobileFlag
		case "speed-desktop":
			settings.SpeedDesktop = *speedDesktopFlag
		case "reverse":
			settings.Reverse = *reverseFlag
		case "stop-on-hover":
			settings.StopOnHover = *stopOnHoverFlag
		case "clickthrough":
			settings.AllowClickthrough = *clickthroughFlag
		case "rows":
			rows = *rowsFlag
		case "sound":
			sound = *soundFlag
		}
	})
	return settings, rows, sound
}

func main() {
	flag.Parse()
	settings, rows, sound := resolveOptions()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.EnableFocus()

	a := &app{
		screen:     screen,
		frames:     sched.NewTickerFrames(frameInterval),
		st:         status.NewRegistry(),
		hoverRow:   -1,
		hoverChild: -1,
	}
	defer a.cleanup()

	if sound {
		a.initAudio()
	}

	viewport := render.NewScreenViewport(screen)
	a.animator = render.NewAnimator(screen, a.frames)
	a.registry = overlay.NewRegistry(a.frames, viewport, func() overlay.View {
		view := render.NewOverlayView()
		a.animator.SetOverlay(view)
		return view
	}, a.st)

	clock := sched.NewWallScheduler()
	provider := sched.NewMonotonicTimeProvider()

	for i := 0; i < rows; i++ {
		track := render.NewTerminalTrack(screen, 2+i*5, 3)
		anim := render.NewTrackAnim(track, provider, settings.Reverse, settings.StopOnHover)
		inst, err := engine.New(engine.Config{
			Items:    rowItems[i%len(rowItems)],
			Settings: settings,
			Track:    track,
			Viewport: viewport,
			Frames:   a.frames,
			Clock:    clock,
			Overlay:  a.registry,
			Publish:  anim.Publish,
			Status:   a.st,
		})
		if err != nil {
			screen.Fini()
			log.Fatalf("row %d: %v", i, err)
		}
		a.rows = append(a.rows, &loopRow{index: i, track: track, anim: anim, inst: inst})
		a.animator.Add(anim)
	}

	a.animator.SetFooter(a.footer)

	queue := events.NewQueue()
	router := events.NewRouter[struct{}](queue)
	router.Register(a)

	quit := make(chan struct{})
	go pollInput(a, queue, quit)

	a.frames.Start()
	var dispatch func()
	dispatch = func() {
		router.DispatchAll(struct{}{})
		a.frames.Schedule(dispatch)
	}
	a.frames.Schedule(dispatch)
	a.animator.Start()

	for _, row := range a.rows {
		if err := row.inst.Start(); err != nil {
			log.Printf("row %d build: %v", row.index, err)
		}
	}

	<-quit
}

// pollInput forwards terminal events into the loop event queue
// All state mutation happens on the frame goroutine via the router
func pollInput(a *app, queue *events.Queue, quit chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyEscape || tev.Key() == tcell.KeyCtrlC || tev.Rune() == 'q' {
				close(quit)
				return
			}

		case *tcell.EventMouse:
			x, y := tev.Position()
			queue.Push(events.Event{
				Type:      events.EventPointerMove,
				Payload:   &events.PointerPayload{X: float64(x), Y: float64(y), Track: -1, Child: -1},
				Timestamp: time.Now(),
			})
			if tev.Buttons()&tcell.Button1 != 0 {
				queue.Push(events.Event{
					Type:      events.EventPointerClick,
					Payload:   &events.PointerPayload{X: float64(x), Y: float64(y), Track: -1, Child: -1},
					Timestamp: time.Now(),
				})
			}

		case *tcell.EventFocus:
			if !tev.Focused {
				queue.Push(events.Event{
					Type:      events.EventPointerLeave,
					Timestamp: time.Now(),
				})
			}

		case *tcell.EventResize:
			w, h := tev.Size()
			queue.Push(events.Event{
				Type:      events.EventResize,
				Payload:   &events.ResizePayload{Width: float64(w), Height: float64(h)},
				Timestamp: time.Now(),
			})
		}
	}
}

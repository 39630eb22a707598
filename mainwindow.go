package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"net/url"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fynetheme "fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/lusingander/colorpicker"
	"github.com/roffe/txgauge/pkg/alarm"
	"github.com/roffe/txgauge/pkg/capture"
	"github.com/roffe/txgauge/pkg/config"
	"github.com/roffe/txgauge/pkg/dashboard"
	"github.com/roffe/txgauge/pkg/ebus"
	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/layout"
	"github.com/roffe/txgauge/pkg/mainmenu"
	"github.com/roffe/txgauge/pkg/presets"
	"github.com/roffe/txgauge/pkg/snapshot"
	apptheme "github.com/roffe/txgauge/pkg/theme"
	"github.com/roffe/txgauge/pkg/update"
	"github.com/roffe/txgauge/pkg/widgets/ebusmonitor"
	"github.com/roffe/txgauge/pkg/widgets/ledicon"
	"github.com/skratchdot/open-golang/open"
	sdialog "github.com/sqweek/dialog"
	"golang.design/x/clipboard"
)

type mainWindow struct {
	fyne.Window
	app fyne.App
	db  *dashboard.Dashboard
	bus *ebus.Bus

	status   *widget.Label
	alarmLed *ledicon.Widget
	openBtn  *widget.Button
	copyBtn  *widget.Button
	lastFile string

	clipboardOK bool
}

func newMainWindow(a fyne.App, cfg *config.Config, db *dashboard.Dashboard, bus *ebus.Bus) *mainWindow {
	mw := &mainWindow{
		Window:   a.NewWindow(cfg.Window.Title),
		app:      a,
		db:       db,
		bus:      bus,
		status:   widget.NewLabel(""),
		alarmLed: ledicon.New("no alarms"),
	}
	mw.alarmLed.SetOnColor(color.RGBA{R: 0xff, G: 0x20, B: 0x20, A: 0xff})
	if err := clipboard.Init(); err != nil {
		log.Println("clipboard unavailable:", err)
	} else {
		mw.clipboardOK = true
	}
	db.OnTapped = mw.showWidgetMenu

	snapBtn := widget.NewButtonWithIcon("Snapshot", fynetheme.DocumentSaveIcon(), func() {
		mw.savePNG("dashboard", mw.capture)
	})
	mw.openBtn = widget.NewButtonWithIcon("Open", fynetheme.FolderOpenIcon(), func() {
		if err := open.Run(mw.lastFile); err != nil {
			mw.showError(err)
		}
	})
	mw.openBtn.Disable()
	mw.copyBtn = widget.NewButtonWithIcon("Copy", fynetheme.ContentCopyIcon(), func() {
		mw.copyPNG(mw.capture)
	})
	if !mw.clipboardOK {
		mw.copyBtn.Disable()
	}

	statusRow := container.New(&layout.RatioContainer{Widths: []float32{0.36, 0.18, 0.14, 0.14, 0.14}},
		mw.status,
		mw.alarmLed,
		snapBtn,
		mw.openBtn,
		mw.copyBtn,
	)
	mw.SetContent(container.NewBorder(nil, statusRow, nil, nil, db.Content()))
	mw.SetMainMenu(mw.newMenu().GetMenu())
	mw.setStatus(fmt.Sprintf("%d widgets on %d topics", len(db.Widgets()), len(db.Topics())))
	return mw
}

func (mw *mainWindow) newMenu() *mainmenu.MainMenu {
	file := fyne.NewMenu("File",
		fyne.NewMenuItem("Save snapshot", func() { mw.savePNG("dashboard", mw.capture) }),
		fyne.NewMenuItem("Quick screenshot", func() {
			name, err := capture.Screenshot(mw.Canvas(), ".")
			if err != nil {
				mw.showError(err)
				return
			}
			mw.saved(name)
		}),
		fyne.NewMenuItem("Open preferences folder", func() {
			if err := open.Run(mw.app.Storage().RootURI().Path()); err != nil {
				mw.showError(err)
			}
		}),
	)
	view := fyne.NewMenu("View",
		fyne.NewMenuItem("Bus monitor", mw.showBusMonitor),
	)
	help := fyne.NewMenu("Help",
		fyne.NewMenuItem("Check for updates", func() { go mw.checkUpdate() }),
	)
	return mainmenu.New([]*fyne.Menu{file, view, help}, mw.showPreset)
}

func (mw *mainWindow) showBusMonitor() {
	mon := ebusmonitor.New()
	w := mw.app.NewWindow("Bus monitor")
	w.SetContent(mon)
	w.Resize(fyne.NewSize(480, 240))
	unsub := mw.bus.SubscribeAllFunc(mon.SetValue)
	w.SetOnClosed(unsub)
	w.Show()
}

// alarmChanged lights the status LED while any alarm is active.
func (mw *mainWindow) alarmChanged(e alarm.Event, active []alarm.Event) {
	mw.setStatus(e.String())
	if len(active) == 0 {
		mw.alarmLed.SetText("no alarms")
		mw.alarmLed.Off()
		return
	}
	mw.alarmLed.SetText(fmt.Sprintf("%d alarm(s)", len(active)))
	mw.alarmLed.On()
}

// showPreset previews a preset at mid scale.
func (mw *mainWindow) showPreset(name string) {
	b, err := snapshot.Preset(name, snapshot.Options{Size: 300, Value: mw.midValue(name), Background: apptheme.Background})
	if err != nil {
		mw.showError(err)
		return
	}
	img := canvas.NewImageFromReader(bytes.NewReader(b), name+".png")
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(300, 300))
	dialog.ShowCustom(name, "Close", img, mw)
}

func (mw *mainWindow) midValue(name string) float64 {
	p, err := presets.Get(name)
	if err != nil {
		return 0
	}
	for _, it := range p.Items {
		if it.Kind == gauge.KindNeedle && it.Range != nil {
			return (it.Range[0] + it.Range[1]) / 2
		}
	}
	return 0
}

func (mw *mainWindow) checkUpdate() {
	current := mw.app.Metadata().Version
	rel, err := update.New().Check(context.Background(), current)
	if err != nil {
		mw.setStatus("update check failed: " + err.Error())
		return
	}
	if rel == nil {
		mw.setStatus("running the latest version")
		return
	}
	u, err := url.Parse(rel.HTMLURL)
	if err != nil {
		mw.showError(err)
		return
	}
	link := widget.NewHyperlink("Get "+rel.TagName, u)
	link.TextStyle = fyne.TextStyle{Bold: true}
	dialog.ShowCustom("Update available", "Close", container.NewVBox(
		widget.NewLabel("Current version: v"+current),
		widget.NewLabel("Latest version: "+rel.TagName),
		link,
	), mw)
}

func (mw *mainWindow) setStatus(s string) {
	mw.status.SetText(s)
}

func (mw *mainWindow) showError(err error) {
	log.Println(err)
	dialog.ShowError(err, mw)
}

// capture encodes what the window currently shows.
func (mw *mainWindow) capture() ([]byte, error) {
	return capture.PNG(mw.Canvas())
}

func (mw *mainWindow) savePNG(name string, render func() ([]byte, error)) {
	filename, err := sdialog.File().Filter("PNG image", "png").Title("Save " + name).Save()
	if err != nil {
		if errors.Is(err, sdialog.ErrCancelled) {
			return
		}
		mw.showError(err)
		return
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		filename += ".png"
	}
	b, err := render()
	if err != nil {
		mw.showError(err)
		return
	}
	if err := os.WriteFile(filename, b, 0o644); err != nil {
		mw.showError(err)
		return
	}
	mw.saved(filename)
}

func (mw *mainWindow) saved(filename string) {
	mw.lastFile = filename
	mw.openBtn.Enable()
	mw.setStatus("saved " + filename)
}

func (mw *mainWindow) copyPNG(render func() ([]byte, error)) {
	if !mw.clipboardOK {
		return
	}
	b, err := render()
	if err != nil {
		mw.showError(err)
		return
	}
	clipboard.Write(clipboard.FmtImage, b)
	mw.setStatus("copied image to clipboard")
}

func (mw *mainWindow) showWidgetMenu(w *dashboard.Widget) {
	var modal *widget.PopUp
	items := []fyne.CanvasObject{
		widget.NewLabelWithStyle(w.Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabel(strings.Join(w.Topics, ", ")),
		widget.NewButton("Save PNG", func() {
			modal.Hide()
			mw.savePNG(w.Title, w.Surface.PNG)
		}),
	}
	if mw.clipboardOK {
		items = append(items, widget.NewButton("Copy", func() {
			modal.Hide()
			mw.copyPNG(w.Surface.PNG)
		}))
	}
	if w.NeedleColor() != nil {
		picker := colorpicker.New(200, colorpicker.StyleHueCircle)
		picker.SetOnChanged(func(c color.Color) {
			w.SetNeedleColor(c)
		})
		items = append(items, widget.NewLabel("Needle colour"), picker)
	}
	items = append(items, widget.NewButton("Close", func() {
		modal.Hide()
	}))
	modal = widget.NewModalPopUp(container.NewVBox(items...), mw.Canvas())
	modal.Show()
}

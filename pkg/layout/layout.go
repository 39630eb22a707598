package layout

import (
	"fyne.io/fyne/v2"
)

// RatioContainer gives each object a fixed share of the width. When the
// shares add up to less than one the rest is spread as gaps between the
// objects. Objects without a share are hidden.
type RatioContainer struct {
	Widths []float32
}

func (d *RatioContainer) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var w, h float32
	for _, o := range objects {
		ms := o.MinSize()
		w += ms.Width
		h = max(h, ms.Height)
	}
	return fyne.NewSize(w, h)
}

func (d *RatioContainer) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	n := min(len(objects), len(d.Widths))
	var total float32
	for _, w := range d.Widths[:n] {
		total += w
	}
	var gap float32
	if n > 1 && total < 1 {
		gap = size.Width * (1 - total) / float32(n-1)
	}
	var x float32
	for i, o := range objects {
		if i >= n {
			o.Hide()
			continue
		}
		width := size.Width * d.Widths[i]
		o.Resize(fyne.NewSize(width, size.Height))
		o.Move(fyne.NewPos(x, 0))
		x += width + gap
	}
}

// Package layout holds the fyne layouts used by the dashboard window.
package layout

import (
	"fyne.io/fyne/v2"
)

// Grid places objects row by row, top left first, in equal cells. Objects
// beyond Cols*Rows are hidden.
type Grid struct {
	Cols, Rows int
	Padding    float32
	lastSize   fyne.Size
	lastCount  int
}

func NewGrid(cols, rows int, padding float32) *Grid {
	return &Grid{
		Cols:    max(cols, 1),
		Rows:    max(rows, 1),
		Padding: padding,
	}
}

// Cell returns the position and size of cell i for a container of size.
func (g *Grid) Cell(i int, size fyne.Size) (fyne.Position, fyne.Size) {
	padding2 := g.Padding * 2
	cellWidth := (size.Width - float32(g.Cols)*padding2) / float32(g.Cols)
	cellHeight := (size.Height - float32(g.Rows)*padding2) / float32(g.Rows)
	row, col := i/g.Cols, i%g.Cols
	pos := fyne.NewPos(
		float32(col)*(cellWidth+padding2)+g.Padding,
		float32(row)*(cellHeight+padding2)+g.Padding,
	)
	return pos, fyne.NewSize(max(cellWidth, 0), max(cellHeight, 0))
}

func (g *Grid) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if size == g.lastSize && len(objects) == g.lastCount {
		return
	}
	g.lastSize, g.lastCount = size, len(objects)

	for i, obj := range objects {
		if i >= g.Rows*g.Cols {
			obj.Hide()
			continue
		}
		pos, cell := g.Cell(i, size)
		obj.Move(pos)
		obj.Resize(cell)
	}
}

func (g *Grid) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var w, h float32
	for _, o := range objects {
		ms := o.MinSize()
		w = max(w, ms.Width)
		h = max(h, ms.Height)
	}
	w += 2 * g.Padding
	h += 2 * g.Padding
	return fyne.Size{Width: w * float32(g.Cols), Height: h * float32(g.Rows)}
}

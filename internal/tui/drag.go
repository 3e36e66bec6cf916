package tui

import "math"

// dragActivationDistance is the pointer travel, in cells, that turns a press into a drag.
const dragActivationDistance = 8

// pointerDrag tracks a mouse press that may become a drag. Until the pointer travels
// dragActivationDistance cells the gesture is a click.
type pointerDrag struct {
	pressed bool
	active  bool
	startX  int
	startY  int
	from    int
	over    int
}

func (d *pointerDrag) press(x, y, index int) {
	*d = pointerDrag{pressed: true, startX: x, startY: y, from: index, over: index}
}

// motion updates the gesture and reports whether it is an active drag afterwards.
func (d *pointerDrag) motion(x, y, index int) bool {
	if !d.pressed {
		return false
	}
	if !d.active && distance(x-d.startX, y-d.startY) >= dragActivationDistance {
		d.active = true
	}
	if d.active && index >= 0 {
		d.over = index
	}
	return d.active
}

type dropResult struct {
	from    int
	to      int
	dropped bool
	click   bool
}

func (d *pointerDrag) release(x, y, index int) dropResult {
	if !d.pressed {
		return dropResult{}
	}
	d.motion(x, y, index)
	var res dropResult
	if d.active {
		res = dropResult{from: d.from, to: d.over, dropped: d.from != d.over}
	} else {
		res = dropResult{from: d.from, to: d.from, click: true}
	}
	*d = pointerDrag{}
	return res
}

func (d *pointerDrag) cancel() {
	*d = pointerDrag{}
}

func distance(dx, dy int) float64 {
	return math.Hypot(float64(dx), float64(dy))
}

// keyboardDrag is the keyboard counterpart: pick up a row, step the drop target, drop.
type keyboardDrag struct {
	active bool
	from   int
	over   int
}

func (k *keyboardDrag) pickUp(index int) {
	*k = keyboardDrag{active: true, from: index, over: index}
}

func (k *keyboardDrag) step(delta, n int) {
	if !k.active || n <= 0 {
		return
	}
	k.over = clamp(k.over+delta, 0, n-1)
}

func (k *keyboardDrag) drop() dropResult {
	if !k.active {
		return dropResult{}
	}
	res := dropResult{from: k.from, to: k.over, dropped: k.from != k.over}
	*k = keyboardDrag{}
	return res
}

func (k *keyboardDrag) cancel() {
	*k = keyboardDrag{}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

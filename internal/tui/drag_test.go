package tui

import "testing"

func TestPointerDrag_ShortGestureIsClick(t *testing.T) {
	var d pointerDrag
	d.press(10, 5, 2)
	if d.motion(13, 9, 6) {
		t.Fatalf("expected 5 cells of travel to stay below the threshold")
	}
	res := d.release(13, 9, 6)
	if !res.click || res.dropped || res.from != 2 {
		t.Fatalf("expected click on row 2; got %+v", res)
	}
	if d.pressed {
		t.Fatalf("expected release to reset the gesture")
	}
}

func TestPointerDrag_ActivatesAtEightCells(t *testing.T) {
	var d pointerDrag
	d.press(0, 3, 0)
	if !d.motion(0, 11, 8) {
		t.Fatalf("expected drag to activate after 8 cells")
	}
	d.motion(0, 9, 6)
	res := d.release(0, 9, 6)
	if !res.dropped || res.from != 0 || res.to != 6 {
		t.Fatalf("expected drop 0->6; got %+v", res)
	}
}

func TestPointerDrag_DropOnSourceIsNoop(t *testing.T) {
	var d pointerDrag
	d.press(0, 3, 0)
	d.motion(9, 3, 0)
	res := d.release(9, 3, 0)
	if res.dropped || res.click {
		t.Fatalf("expected no-op drop; got %+v", res)
	}
}

func TestPointerDrag_OffListKeepsLastTarget(t *testing.T) {
	var d pointerDrag
	d.press(0, 3, 0)
	d.motion(0, 12, 4)
	res := d.release(0, 40, -1)
	if !res.dropped || res.to != 4 {
		t.Fatalf("expected drop on last row hovered; got %+v", res)
	}
}

func TestKeyboardDrag(t *testing.T) {
	var k keyboardDrag
	k.step(1, 5)
	if k.active {
		t.Fatalf("expected step without pick up to do nothing")
	}
	k.pickUp(1)
	k.step(1, 5)
	k.step(1, 5)
	k.step(10, 5)
	if k.over != 4 {
		t.Fatalf("expected target clamped to 4; got %d", k.over)
	}
	res := k.drop()
	if !res.dropped || res.from != 1 || res.to != 4 || k.active {
		t.Fatalf("unexpected drop: %+v active=%v", res, k.active)
	}

	k.pickUp(2)
	k.step(-1, 5)
	k.cancel()
	if k.active {
		t.Fatalf("expected cancel to end the drag")
	}
}

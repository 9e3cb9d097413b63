package aspen

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CameraTween interpolates camera parameters on the logic side and emits a
// fresh SetCamera command per tick. The renderer itself never interpolates
// (SetCamera replaces the camera wholesale), so smooth motion belongs to the
// producer: advance the tween each update and push the emitted command onto
// the frame's list.
type CameraTween struct {
	originX  *gween.Tween
	originY  *gween.Tween
	scale    *gween.Tween
	rotation *gween.Tween
	last     SetCamera
	done     bool
}

// NewCameraTween animates from one camera state to another over duration
// seconds with the given easing function.
func NewCameraTween(from, to SetCamera, duration float32, easeFn ease.TweenFunc) *CameraTween {
	return &CameraTween{
		originX:  gween.New(from.OriginX, to.OriginX, duration, easeFn),
		originY:  gween.New(from.OriginY, to.OriginY, duration, easeFn),
		scale:    gween.New(from.Scale, to.Scale, duration, easeFn),
		rotation: gween.New(from.Rotation, to.Rotation, duration, easeFn),
		last:     from,
	}
}

// Update advances the tween by dt seconds and returns the SetCamera command
// for the new state. done is true once the target state is reached; further
// calls keep returning the terminal command.
func (t *CameraTween) Update(dt float32) (cmd SetCamera, done bool) {
	if t.done {
		return t.last, true
	}

	ox, doneX := t.originX.Update(dt)
	oy, doneY := t.originY.Update(dt)
	s, doneS := t.scale.Update(dt)
	rot, doneR := t.rotation.Update(dt)

	t.last = SetCamera{OriginX: ox, OriginY: oy, Scale: s, Rotation: rot}
	t.done = doneX && doneY && doneS && doneR
	return t.last, t.done
}

// Done reports whether the tween has reached its target state.
func (t *CameraTween) Done() bool {
	return t.done
}

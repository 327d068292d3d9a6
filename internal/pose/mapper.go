package pose

import "github.com/vovakirdan/motion-arcade/internal/core"

// Map converts a keypoint from normalized frame space to surface pixels.
// The transform is a plain scale: the service already decides whether the
// frame is mirrored, so Map never flips an axis.
func Map(kp Keypoint, surfaceW, surfaceH int) core.Vec2 {
	return core.Vec2{
		X: kp.X * float64(surfaceW),
		Y: kp.Y * float64(surfaceH),
	}
}

// MapUsable looks up a keypoint, applies the confidence threshold and maps
// it to surface pixels in one step.
func MapUsable(p *Pose, name Name, threshold float64, surfaceW, surfaceH int) (core.Vec2, bool) {
	kp, ok := p.Usable(name, threshold)
	if !ok {
		return core.Vec2{}, false
	}
	return Map(kp, surfaceW, surfaceH), true
}

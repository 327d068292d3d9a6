// Package pose holds the body-keypoint model produced by the pose-estimation
// service, the mapping from keypoint space to surface pixels, and the
// backends that deliver poses to the runtime.
package pose

// Name identifies a body keypoint. Values follow the 17-point COCO layout
// used by common single-person pose models.
type Name string

const (
	Nose          Name = "nose"
	LeftEye       Name = "left_eye"
	RightEye      Name = "right_eye"
	LeftEar       Name = "left_ear"
	RightEar      Name = "right_ear"
	LeftShoulder  Name = "left_shoulder"
	RightShoulder Name = "right_shoulder"
	LeftElbow     Name = "left_elbow"
	RightElbow    Name = "right_elbow"
	LeftWrist     Name = "left_wrist"
	RightWrist    Name = "right_wrist"
	LeftHip       Name = "left_hip"
	RightHip      Name = "right_hip"
	LeftKnee      Name = "left_knee"
	RightKnee     Name = "right_knee"
	LeftAnkle     Name = "left_ankle"
	RightAnkle    Name = "right_ankle"
)

// Names lists every keypoint in model order.
var Names = []Name{
	Nose, LeftEye, RightEye, LeftEar, RightEar,
	LeftShoulder, RightShoulder, LeftElbow, RightElbow,
	LeftWrist, RightWrist, LeftHip, RightHip,
	LeftKnee, RightKnee, LeftAnkle, RightAnkle,
}

// Known reports whether n is one of Names.
func (n Name) Known() bool {
	for _, k := range Names {
		if n == k {
			return true
		}
	}
	return false
}

// Keypoint is a named position in normalized frame space ([0,1] on both
// axes, origin top-left) with the model's confidence for it.
type Keypoint struct {
	Name       Name    `json:"name" yaml:"name"`
	X          float64 `json:"x" yaml:"x"`
	Y          float64 `json:"y" yaml:"y"`
	Confidence float64 `json:"score" yaml:"score"`
}

// Pose is the ordered keypoint set of one detected person.
type Pose struct {
	Keypoints []Keypoint `json:"keypoints" yaml:"keypoints"`
}

// Find returns the keypoint with the given name.
func (p *Pose) Find(name Name) (Keypoint, bool) {
	if p == nil {
		return Keypoint{}, false
	}
	for _, kp := range p.Keypoints {
		if kp.Name == name {
			return kp, true
		}
	}
	return Keypoint{}, false
}

// Usable returns the keypoint only when its confidence exceeds threshold.
// A nil pose has no usable keypoints.
func (p *Pose) Usable(name Name, threshold float64) (Keypoint, bool) {
	kp, ok := p.Find(name)
	if !ok || kp.Confidence <= threshold {
		return Keypoint{}, false
	}
	return kp, true
}

// First returns the first detection of an estimate, or nil when nobody
// was detected. Only one person ever drives a game.
func First(poses []Pose) *Pose {
	if len(poses) == 0 {
		return nil
	}
	p := poses[0]
	return &p
}

package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraPose is the viewer's position and facing, reported by the
// renderer. Focus targets are recomputed against it every frame so a
// targeted item tracks the viewer like a head-up display element.
type CameraPose struct {
	Position mgl64.Vec3 `json:"position"`
	Forward  mgl64.Vec3 `json:"forward"`
	Up       mgl64.Vec3 `json:"up"`
}

// DefaultCameraPose is the viewer at the origin looking down -Z.
func DefaultCameraPose() CameraPose {
	return CameraPose{
		Forward: mgl64.Vec3{0, 0, -1},
		Up:      mgl64.Vec3{0, 1, 0},
	}
}

// Config holds the scene's tunable motion constants. No other behavior
// depends on their exact values.
type Config struct {
	// FocusDistance is how far in front of the viewer a targeted item
	// settles.
	FocusDistance float64

	// GiftLift and FrameLift are the per-category vertical offsets of
	// the focus pose along the camera's up vector.
	GiftLift  float64
	FrameLift float64

	// FocusSpeed and DriftSpeed are the exponential approach rates for
	// targeted and resting items. Focus is faster so a selected item
	// snaps into view; rest drift stays ambient.
	FocusSpeed float64
	DriftSpeed float64

	// SwayAmplitude and SwayFrequency shape the per-item idle
	// oscillation.
	SwayAmplitude float64
	SwayFrequency float64

	// SwayYaw is the idle rotation amplitude in radians.
	SwayYaw float64

	// AnimSpeed is the approach rate of the secondary animation (gift
	// lid, frame tilt).
	AnimSpeed float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		FocusDistance: 2.5,
		GiftLift:      0.3,
		FrameLift:     0.1,
		FocusSpeed:    6.0,
		DriftSpeed:    2.0,
		SwayAmplitude: 0.08,
		SwayFrequency: 0.4,
		SwayYaw:       0.25,
		AnimSpeed:     3.0,
	}
}

// Interpolator advances item transforms toward their per-frame targets.
type Interpolator struct {
	cfg Config
}

// NewInterpolator creates an Interpolator with the given configuration.
func NewInterpolator(cfg Config) *Interpolator {
	return &Interpolator{cfg: cfg}
}

// FocusTarget returns the camera-relative focus position for a category:
// in front of the viewer at the focus distance, lifted along the
// viewer's up vector.
func (ip *Interpolator) FocusTarget(cam CameraPose, cat Category) mgl64.Vec3 {
	lift := ip.cfg.GiftLift
	if cat == CategoryFrame {
		lift = ip.cfg.FrameLift
	}
	return cam.Position.
		Add(cam.Forward.Mul(ip.cfg.FocusDistance)).
		Add(cam.Up.Mul(lift))
}

// Step advances one item by dt seconds. now is the scene clock used for
// the idle oscillation.
func (ip *Interpolator) Step(it *Item, formation Formation, targeted bool, cam CameraPose, now, dt float64) {
	var target mgl64.Vec3
	var speed float64

	if targeted {
		target = ip.FocusTarget(cam, it.Category)
		speed = ip.cfg.FocusSpeed
	} else {
		bob := ip.cfg.SwayAmplitude * math.Sin(2*math.Pi*ip.cfg.SwayFrequency*now+it.Phase)
		target = it.Rest(formation).Add(mgl64.Vec3{0, bob, 0})
		speed = ip.cfg.DriftSpeed
	}

	alpha := clamp01(speed * dt)
	it.Position = it.Position.Add(target.Sub(it.Position).Mul(alpha))

	var targetRot mgl64.Quat
	if targeted {
		targetRot = faceViewer(it.Position, cam, it.Rotation)
	} else {
		yaw := ip.cfg.SwayYaw * math.Sin(math.Pi*ip.cfg.SwayFrequency*now+it.Phase)
		targetRot = mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0})
	}
	// Slerp keeps the blend shortest-path; no discontinuous snapping.
	it.Rotation = mgl64.QuatSlerp(it.Rotation, targetRot, alpha).Normalize()

	animTarget := 0.0
	if targeted {
		animTarget = 1.0
	}
	it.Anim += (animTarget - it.Anim) * clamp01(ip.cfg.AnimSpeed*dt)
}

// faceViewer returns the orientation that turns an item toward the
// camera. When item and camera coincide there is no defined facing;
// the current rotation is kept.
func faceViewer(pos mgl64.Vec3, cam CameraPose, current mgl64.Quat) mgl64.Quat {
	if cam.Position.Sub(pos).Len() < 1e-9 {
		return current
	}
	return mgl64.QuatLookAtV(pos, cam.Position, cam.Up)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

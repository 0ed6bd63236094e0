package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/rt-one/pkg/core"
)

// ErrInvalidCamera is returned when a camera configuration cannot produce a viewport
var ErrInvalidCamera = errors.New("invalid camera")

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center         core.Point3 // Camera position
	LookAt         core.Point3 // Point the camera is looking at
	Up             core.Vec3   // Up direction (usually (0,1,0))
	AspectRatio    float64     // Width / height
	ViewportHeight float64     // Explicit viewport height at the focal plane; wins over VFov when > 0
	VFov           float64     // Vertical field of view in degrees
	FocalLength    float64     // Distance from the camera to the viewport
	Aperture       float64     // Lens diameter, 0 for a pinhole camera
	FocusDistance  float64     // Distance to the plane in perfect focus, 0 uses FocalLength
}

// DefaultCameraConfig returns the pinhole camera at the origin looking down -z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:         core.NewVec3(0, 0, 0),
		LookAt:         core.NewVec3(0, 0, -1),
		Up:             core.NewVec3(0, 1, 0),
		AspectRatio:    16.0 / 9.0,
		ViewportHeight: 2.0,
		FocalLength:    1.0,
	}
}

// MergeCameraConfig overlays the non-zero fields of override onto base.
// Center and LookAt are taken as a pair when either is set.
// Setting VFov without ViewportHeight clears the base viewport height.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base

	zero := core.Vec3{}
	if override.Center != zero || override.LookAt != zero {
		result.Center = override.Center
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
		result.ViewportHeight = 0
	}
	if override.ViewportHeight != 0 {
		result.ViewportHeight = override.ViewportHeight
	}
	if override.FocalLength != 0 {
		result.FocalLength = override.FocalLength
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}

	return result
}

// Camera generates rays for rendering
type Camera struct {
	config          CameraConfig
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Camera basis; w points backwards
	lensRadius      float64
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := validateCameraConfig(config); err != nil {
		return nil, err
	}

	viewportHeight := config.ViewportHeight
	if viewportHeight == 0 {
		theta := config.VFov * math.Pi / 180.0
		viewportHeight = 2.0 * math.Tan(theta/2) * config.FocalLength
	}
	viewportWidth := config.AspectRatio * viewportHeight

	// Camera coordinate system
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	// The viewport is scaled from the focal plane out to the focus plane
	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.FocalLength
	}
	scale := focusDistance / config.FocalLength

	origin := config.Center
	horizontal := u.Multiply(viewportWidth * scale)
	vertical := v.Multiply(viewportHeight * scale)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		config:          config,
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}, nil
}

func validateCameraConfig(config CameraConfig) error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidCamera, fmt.Sprintf(format, args...))
	}

	if !positiveFinite(config.AspectRatio) {
		return invalid("aspect ratio %v", config.AspectRatio)
	}
	if !positiveFinite(config.FocalLength) {
		return invalid("focal length %v", config.FocalLength)
	}
	if config.ViewportHeight != 0 {
		if !positiveFinite(config.ViewportHeight) {
			return invalid("viewport height %v", config.ViewportHeight)
		}
	} else if !(config.VFov > 0 && config.VFov < 180) {
		return invalid("vertical fov %v outside (0, 180)", config.VFov)
	}
	if config.Aperture < 0 || math.IsNaN(config.Aperture) || math.IsInf(config.Aperture, 0) {
		return invalid("aperture %v", config.Aperture)
	}
	if config.FocusDistance < 0 || math.IsNaN(config.FocusDistance) || math.IsInf(config.FocusDistance, 0) {
		return invalid("focus distance %v", config.FocusDistance)
	}
	if !config.Center.IsFinite() || !config.LookAt.IsFinite() || !config.Up.IsFinite() {
		return invalid("non-finite center %v, look at %v or up %v", config.Center, config.LookAt, config.Up)
	}

	view := config.Center.Subtract(config.LookAt)
	if view.NearZero() {
		return invalid("center and look at coincide at %v", config.Center)
	}
	if config.Up.Cross(view).NearZero() {
		return invalid("up %v is parallel to the view direction", config.Up)
	}
	return nil
}

func positiveFinite(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// GetRay generates a pinhole ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// (0, 0) is the lower left corner of the viewport.
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// SampleRay generates a ray for (s, t) with its origin jittered across the lens.
// A pinhole camera never consults the sampler.
func (c *Camera) SampleRay(s, t float64, sampler core.Sampler) core.Ray {
	if c.lensRadius <= 0 {
		return c.GetRay(s, t)
	}

	rd := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// ImageHeight returns the pixel height matching the camera aspect ratio for a given width
func (c *Camera) ImageHeight(width int) int {
	return max(1, int(float64(width)/c.config.AspectRatio))
}

// Forward returns the unit direction the camera is looking
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// Origin returns the camera position
func (c *Camera) Origin() core.Point3 {
	return c.origin
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

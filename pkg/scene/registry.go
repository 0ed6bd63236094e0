package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned when looking up a scene name that is not registered
var ErrUnknownScene = errors.New("unknown scene")

// Builder constructs a scene from caller options
type Builder func(opts Options) (*Scene, error)

// SceneInfo describes a registered scene
type SceneInfo struct {
	ID          string  // Name used on the command line
	Description string  // One line summary
	Order       int     // Position in the staged progression
	Build       Builder // Constructor
}

var registry = map[string]SceneInfo{}

func register(order int, id, description string, build Builder) {
	registry[id] = SceneInfo{ID: id, Description: description, Order: order, Build: build}
}

func init() {
	register(1, "gradient", "White to blue sky gradient", NewGradientScene)
	register(2, "ray-sphere", "Flat amber mask of a single sphere", NewRaySphereScene)
	register(3, "normals", "Single sphere shaded by surface normal", NewNormalsScene)
	register(4, "world", "Sphere on a ground sphere shaded by normal", NewWorldScene)
	register(5, "antialiasing", "Normal shaded world with 100 samples per pixel", NewAntialiasingScene)
	register(6, "diffuse", "Path traced lambertian spheres", NewDiffuseScene)
	register(7, "metal", "Diffuse sphere between two mirrors", NewMetalScene)
	register(8, "fuzz", "Diffuse sphere between two brushed metals", NewFuzzScene)
	register(9, "glass", "Solid glass, diffuse and metal spheres", NewGlassScene)
	register(10, "hollow-glass", "Glass shell made of a nested inverted sphere", NewHollowGlassScene)
	register(11, "camera", "Two spheres seen through a 90 degree field of view", NewCameraScene)
	register(12, "defocus", "Hollow glass world with depth of field", NewDefocusScene)
	register(13, "final", "Random sphere field with depth of field", NewFinalScene)
}

// Lookup returns the registered scene with the given id
func Lookup(id string) (SceneInfo, error) {
	info, ok := registry[id]
	if !ok {
		return SceneInfo{}, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	return info, nil
}

// New builds the named scene
func New(id string, opts Options) (*Scene, error) {
	info, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	return info.Build(opts)
}

// ListScenes returns all registered scenes in progression order
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, info := range registry {
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Order < scenes[j].Order
	})
	return scenes
}

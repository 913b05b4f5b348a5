package game

import "fmt"

// PlaceholderVisual is substituted when an enemy's model fails to
// resolve. The render layer draws it as an untextured box; gameplay
// stats are unaffected.
const PlaceholderVisual = "placeholder_box"

// VisualResolver maps an archetype visual key to a handle the render
// layer understands. Resolution happens once at spawn time, fully
// decoupled from the per-frame combat loop.
type VisualResolver interface {
	Resolve(key string) (string, error)
}

// StaticVisualResolver resolves keys from a fixed table. Missing keys
// are errors, which the wave scheduler recovers from locally with the
// placeholder.
type StaticVisualResolver map[string]string

// Resolve implements VisualResolver.
func (r StaticVisualResolver) Resolve(key string) (string, error) {
	if handle, ok := r[key]; ok {
		return handle, nil
	}
	return "", fmt.Errorf("no visual registered for key %q", key)
}

// DefaultVisuals returns the stock model table covering every shipped
// archetype.
func DefaultVisuals() StaticVisualResolver {
	return StaticVisualResolver{
		"enemy_grunt":  "models/grunt.glb",
		"enemy_runner": "models/runner.glb",
		"enemy_brute":  "models/brute.glb",
	}
}

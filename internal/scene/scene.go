// Package scene loads YAML scene descriptions: bodies, rays and the detector
// configuration used to query them.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/epa"
	"github.com/akmonengine/feather2d/geometry"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/akmonengine/feather2d/sat"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a scene.
type File struct {
	// Detector is one of "gjk", "sat" or "fallback" (SAT with GJK fallback).
	Detector string     `yaml:"detector"`
	GJK      GJKConfig  `yaml:"gjk"`
	EPA      EPAConfig  `yaml:"epa"`
	Fallback []string   `yaml:"fallback"` // shape types routed to GJK
	Bodies   []BodySpec `yaml:"bodies"`
	Rays     []RaySpec  `yaml:"rays"`
}

type GJKConfig struct {
	MaxIterations   int      `yaml:"max_iterations"`
	DetectEpsilon   *float64 `yaml:"detect_epsilon"`
	DistanceEpsilon *float64 `yaml:"distance_epsilon"`
}

type EPAConfig struct {
	MaxIterations   int      `yaml:"max_iterations"`
	DistanceEpsilon *float64 `yaml:"distance_epsilon"`
}

type ShapeSpec struct {
	Type     string      `yaml:"type"` // circle, rectangle, polygon, segment
	Radius   float64     `yaml:"radius"`
	Width    float64     `yaml:"width"`
	Height   float64     `yaml:"height"`
	Vertices [][]float64 `yaml:"vertices"`
}

type BodySpec struct {
	Name     string    `yaml:"name"`
	Shape    ShapeSpec `yaml:"shape"`
	Position []float64 `yaml:"position"`
	Rotation float64   `yaml:"rotation"` // degrees
}

type RaySpec struct {
	Name      string    `yaml:"name"`
	Start     []float64 `yaml:"start"`
	Direction []float64 `yaml:"direction"`
	MaxLength float64   `yaml:"max_length"`
}

// Ray is a named ray of the scene
type Ray struct {
	Name      string
	Ray       geometry.Ray
	MaxLength float64
}

// Scene is a loaded scene, ready to be queried.
type Scene struct {
	Bodies    []*feather2d.Body
	Rays      []Ray
	Detector  feather2d.Detector
	Distance  feather2d.DistanceDetector
	Raycaster feather2d.RaycastDetector

	names map[uuid.UUID]string
}

// Name returns the scene name of a body ID
func (s *Scene) Name(id uuid.UUID) string {
	return s.names[id]
}

// BodyID derives the stable ID of a named body.
func BodyID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))
}

// LoadFile reads a scene from a YAML file.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Load reads a scene from YAML. Unknown fields are rejected.
func Load(r io.Reader) (*Scene, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file File
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	return Build(file)
}

// Build turns a decoded file into a scene.
func Build(file File) (*Scene, error) {
	g, err := buildGJK(file.GJK, file.EPA)
	if err != nil {
		return nil, err
	}

	detector, err := buildDetector(file.Detector, file.Fallback, g)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Detector:  detector,
		Distance:  g,
		Raycaster: feather2d.NewRaycaster(g),
		names:     make(map[uuid.UUID]string, len(file.Bodies)),
	}

	var errs []error
	for i, spec := range file.Bodies {
		body, err := buildBody(spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("body %d: %w", i, err))
			continue
		}
		if _, exists := s.names[body.ID]; exists {
			errs = append(errs, fmt.Errorf("body %d: %w: duplicate name %q", i, geometry.ErrInvalidArgument, spec.Name))
			continue
		}
		s.names[body.ID] = spec.Name
		s.Bodies = append(s.Bodies, body)
	}

	for i, spec := range file.Rays {
		ray, err := buildRay(spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("ray %d: %w", i, err))
			continue
		}
		s.Rays = append(s.Rays, ray)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return s, nil
}

func buildGJK(gc GJKConfig, ec EPAConfig) (*gjk.GJK, error) {
	g := gjk.New()
	if gc.MaxIterations != 0 {
		if err := g.SetMaxIterations(gc.MaxIterations); err != nil {
			return nil, err
		}
	}
	if gc.DetectEpsilon != nil {
		if err := g.SetDetectEpsilon(*gc.DetectEpsilon); err != nil {
			return nil, err
		}
	}
	if gc.DistanceEpsilon != nil {
		if err := g.SetDistanceEpsilon(*gc.DistanceEpsilon); err != nil {
			return nil, err
		}
	}

	solver := epa.New()
	if ec.MaxIterations != 0 {
		if err := solver.SetMaxIterations(ec.MaxIterations); err != nil {
			return nil, err
		}
	}
	if ec.DistanceEpsilon != nil {
		if err := solver.SetDistanceEpsilon(*ec.DistanceEpsilon); err != nil {
			return nil, err
		}
	}
	if err := g.SetSolver(solver); err != nil {
		return nil, err
	}

	return g, nil
}

func buildDetector(name string, fallback []string, g *gjk.GJK) (feather2d.Detector, error) {
	switch name {
	case "", "gjk":
		return g, nil
	case "sat":
		return sat.New(), nil
	case "fallback":
		conditions := make([]feather2d.Condition, 0, len(fallback))
		for _, shapeType := range fallback {
			condition, err := singleTyped(shapeType)
			if err != nil {
				return nil, err
			}
			conditions = append(conditions, condition)
		}
		return feather2d.NewFallback(sat.New(), g, conditions...)
	}
	return nil, fmt.Errorf("%w: unknown detector %q", geometry.ErrInvalidArgument, name)
}

func singleTyped(shapeType string) (feather2d.Condition, error) {
	switch shapeType {
	case "circle":
		return feather2d.SingleTyped[*geometry.Circle]{}, nil
	case "polygon", "rectangle":
		return feather2d.SingleTyped[*geometry.Polygon]{}, nil
	case "segment":
		return feather2d.SingleTyped[*geometry.Segment]{}, nil
	}
	return nil, fmt.Errorf("%w: unknown shape type %q", geometry.ErrInvalidArgument, shapeType)
}

func vec2(values []float64, field string) (mgl64.Vec2, error) {
	if len(values) == 0 {
		return mgl64.Vec2{}, nil
	}
	if len(values) != 2 {
		return mgl64.Vec2{}, fmt.Errorf("%w: %s needs 2 components, got %d", geometry.ErrInvalidArgument, field, len(values))
	}
	return mgl64.Vec2{values[0], values[1]}, nil
}

func buildShape(spec ShapeSpec) (geometry.Convex, error) {
	switch spec.Type {
	case "circle":
		return geometry.NewCircle(spec.Radius)
	case "rectangle":
		return geometry.NewRectangle(spec.Width, spec.Height)
	case "polygon", "segment":
		vertices := make([]mgl64.Vec2, 0, len(spec.Vertices))
		for i, v := range spec.Vertices {
			p, err := vec2(v, fmt.Sprintf("vertex %d", i))
			if err != nil {
				return nil, err
			}
			vertices = append(vertices, p)
		}
		if spec.Type == "polygon" {
			return geometry.NewPolygon(vertices...)
		}
		if len(vertices) != 2 {
			return nil, fmt.Errorf("%w: segment needs 2 vertices, got %d", geometry.ErrInvalidArgument, len(vertices))
		}
		return geometry.NewSegment(vertices[0], vertices[1])
	}
	return nil, fmt.Errorf("%w: unknown shape type %q", geometry.ErrInvalidArgument, spec.Type)
}

func buildBody(spec BodySpec) (*feather2d.Body, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: body has no name", geometry.ErrInvalidArgument)
	}

	shape, err := buildShape(spec.Shape)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Name, err)
	}

	position, err := vec2(spec.Position, "position")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Name, err)
	}

	return &feather2d.Body{
		ID:    BodyID(spec.Name),
		Shape: shape,
		Transform: geometry.Transform{
			Position: position,
			Rotation: mgl64.DegToRad(spec.Rotation),
		},
	}, nil
}

func buildRay(spec RaySpec) (Ray, error) {
	start, err := vec2(spec.Start, "start")
	if err != nil {
		return Ray{}, err
	}
	direction, err := vec2(spec.Direction, "direction")
	if err != nil {
		return Ray{}, err
	}
	if geometry.IsZero(direction) {
		return Ray{}, fmt.Errorf("%w: ray %q has no direction", geometry.ErrInvalidArgument, spec.Name)
	}
	if spec.MaxLength < 0 {
		return Ray{}, fmt.Errorf("%w: ray %q max length is negative", geometry.ErrInvalidArgument, spec.Name)
	}

	return Ray{
		Name:      spec.Name,
		Ray:       geometry.NewRay(start, direction),
		MaxLength: spec.MaxLength,
	}, nil
}

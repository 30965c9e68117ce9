package feather2d

import (
	"math/rand"
	"testing"

	"github.com/akmonengine/feather2d/geometry"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/akmonengine/feather2d/sat"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper functions

func newBox(t testing.TB, width, height float64) *geometry.Polygon {
	t.Helper()

	box, err := geometry.NewRectangle(width, height)
	require.NoError(t, err)
	return box
}

func newCircle(t testing.TB, radius float64) *geometry.Circle {
	t.Helper()

	c, err := geometry.NewCircle(radius)
	require.NoError(t, err)
	return c
}

func newSegment(t testing.TB, a, b mgl64.Vec2) *geometry.Segment {
	t.Helper()

	s, err := geometry.NewSegment(a, b)
	require.NoError(t, err)
	return s
}

// testBodies returns two overlapping boxes and two overlapping circles, far apart
func testBodies(t testing.TB) []*Body {
	box := newBox(t, 1, 1)
	ball := newCircle(t, 0.5)

	return []*Body{
		NewBody(box, geometry.NewTranslation(0, 0)),
		NewBody(box, geometry.NewTranslation(0.5, 0)),
		NewBody(ball, geometry.NewTranslation(5, 0)),
		NewBody(ball, geometry.NewTranslation(5.8, 0)),
	}
}

func TestNewBody(t *testing.T) {
	a := NewBody(newBox(t, 1, 1), geometry.NewTransform())
	b := NewBody(newBox(t, 1, 1), geometry.NewTransform())

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAllPairs(t *testing.T) {
	bodies := testBodies(t)

	pairs := AllPairs(bodies)
	require.Len(t, pairs, 6)
	assert.Same(t, bodies[0], pairs[0].BodyA)
	assert.Same(t, bodies[1], pairs[0].BodyB)
	assert.Same(t, bodies[2], pairs[5].BodyA)
	assert.Same(t, bodies[3], pairs[5].BodyB)

	assert.Empty(t, AllPairs(nil))
	assert.Empty(t, AllPairs(bodies[:1]))
}

func TestNarrowPhase(t *testing.T) {
	bodies := testBodies(t)
	pairs := AllPairs(bodies)

	contacts, err := NarrowPhase(gjk.New(), pairs, 1)
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	assert.Equal(t, bodies[0].ID, contacts[0].BodyA)
	assert.Equal(t, bodies[1].ID, contacts[0].BodyB)
	assert.InDelta(t, 0.5, contacts[0].Penetration.Depth, 1e-6)
	assert.InDelta(t, 1, contacts[0].Penetration.Normal.X(), 1e-6)

	assert.Equal(t, bodies[2].ID, contacts[1].BodyA)
	assert.Equal(t, bodies[3].ID, contacts[1].BodyB)
	assert.InDelta(t, 0.2, contacts[1].Penetration.Depth, 1e-9)
}

func TestNarrowPhase_WorkersAgree(t *testing.T) {
	bodies := randomBodies(t, 40, 1)
	pairs := AllPairs(bodies)

	for _, detector := range []Detector{gjk.New(), sat.New()} {
		sequential, err := NarrowPhase(detector, pairs, 1)
		require.NoError(t, err)
		require.NotEmpty(t, sequential)

		for _, workers := range []int{0, 3, 16} {
			parallel, err := NarrowPhase(detector, pairs, workers)
			require.NoError(t, err)
			assert.Equal(t, sequential, parallel, "%T with %d workers", detector, workers)
		}
	}
}

func TestNarrowPhase_InvalidArguments(t *testing.T) {
	box := newBox(t, 1, 1)
	valid := NewBody(box, geometry.NewTransform())

	_, err := NarrowPhase(nil, nil, 1)
	require.ErrorIs(t, err, ErrInvalidArgument)

	pairs := []Pair{
		{BodyA: valid, BodyB: valid},
		{BodyA: nil, BodyB: valid},
		{BodyA: valid, BodyB: &Body{ID: uuid.New()}},
	}
	_, err = NarrowPhase(gjk.New(), pairs, 1)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorContains(t, err, "pair 1: body A: invalid argument: body is nil")
	assert.ErrorContains(t, err, "pair 2: body B")
	assert.NotContains(t, err.Error(), "pair 0")

	contacts, err := NarrowPhase(gjk.New(), nil, 1)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestDistances(t *testing.T) {
	bodies := testBodies(t)
	pairs := AllPairs(bodies)

	proximities, err := Distances(gjk.New(), pairs, 2)
	require.NoError(t, err)

	// Both overlapping pairs are omitted
	require.Len(t, proximities, 4)
	assert.Equal(t, bodies[0].ID, proximities[0].BodyA)
	assert.Equal(t, bodies[2].ID, proximities[0].BodyB)
	assert.InDelta(t, 4, proximities[0].Separation.Distance, 1e-6)
	assert.InDelta(t, 1, proximities[0].Separation.Normal.X(), 1e-4)

	assert.Equal(t, bodies[1].ID, proximities[3].BodyA)
	assert.Equal(t, bodies[3].ID, proximities[3].BodyB)
	assert.InDelta(t, 4.3, proximities[3].Separation.Distance, 1e-6)

	_, err = Distances(nil, pairs, 1)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Distances(gjk.New(), []Pair{{BodyA: bodies[0]}}, 1)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTask(t *testing.T) {
	for _, workers := range []int{1, 3, 10, 50} {
		data := make([]int, 10)
		for i := range data {
			data[i] = i
		}

		visits := make([]int, len(data))
		task(workers, data, func(i int) {
			visits[i]++
		})

		for i, v := range visits {
			assert.Equal(t, 1, v, "element %d with %d workers", i, workers)
		}
	}

	task(4, []int{}, func(int) {
		t.Error("no element to visit")
	})
}

func randomBodies(t testing.TB, n int, seed int64) []*Body {
	r := rand.New(rand.NewSource(seed))
	shapes := []geometry.Convex{
		newBox(t, 1, 1),
		newBox(t, 2, 0.5),
		newCircle(t, 0.5),
		newSegment(t, mgl64.Vec2{-1, 0}, mgl64.Vec2{1, 0}),
	}

	bodies := make([]*Body, n)
	for i := range bodies {
		tr := geometry.Transform{
			Position: mgl64.Vec2{r.Float64() * 10, r.Float64() * 10},
			Rotation: r.Float64() * 6.28,
		}
		bodies[i] = NewBody(shapes[i%len(shapes)], tr)
	}
	return bodies
}

func BenchmarkNarrowPhase(b *testing.B) {
	bodies := randomBodies(b, 200, 42)
	pairs := AllPairs(bodies)
	detector := gjk.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NarrowPhase(detector, pairs, 4); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDistances(b *testing.B) {
	bodies := randomBodies(b, 200, 42)
	pairs := AllPairs(bodies)
	detector := gjk.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Distances(detector, pairs, 4); err != nil {
			b.Fatal(err)
		}
	}
}

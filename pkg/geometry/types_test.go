package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	assert.Equal(t, 10.0, r.Left())
	assert.Equal(t, 20.0, r.Top())
	assert.Equal(t, 40.0, r.Right())
	assert.Equal(t, 60.0, r.Bottom())
}

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{
			name: "disjoint",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(20, 20, 10, 10),
			want: NewRect(0, 0, 30, 30),
		},
		{
			name: "contained",
			a:    NewRect(0, 0, 100, 100),
			b:    NewRect(10, 10, 5, 5),
			want: NewRect(0, 0, 100, 100),
		},
		{
			name: "zero rect keeps origin",
			a:    Rect{},
			b:    NewRect(10, 20, 30, 40),
			want: NewRect(0, 0, 40, 60),
		},
		{
			name: "negative coordinates",
			a:    Rect{},
			b:    NewRect(-5, -10, 3, 4),
			want: NewRect(-5, -10, 5, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Union(tt.b))
		})
	}
}

func TestRectIsEmpty(t *testing.T) {
	assert.True(t, Rect{}.IsEmpty())
	assert.True(t, NewRect(5, 5, 0, 10).IsEmpty())
	assert.True(t, NewRect(5, 5, 10, 0).IsEmpty())
	assert.False(t, NewRect(0, 0, 1, 1).IsEmpty())
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	assert.True(t, r.Contains(NewPoint2D(5, 5)))
	assert.True(t, r.Contains(NewPoint2D(0, 0)))
	assert.True(t, r.Contains(NewPoint2D(10, 10)))
	assert.False(t, r.Contains(NewPoint2D(10.1, 5)))
	assert.False(t, r.Contains(NewPoint2D(-0.1, 5)))
}

func TestPointDistance(t *testing.T) {
	a := NewPoint2D(0, 0)
	b := NewPoint2D(3, 4)
	assert.InDelta(t, 5.0, a.Distance(b), 1e-9)
	assert.InDelta(t, 5.0, b.Distance(a), 1e-9)
}

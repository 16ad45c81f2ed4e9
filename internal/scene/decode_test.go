package scene

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floorplan-viewer/pkg/geometry"
)

func TestLoadEndToEnd(t *testing.T) {
	doc := `{"locationId":"L1","children":[{"type":"layer","children":[` +
		`{"type":"rect","x":0,"y":0,"w":100,"h":50,"fill":"aabbcc"},` +
		`{"type":"desk","deskId":"D1","x":10,"y":10}]}]}`

	root, err := Load([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "L1", root.LocationID)
	require.Len(t, root.Layers, 1)
	require.Len(t, root.Layers[0].Children, 2)

	rect, ok := root.Layers[0].Children[0].(*Rect)
	require.True(t, ok)
	assert.Equal(t, 100.0, rect.Width)
	require.NotNil(t, rect.Fill)
	assert.Equal(t, color.RGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 255}, *rect.Fill)
	assert.Nil(t, rect.Stroke)

	desk, ok := root.Layers[0].Children[1].(*Desk)
	require.True(t, ok)
	assert.Equal(t, "D1", desk.DeskID)

	assert.Equal(t, geometry.NewRect(0, 0, 100, 50), root.Extent())
}

func TestLoadTestdata(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "office.json"))
	require.NoError(t, err)

	root, err := Load(data)
	require.NoError(t, err)

	assert.Equal(t, "hq-floor-3", root.LocationID)
	require.Len(t, root.Layers, 3)
	assert.Len(t, root.Layers[0].Children, 3)
	assert.Len(t, root.Layers[1].Children, 5)
	assert.Empty(t, root.Layers[2].Children)
	assert.Len(t, root.Desks(), 5)
	assert.Equal(t, geometry.NewRect(0, 0, 400, 300), root.Extent())
}

func TestDecodeOrderPreserved(t *testing.T) {
	doc := map[string]any{
		"locationId": "L1",
		"children": []any{
			map[string]any{"type": "layer", "children": []any{
				map[string]any{"type": "desk", "deskId": "first", "x": 1, "y": 1},
				map[string]any{"type": "desk", "deskId": "second", "x": 2, "y": 2},
				map[string]any{"type": "desk", "deskId": "third", "x": 3, "y": 3},
			}},
			map[string]any{"type": "layer"},
		},
	}

	root, err := DecodeRoot(doc)
	require.NoError(t, err)
	require.Len(t, root.Layers, 2)

	ids := make([]string, 0, 3)
	for _, child := range root.Layers[0].Children {
		desk, ok := child.(*Desk)
		require.True(t, ok)
		ids = append(ids, desk.DeskID)
	}
	assert.Equal(t, []string{"first", "second", "third"}, ids)
}

func TestDecodeMissingChildrenIsEmpty(t *testing.T) {
	root, err := Load([]byte(`{"locationId":"L1"}`))
	require.NoError(t, err)
	assert.Empty(t, root.Layers)

	root, err = Load([]byte(`{"locationId":"L1","children":[{"type":"layer"}]}`))
	require.NoError(t, err)
	require.Len(t, root.Layers, 1)
	assert.Empty(t, root.Layers[0].Children)
}

func TestDecodeColorAbsenceVsParsed(t *testing.T) {
	doc := `{"locationId":"L1","children":[{"type":"layer","children":[` +
		`{"type":"rect","x":0,"y":0,"w":1,"h":1},` +
		`{"type":"rect","x":0,"y":0,"w":1,"h":1,"fill":"000000"}]}]}`

	root, err := Load([]byte(doc))
	require.NoError(t, err)

	bare := root.Layers[0].Children[0].(*Rect)
	black := root.Layers[0].Children[1].(*Rect)
	assert.Nil(t, bare.Fill)
	require.NotNil(t, black.Fill)
	assert.Equal(t, color.RGBA{A: 255}, *black.Fill)
}

func TestDecodeFailFast(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want any
	}{
		{
			name: "bogus leaf type",
			doc:  `{"children":[{"type":"layer","children":[{"type":"bogus"}]}]}`,
			want: &SchemaError{},
		},
		{
			name: "missing locationId",
			doc:  `{"children":[]}`,
			want: &SchemaError{},
		},
		{
			name: "non-layer at top level",
			doc:  `{"locationId":"L1","children":[{"type":"rect","x":0,"y":0,"w":1,"h":1}]}`,
			want: &SchemaError{},
		},
		{
			name: "missing type discriminant",
			doc:  `{"locationId":"L1","children":[{}]}`,
			want: &SchemaError{},
		},
		{
			name: "rect missing height",
			doc:  `{"locationId":"L1","children":[{"type":"layer","children":[{"type":"rect","x":0,"y":0,"w":1}]}]}`,
			want: &SchemaError{},
		},
		{
			name: "desk missing deskId",
			doc:  `{"locationId":"L1","children":[{"type":"layer","children":[{"type":"desk","x":0,"y":0}]}]}`,
			want: &SchemaError{},
		},
		{
			name: "non-numeric coordinate",
			doc:  `{"locationId":"L1","children":[{"type":"layer","children":[{"type":"desk","deskId":"D1","x":"left","y":0}]}]}`,
			want: &TypeError{},
		},
		{
			name: "locationId not a string",
			doc:  `{"locationId":7}`,
			want: &TypeError{},
		},
		{
			name: "children not a list",
			doc:  `{"locationId":"L1","children":{}}`,
			want: &TypeError{},
		},
		{
			name: "invalid fill color",
			doc:  `{"locationId":"L1","children":[{"type":"layer","children":[{"type":"rect","x":0,"y":0,"w":1,"h":1,"fill":"zzz"}]}]}`,
			want: &ParseError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Load([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, root, "no partial tree on failure")
			switch tt.want.(type) {
			case *SchemaError:
				var se *SchemaError
				assert.ErrorAs(t, err, &se)
			case *TypeError:
				var te *TypeError
				assert.ErrorAs(t, err, &te)
			case *ParseError:
				var pe *ParseError
				assert.ErrorAs(t, err, &pe)
			}
		})
	}
}

func TestSchemaErrorNamesOffendingNode(t *testing.T) {
	doc := `{"locationId":"L1","children":[{"type":"layer","children":[` +
		`{"type":"desk","deskId":"D1","x":0,"y":0},{"type":"wall"}]}]}`

	_, err := Load([]byte(doc))
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "plan.children[0].children[1]", se.Path)
}

func TestDecodeNegativeSizePassesThrough(t *testing.T) {
	doc := `{"locationId":"L1","children":[{"type":"layer","children":[` +
		`{"type":"rect","x":10,"y":10,"w":-5,"h":-5}]}]}`

	root, err := Load([]byte(doc))
	require.NoError(t, err)
	rect := root.Layers[0].Children[0].(*Rect)
	assert.Equal(t, -5.0, rect.Width)
	assert.Equal(t, -5.0, rect.Height)
}

func TestDecodeRootAcceptsIntScalars(t *testing.T) {
	// Hand-built documents carry int scalars rather than float64.
	doc := map[string]any{
		"locationId": "L1",
		"children": []any{
			map[string]any{"type": "layer", "children": []any{
				map[string]any{"type": "rect", "x": 1, "y": 2, "w": 3, "h": 4},
			}},
		},
	}
	root, err := DecodeRoot(doc)
	require.NoError(t, err)
	rect := root.Layers[0].Children[0].(*Rect)
	assert.Equal(t, geometry.NewRect(1, 2, 3, 4), rect.Extent())
}

package scene

import (
	"encoding/json"
	"fmt"
	"image/color"

	"floorplan-viewer/pkg/colorutil"
)

// Node type discriminants understood by the decoder.
const (
	typeLayer = "layer"
	typeRect  = "rect"
	typeDesk  = "desk"
)

// Load parses a JSON floorplan document into a Root tree.
// Decoding is eager and all-or-nothing: the first structural or type error
// anywhere aborts the load and no partial tree is returned.
func Load(data []byte) (*Root, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode floorplan document: %w", err)
	}
	return DecodeRoot(doc)
}

// DecodeRoot builds a Root from an already-decoded generic document.
func DecodeRoot(doc map[string]any) (*Root, error) {
	const path = "plan"

	locationID, err := stringField(doc, "locationId", path)
	if err != nil {
		return nil, err
	}

	children, err := childList(doc, path)
	if err != nil {
		return nil, err
	}

	root := &Root{LocationID: locationID}
	for i, child := range children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		node, typ, err := childNode(child, childPath)
		if err != nil {
			return nil, err
		}
		if typ != typeLayer {
			return nil, &SchemaError{Path: childPath, Reason: fmt.Sprintf("unexpected type %q, want %q", typ, typeLayer)}
		}
		layer, err := decodeLayer(node, childPath)
		if err != nil {
			return nil, err
		}
		root.Layers = append(root.Layers, layer)
	}
	return root, nil
}

// decodeLayer builds a Layer, dispatching each child on its type discriminant.
func decodeLayer(node map[string]any, path string) (*Layer, error) {
	children, err := childList(node, path)
	if err != nil {
		return nil, err
	}

	layer := &Layer{}
	for i, child := range children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		childNode, typ, err := childNode(child, childPath)
		if err != nil {
			return nil, err
		}

		var element Element
		switch typ {
		case typeRect:
			element, err = decodeRect(childNode, childPath)
		case typeDesk:
			element, err = decodeDesk(childNode, childPath)
		default:
			return nil, &SchemaError{Path: childPath, Reason: fmt.Sprintf("unexpected type %q, want %q or %q", typ, typeDesk, typeRect)}
		}
		if err != nil {
			return nil, err
		}
		layer.Children = append(layer.Children, element)
	}
	return layer, nil
}

func decodeRect(node map[string]any, path string) (*Rect, error) {
	x, err := numberField(node, "x", path)
	if err != nil {
		return nil, err
	}
	y, err := numberField(node, "y", path)
	if err != nil {
		return nil, err
	}
	w, err := numberField(node, "w", path)
	if err != nil {
		return nil, err
	}
	h, err := numberField(node, "h", path)
	if err != nil {
		return nil, err
	}
	fill, err := colorField(node, "fill", path)
	if err != nil {
		return nil, err
	}
	stroke, err := colorField(node, "stroke", path)
	if err != nil {
		return nil, err
	}
	// Negative sizes pass through unchanged; rejecting them is left to
	// document authors, not the decoder.
	return &Rect{X: x, Y: y, Width: w, Height: h, Fill: fill, Stroke: stroke}, nil
}

func decodeDesk(node map[string]any, path string) (*Desk, error) {
	deskID, err := stringField(node, "deskId", path)
	if err != nil {
		return nil, err
	}
	x, err := numberField(node, "x", path)
	if err != nil {
		return nil, err
	}
	y, err := numberField(node, "y", path)
	if err != nil {
		return nil, err
	}
	return &Desk{DeskID: deskID, X: x, Y: y}, nil
}

// childNode checks that a list entry is an object with a string type
// discriminant and returns both.
func childNode(child any, path string) (map[string]any, string, error) {
	node, ok := child.(map[string]any)
	if !ok {
		return nil, "", &TypeError{Field: path, Want: "object", Value: child}
	}
	v, ok := node["type"]
	if !ok {
		return nil, "", &SchemaError{Path: path, Reason: "missing type discriminant"}
	}
	typ, ok := v.(string)
	if !ok {
		return nil, "", &TypeError{Field: path + ".type", Want: "string", Value: v}
	}
	return node, typ, nil
}

// childList returns the node's children list. A missing key is an empty
// sequence, not an error.
func childList(node map[string]any, path string) ([]any, error) {
	v, ok := node["children"]
	if !ok || v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, &TypeError{Field: path + ".children", Want: "list", Value: v}
	}
	return list, nil
}

// numberField extracts a required numeric field.
func numberField(node map[string]any, key, path string) (float64, error) {
	v, ok := node[key]
	if !ok {
		return 0, &SchemaError{Path: path, Reason: "missing required field " + key}
	}
	return parseNumber(path+"."+key, v)
}

// parseNumber converts a generic numeric scalar to float64. JSON decoding
// yields float64; int is accepted for hand-built documents.
func parseNumber(field string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	}
	return 0, &TypeError{Field: field, Want: "number", Value: v}
}

// stringField extracts a required string field.
func stringField(node map[string]any, key, path string) (string, error) {
	v, ok := node[key]
	if !ok {
		return "", &SchemaError{Path: path, Reason: "missing required field " + key}
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Field: path + "." + key, Want: "string", Value: v}
	}
	return s, nil
}

// colorField extracts an optional hex color field. Absence yields nil,
// which is distinct from any parsed color (including black).
func colorField(node map[string]any, key, path string) (*color.RGBA, error) {
	v, ok := node[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, &TypeError{Field: path + "." + key, Want: "string", Value: v}
	}
	c, err := colorutil.ParseHex(s)
	if err != nil {
		return nil, &ParseError{Field: path + "." + key, Value: s, Err: err}
	}
	return &c, nil
}

package kite

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

const (
	lineType          = "Line"
	arcType           = "Arc"
	ellipticalArcType = "EllipticalArc"
)

// SerializedSegment is the flat, JSON-compatible record of a segment. Its
// "type" field names the kind of segment.
type SerializedSegment interface {
	SegmentType() string
}

type SerializedLine struct {
	Type   string  `json:"type"`
	StartX float64 `json:"startX"`
	StartY float64 `json:"startY"`
	EndX   float64 `json:"endX"`
	EndY   float64 `json:"endY"`
}

type SerializedArc struct {
	Type          string  `json:"type"`
	CenterX       float64 `json:"centerX"`
	CenterY       float64 `json:"centerY"`
	Radius        float64 `json:"radius"`
	StartAngle    float64 `json:"startAngle"`
	EndAngle      float64 `json:"endAngle"`
	Anticlockwise bool    `json:"anticlockwise"`
}

type SerializedEllipticalArc struct {
	Type          string  `json:"type"`
	CenterX       float64 `json:"centerX"`
	CenterY       float64 `json:"centerY"`
	RadiusX       float64 `json:"radiusX"`
	RadiusY       float64 `json:"radiusY"`
	Rotation      float64 `json:"rotation"`
	StartAngle    float64 `json:"startAngle"`
	EndAngle      float64 `json:"endAngle"`
	Anticlockwise bool    `json:"anticlockwise"`
}

func (s SerializedLine) SegmentType() string          { return s.Type }
func (s SerializedArc) SegmentType() string           { return s.Type }
func (s SerializedEllipticalArc) SegmentType() string { return s.Type }

func wrongType(want, got string) error {
	return fmt.Errorf("%w: expected %q, got %q", ErrWrongSegmentType, want, got)
}

func (l Line) Serialize() SerializedSegment {
	return SerializedLine{
		Type:   lineType,
		StartX: l.P0.X,
		StartY: l.P0.Y,
		EndX:   l.P1.X,
		EndY:   l.P1.Y,
	}
}

func DeserializeLine(s SerializedLine) (Line, error) {
	if s.Type != lineType {
		return Line{}, wrongType(lineType, s.Type)
	}
	l := Line{Pt(s.StartX, s.StartY), Pt(s.EndX, s.EndY)}
	if !l.P0.IsFinite() || !l.P1.IsFinite() {
		return Line{}, fmt.Errorf("%w: line from %v to %v", ErrNonFinite, l.P0, l.P1)
	}
	return l, nil
}

func (a *Arc) Serialize() SerializedSegment {
	return SerializedArc{
		Type:          arcType,
		CenterX:       a.center.X,
		CenterY:       a.center.Y,
		Radius:        a.radius,
		StartAngle:    a.startAngle,
		EndAngle:      a.endAngle,
		Anticlockwise: a.anticlockwise,
	}
}

func DeserializeArc(s SerializedArc) (*Arc, error) {
	if s.Type != arcType {
		return nil, wrongType(arcType, s.Type)
	}
	return NewArc(Pt(s.CenterX, s.CenterY), s.Radius, s.StartAngle, s.EndAngle, s.Anticlockwise)
}

func (e *EllipticalArc) Serialize() SerializedSegment {
	return SerializedEllipticalArc{
		Type:          ellipticalArcType,
		CenterX:       e.center.X,
		CenterY:       e.center.Y,
		RadiusX:       e.radiusX,
		RadiusY:       e.radiusY,
		Rotation:      e.rotation,
		StartAngle:    e.startAngle,
		EndAngle:      e.endAngle,
		Anticlockwise: e.anticlockwise,
	}
}

func (s SerializedEllipticalArc) params() ellipticalArcParams {
	return ellipticalArcParams{
		center:        Pt(s.CenterX, s.CenterY),
		radiusX:       s.RadiusX,
		radiusY:       s.RadiusY,
		rotation:      s.Rotation,
		startAngle:    s.StartAngle,
		endAngle:      s.EndAngle,
		anticlockwise: s.Anticlockwise,
	}
}

// DeserializeEllipticalArc reconstructs an arc from its serialized form. It
// rejects records of other segment types.
func DeserializeEllipticalArc(s SerializedEllipticalArc) (*EllipticalArc, error) {
	if s.Type != ellipticalArcType {
		return nil, wrongType(ellipticalArcType, s.Type)
	}
	e := &EllipticalArc{}
	if err := e.update(s.params()); err != nil {
		return nil, err
	}
	return e, nil
}

func (l Line) MarshalJSON() ([]byte, error) {
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	return json.Marshal(l.Serialize())
}

func (l *Line) UnmarshalJSON(data []byte) error {
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	var s SerializedLine
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dl, err := DeserializeLine(s)
	if err != nil {
		return err
	}
	*l = dl
	return nil
}

func (a *Arc) MarshalJSON() ([]byte, error) {
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	return json.Marshal(a.Serialize())
}

func (a *Arc) UnmarshalJSON(data []byte) error {
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	var s SerializedArc
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	da, err := DeserializeArc(s)
	if err != nil {
		return err
	}
	*a = *da
	return nil
}

func (e *EllipticalArc) MarshalJSON() ([]byte, error) {
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	return json.Marshal(e.Serialize())
}

// UnmarshalJSON replaces the arc's attributes with the decoded ones. Change
// listeners stay registered and are notified.
func (e *EllipticalArc) UnmarshalJSON(data []byte) error {
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	var s SerializedEllipticalArc
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s.Type != ellipticalArcType {
		return wrongType(ellipticalArcType, s.Type)
	}
	return e.update(s.params())
}

// MarshalSegment encodes the serialized form of seg as JSON.
func MarshalSegment(seg Segment) ([]byte, error) {
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	return json.Marshal(seg.Serialize())
}

// UnmarshalSegment decodes a JSON segment record of any supported type.
func UnmarshalSegment(data []byte) (Segment, error) {
	typ := jsoniter.Get(data, "type")
	if err := typ.LastError(); err != nil {
		return nil, fmt.Errorf("reading segment type: %w", err)
	}
	switch typ.ToString() {
	case lineType:
		var l Line
		if err := l.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return l, nil
	case arcType:
		a := &Arc{}
		if err := a.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return a, nil
	case ellipticalArcType:
		e := &EllipticalArc{}
		if err := e.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrWrongSegmentType, typ.ToString())
	}
}

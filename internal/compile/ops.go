package compile

import (
	"github.com/avelinec/deckwright/internal/deck"
	"github.com/avelinec/deckwright/internal/theme"
)

// Kind tags a render operation.
type Kind string

const (
	OpCreateContainer       Kind = "createContainer"
	OpSetBackground         Kind = "setBackground"
	OpCreateTextBox         Kind = "createTextBox"
	OpInsertText            Kind = "insertText"
	OpSetTextColor          Kind = "setTextColor"
	OpSetTextAlign          Kind = "setTextAlign"
	OpSetFontSize           Kind = "setFontSize"
	OpSetBold               Kind = "setBold"
	OpSetItalic             Kind = "setItalic"
	OpApplyBulletFormatting Kind = "applyBulletFormatting"
)

// Op is one instruction in the render stream handed to the presentation
// engine. Positions and sizes are points relative to the page origin; colors
// are per-channel values in [0,1].
type Op struct {
	Kind     Kind           `json:"op"`
	ObjectID string         `json:"objectId"`
	PageID   string         `json:"pageId,omitempty"`
	X        float64        `json:"x,omitempty"`
	Y        float64        `json:"y,omitempty"`
	Width    float64        `json:"w,omitempty"`
	Height   float64        `json:"h,omitempty"`
	Text     string         `json:"text,omitempty"`
	Color    *theme.RGB     `json:"color,omitempty"`
	Align    deck.Alignment `json:"align,omitempty"`
	FontSize int            `json:"fontSize,omitempty"`
	Notes    string         `json:"notes,omitempty"`
}

// Geometry fixes the page dimensions the compiler lays out against.
type Geometry struct {
	Width  float64
	Height float64
	Margin float64
}

// DefaultGeometry is the presentation engine's standard 10in x 7.5in page.
var DefaultGeometry = Geometry{Width: 720, Height: 540, Margin: 40}

type box struct {
	x, y, w, h float64
}

// stream accumulates ops in emission order.
type stream struct {
	ops []Op
}

func (s *stream) container(pageID, notes string) {
	s.ops = append(s.ops, Op{Kind: OpCreateContainer, ObjectID: pageID, Notes: notes})
}

func (s *stream) background(pageID, hex string) {
	if hex == "" {
		return
	}
	c := theme.ParseHex(hex)
	s.ops = append(s.ops, Op{Kind: OpSetBackground, ObjectID: pageID, Color: &c})
}

func (s *stream) textBox(id, pageID string, b box) {
	s.ops = append(s.ops, Op{Kind: OpCreateTextBox, ObjectID: id, PageID: pageID, X: b.x, Y: b.y, Width: b.w, Height: b.h})
}

func (s *stream) insertText(id, text string) {
	s.ops = append(s.ops, Op{Kind: OpInsertText, ObjectID: id, Text: text})
}

func (s *stream) textColor(id, hex string) {
	if hex == "" {
		return
	}
	c := theme.ParseHex(hex)
	s.ops = append(s.ops, Op{Kind: OpSetTextColor, ObjectID: id, Color: &c})
}

func (s *stream) textAlign(id string, align deck.Alignment) {
	s.ops = append(s.ops, Op{Kind: OpSetTextAlign, ObjectID: id, Align: align})
}

func (s *stream) fontSize(id string, points int) {
	s.ops = append(s.ops, Op{Kind: OpSetFontSize, ObjectID: id, FontSize: points})
}

func (s *stream) bold(id string) {
	s.ops = append(s.ops, Op{Kind: OpSetBold, ObjectID: id})
}

func (s *stream) italic(id string) {
	s.ops = append(s.ops, Op{Kind: OpSetItalic, ObjectID: id})
}

func (s *stream) bullets(id string) {
	s.ops = append(s.ops, Op{Kind: OpApplyBulletFormatting, ObjectID: id})
}

package inspector

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/neurosoup/components"
	"github.com/pthm-cable/neurosoup/neural"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag     string
		widget  Widget
		options map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar", WidgetBar, map[string]string{}},
		{"bar,max:200", WidgetBar, map[string]string{"max": "200"}},
		{"bar,centered", WidgetBar, map[string]string{"centered": "true"}},
		{"label,fmt:%.1f", WidgetLabel, map[string]string{"fmt": "%.1f"}},
		{"skip", WidgetSkip, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			w, opts := ParseTag(tt.tag)
			if w != tt.widget {
				t.Errorf("widget = %v, want %v", w, tt.widget)
			}
			if len(opts) != len(tt.options) {
				t.Fatalf("options = %v, want %v", opts, tt.options)
			}
			for k, v := range tt.options {
				if opts[k] != v {
					t.Errorf("option %q = %q, want %q", k, opts[k], v)
				}
			}
		})
	}
}

func TestExtractFieldsBody(t *testing.T) {
	fields := ExtractFields(components.Body{Size: 50, Heading: 1, Mov: -0.5})

	want := map[string]Widget{
		"Size":    WidgetBar,
		"Heading": WidgetAngle,
		"Mov":     WidgetBar,
		"Rot":     WidgetBar,
	}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for _, f := range fields {
		w, ok := want[f.Name]
		if !ok {
			t.Errorf("unexpected field %s", f.Name)
			continue
		}
		if f.Widget != w {
			t.Errorf("%s widget = %v, want %v", f.Name, f.Widget, w)
		}
		if f.Name == "Mov" && !f.Flag("centered") {
			t.Error("Mov should be a centered bar")
		}
	}
}

func TestExtractFieldsAutoBool(t *testing.T) {
	for _, f := range ExtractFields(&components.Organism{Alive: true}) {
		if f.Name == "Alive" && f.Widget != WidgetBool {
			t.Errorf("Alive widget = %v, want bool", f.Widget)
		}
	}
}

func TestBarSpan(t *testing.T) {
	tests := []struct {
		name       string
		value      float32
		lo, hi     float32
		start, end float32
	}{
		{"plain half", 50, 0, 100, 0, 0.5},
		{"plain over", 300, 0, 200, 0, 1},
		{"plain under", -5, 0, 1, 0, 0},
		{"centered positive", 0.5, -1, 1, 0.5, 0.75},
		{"centered negative", -1, -1, 1, 0, 0.5},
		{"centered zero", 0, -1, 1, 0.5, 0.5},
		{"empty range", 1, 1, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e := BarSpan(tt.value, tt.lo, tt.hi)
			if math.Abs(float64(s-tt.start)) > 1e-6 || math.Abs(float64(e-tt.end)) > 1e-6 {
				t.Errorf("BarSpan = (%v, %v), want (%v, %v)", s, e, tt.start, tt.end)
			}
		})
	}
}

func TestTagOptionsRange(t *testing.T) {
	tests := []struct {
		tag    string
		lo, hi float32
	}{
		{"bar,centered", -1, 1},
		{"bar,max:200", 0, 200},
		{"bar,centered,max:5", -5, 5},
		{"bar,max:-3", 0, 1},
		{"bar,max:abc", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			_, opts := ParseTag(tt.tag)
			if lo, hi := opts.Range(); lo != tt.lo || hi != tt.hi {
				t.Errorf("Range() = (%v, %v), want (%v, %v)", lo, hi, tt.lo, tt.hi)
			}
		})
	}
}

func TestExtractFieldsDisplayNames(t *testing.T) {
	names := map[string]bool{}
	for _, f := range ExtractFields(&components.Organism{SplitGene: 3, LineageID: 9}) {
		names[f.Name] = true
		if f.Name == "Split gene" {
			if got, ok := f.Value.(int); !ok || got != 3 {
				t.Errorf("Split gene value = %v, want 3", f.Value)
			}
		}
	}
	for _, want := range []string{"ID", "Alive", "Split gene", "Lineage", "Born"} {
		if !names[want] {
			t.Errorf("missing field %q in %v", want, names)
		}
	}
}

func TestExtractFieldsNonStruct(t *testing.T) {
	var nilBody *components.Body
	if got := ExtractFields(nilBody); got != nil {
		t.Errorf("nil pointer gave %v", got)
	}
	if got := ExtractFields(42); got != nil {
		t.Errorf("int gave %v", got)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value  any
		format string
		want   string
	}{
		{float32(1.234), "", "1.23"},
		{2.5, "", "2.50"},
		{uint32(7), "", "7"},
		{3, "%03d", "003"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.value, tt.format); got != tt.want {
			t.Errorf("FormatValue(%v, %q) = %q, want %q", tt.value, tt.format, got, tt.want)
		}
	}
}

func TestSelectDeselect(t *testing.T) {
	ins := NewInspector(0, 0, 300, 400)
	if _, ok := ins.Selected(); ok {
		t.Fatal("new inspector should have no selection")
	}
	ins.Select(7)
	if id, ok := ins.Selected(); !ok || id != 7 {
		t.Errorf("Selected = (%d, %v), want (7, true)", id, ok)
	}
	ins.Deselect()
	if _, ok := ins.Selected(); ok {
		t.Error("selection should be cleared")
	}
}

func TestLayoutNetwork(t *testing.T) {
	const x, y, w, h = 100, 50, 200, 200

	tests := []struct {
		name   string
		hidden int
	}{
		{"no hidden", 0},
		{"single hidden", 1},
		{"one column", 5},
		{"several columns", 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &neural.Brain{Hidden: make([]neural.Neuron, tt.hidden)}
			l := LayoutNetwork(b, x, y, w, h)

			if len(l.Inputs) != neural.NumInputs || len(l.Outputs) != neural.NumOutputs {
				t.Fatalf("got %d inputs %d outputs", len(l.Inputs), len(l.Outputs))
			}
			if len(l.Hidden) != tt.hidden {
				t.Fatalf("got %d hidden positions, want %d", len(l.Hidden), tt.hidden)
			}

			var all []rl.Vector2
			all = append(all, l.Inputs...)
			all = append(all, l.Hidden...)
			all = append(all, l.Outputs...)
			for _, p := range all {
				if p.X < x || p.X > x+w || p.Y < y || p.Y > y+h {
					t.Errorf("node (%v, %v) outside layout rect", p.X, p.Y)
				}
			}

			inX, outX := l.Inputs[0].X, l.Outputs[0].X
			for _, p := range l.Hidden {
				if p.X <= inX || p.X >= outX {
					t.Errorf("hidden node x=%v not between inputs %v and outputs %v", p.X, inX, outX)
				}
			}
			if tt.hidden == 1 && math.Abs(float64(l.Hidden[0].Y-(y+h/2))) > 1e-3 {
				t.Errorf("single hidden node y = %v, want centred", l.Hidden[0].Y)
			}
		})
	}
}

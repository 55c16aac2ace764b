package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetAngle
	WidgetBool
	WidgetSkip
)

var widgetNames = map[string]Widget{
	"label": WidgetLabel,
	"bar":   WidgetBar,
	"angle": WidgetAngle,
	"bool":  WidgetBool,
	"skip":  WidgetSkip,
}

// TagOptions are the key:value pairs after the widget in an inspect tag.
// Bare words are stored as "true".
type TagOptions map[string]string

// Flag reports whether a bare option such as "centered" was set.
func (o TagOptions) Flag(name string) bool {
	return o[name] == "true"
}

// Max is the bar limit from "max:", 1 when absent or not positive.
func (o TagOptions) Max() float32 {
	if v, err := strconv.ParseFloat(o["max"], 32); err == nil && v > 0 {
		return float32(v)
	}
	return 1
}

// Range is the span a bar covers. Centered bars run from -Max to Max.
func (o TagOptions) Range() (lo, hi float32) {
	hi = o.Max()
	if o.Flag("centered") {
		return -hi, hi
	}
	return 0, hi
}

// Field is one inspectable component field.
type Field struct {
	Name    string
	Value   any
	Widget  Widget
	Options TagOptions
}

// Flag reports whether the field's tag set a bare option.
func (f Field) Flag(name string) bool {
	return f.Options.Flag(name)
}

// ParseTag parses an inspect struct tag of the form
// `inspect:"widget[,key:value|flag...]"`, for example
//
//	`inspect:"bar,max:200"`
//	`inspect:"bar,centered"`
//	`inspect:"label,name:Split gene,fmt:%d"`
func ParseTag(tag string) (Widget, TagOptions) {
	options := make(TagOptions)
	if tag == "" {
		return WidgetAuto, options
	}

	head, rest, _ := strings.Cut(tag, ",")
	widget := widgetNames[strings.TrimSpace(head)]

	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if k, v, ok := strings.Cut(part, ":"); ok {
			options[k] = v
		} else {
			options[part] = "true"
		}
	}
	return widget, options
}

// fieldSpec is the parsed tag of one exported struct field.
type fieldSpec struct {
	index   int
	name    string
	widget  Widget
	options TagOptions
}

// specCache maps reflect.Type to []fieldSpec; tags are parsed once per type.
var specCache sync.Map

func specsFor(t reflect.Type) []fieldSpec {
	if cached, ok := specCache.Load(t); ok {
		return cached.([]fieldSpec)
	}

	var specs []fieldSpec
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}
		if widget == WidgetAuto {
			widget = autoDetectWidget(sf.Type)
		}
		name := sf.Name
		if n := options["name"]; n != "" {
			name = n
		}
		specs = append(specs, fieldSpec{index: i, name: name, widget: widget, options: options})
	}

	specCache.Store(t, specs)
	return specs
}

// ExtractFields lists the inspectable fields of a struct or struct pointer.
func ExtractFields(component any) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	specs := specsFor(v.Type())
	fields := make([]Field, 0, len(specs))
	for _, s := range specs {
		fields = append(fields, Field{
			Name:    s.name,
			Value:   v.Field(s.index).Interface(),
			Widget:  s.widget,
			Options: s.options,
		})
	}
	return fields
}

func autoDetectWidget(t reflect.Type) Widget {
	if t.Kind() == reflect.Bool {
		return WidgetBool
	}
	return WidgetLabel
}

// FormatValue formats value with fmtStr, or with two decimals for floats
// when fmtStr is empty.
func FormatValue(value any, fmtStr string) string {
	if fmtStr != "" {
		return fmt.Sprintf(fmtStr, value)
	}
	switch v := value.(type) {
	case float32, float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprint(value)
	}
}

// floatValue converts the numeric kinds components use to float32.
func floatValue(value any) (float32, bool) {
	switch v := value.(type) {
	case float32:
		return v, true
	case float64:
		return float32(v), true
	case int:
		return float32(v), true
	case int32:
		return float32(v), true
	case uint32:
		return float32(v), true
	default:
		return 0, false
	}
}

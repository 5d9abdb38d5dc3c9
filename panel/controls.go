// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aclements/ways/colorscale"
)

// Change describes a change to a control's value.
type Change struct {
	Control  string
	Old, New interface{}
}

// Control is an editable panel control.
type Control interface {
	// Name identifies the control in Apply.
	Name() string
	// Description is the control's label.
	Description() string
	Disabled() bool
	SetDisabled(bool)
	// Observe registers fn to be called after every change to the
	// control's value. Observers are called synchronously, in the
	// order they were registered.
	Observe(fn func(Change))
	// String returns the control's value as text.
	String() string
	// Parse sets the control's value from text.
	Parse(text string) error
}

type control struct {
	name, desc string
	disabled   bool
	observers  []func(Change)
}

func (c *control) Name() string            { return c.name }
func (c *control) Description() string     { return c.desc }
func (c *control) Disabled() bool          { return c.disabled }
func (c *control) SetDisabled(d bool)      { c.disabled = d }
func (c *control) Observe(fn func(Change)) { c.observers = append(c.observers, fn) }

func (c *control) notify(old, new interface{}) {
	ch := Change{c.name, old, new}
	for _, fn := range c.observers {
		fn(ch)
	}
}

// Radio selects one of a fixed set of options.
type Radio struct {
	control
	options []string
	value   string
}

// NewRadio returns a Radio over options, initially set to value.
func NewRadio(name, desc string, options []string, value string) *Radio {
	return &Radio{control{name: name, desc: desc}, options, value}
}

func (r *Radio) Value() string        { return r.value }
func (r *Radio) Options() []string    { return r.options }
func (r *Radio) String() string       { return r.value }
func (r *Radio) Parse(s string) error { return r.Set(s) }

// Set selects v, which must be one of r's options.
func (r *Radio) Set(v string) error {
	if !member(r.options, v) {
		return fmt.Errorf("%s: %q is not one of %s", r.name, v, strings.Join(r.options, ", "))
	}
	if v == r.value {
		return nil
	}
	old := r.value
	r.value = v
	r.notify(old, v)
	return nil
}

// Dropdown is a Radio displayed as a menu.
type Dropdown struct {
	Radio
}

// NewDropdown returns a Dropdown over options, initially set to value.
func NewDropdown(name, desc string, options []string, value string) *Dropdown {
	return &Dropdown{*NewRadio(name, desc, options, value)}
}

// Checkbox is a boolean control.
type Checkbox struct {
	control
	value bool
}

func NewCheckbox(name, desc string, value bool) *Checkbox {
	return &Checkbox{control{name: name, desc: desc}, value}
}

func (c *Checkbox) Value() bool    { return c.value }
func (c *Checkbox) String() string { return strconv.FormatBool(c.value) }

func (c *Checkbox) Set(v bool) {
	if v == c.value {
		return
	}
	c.value = v
	c.notify(!v, v)
}

func (c *Checkbox) Parse(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("%s: %q is not a boolean", c.name, s)
	}
	c.Set(v)
	return nil
}

// IntSlider is an integer control bounded to [Min, Max]. Values
// outside the bounds are clamped.
type IntSlider struct {
	control
	min, max, value int
}

func NewIntSlider(name, desc string, min, max, value int) *IntSlider {
	s := &IntSlider{control: control{name: name, desc: desc}, min: min, max: max}
	s.value = s.clamp(value)
	return s
}

func (s *IntSlider) Value() int             { return s.value }
func (s *IntSlider) Bounds() (min, max int) { return s.min, s.max }
func (s *IntSlider) String() string         { return strconv.Itoa(s.value) }

func (s *IntSlider) clamp(v int) int {
	if v < s.min {
		return s.min
	}
	if v > s.max {
		return s.max
	}
	return v
}

// Set sets the slider to v, clamped to its bounds.
func (s *IntSlider) Set(v int) {
	v = s.clamp(v)
	if v == s.value {
		return
	}
	old := s.value
	s.value = v
	s.notify(old, v)
}

func (s *IntSlider) Parse(text string) error {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return fmt.Errorf("%s: %q is not an integer", s.name, text)
	}
	s.Set(v)
	return nil
}

// IntRangeSlider selects an ordered pair of integers within [Min, Max].
type IntRangeSlider struct {
	control
	min, max int
	value    [2]int
}

func NewIntRangeSlider(name, desc string, min, max int, value [2]int) *IntRangeSlider {
	s := &IntRangeSlider{control: control{name: name, desc: desc}, min: min, max: max}
	s.value = s.normalize(value)
	return s
}

func (s *IntRangeSlider) Value() [2]int          { return s.value }
func (s *IntRangeSlider) Bounds() (min, max int) { return s.min, s.max }

func (s *IntRangeSlider) String() string {
	return fmt.Sprintf("%d,%d", s.value[0], s.value[1])
}

func (s *IntRangeSlider) normalize(v [2]int) [2]int {
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
	for i := range v {
		if v[i] < s.min {
			v[i] = s.min
		}
		if v[i] > s.max {
			v[i] = s.max
		}
	}
	return v
}

// Set sets the range to [lo, hi], swapping them if out of order and
// clamping both to the slider's bounds.
func (s *IntRangeSlider) Set(lo, hi int) {
	v := s.normalize([2]int{lo, hi})
	if v == s.value {
		return
	}
	old := s.value
	s.value = v
	s.notify(old, v)
}

// SetBounds changes the slider's bounds, clamping its value to them.
func (s *IntRangeSlider) SetBounds(min, max int) {
	if min > max {
		min, max = max, min
	}
	s.min, s.max = min, max
	s.Set(s.value[0], s.value[1])
}

// Include widens the slider's bounds, if necessary, to contain lo
// and hi.
func (s *IntRangeSlider) Include(lo, hi int) {
	s.min = min(s.min, lo, hi)
	s.max = max(s.max, lo, hi)
}

// Parse accepts "lo,hi", "lo hi" or "lo..hi". Both ends must be
// within the slider's bounds.
func (s *IntRangeSlider) Parse(text string) error {
	fields := strings.FieldsFunc(strings.Replace(text, "..", ",", 1), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return fmt.Errorf("%s: %q is not a range lo,hi", s.name, text)
	}
	lo, err1 := strconv.Atoi(fields[0])
	hi, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return fmt.Errorf("%s: %q is not a range of integers", s.name, text)
	}
	for _, v := range []int{lo, hi} {
		if v < s.min || v > s.max {
			return fmt.Errorf("%s: %d is outside [%d, %d]", s.name, v, s.min, s.max)
		}
	}
	s.Set(lo, hi)
	return nil
}

// ColorPicker holds a CSS color name or hex triplet.
type ColorPicker struct {
	control
	value string
}

func NewColorPicker(name, desc, value string) *ColorPicker {
	return &ColorPicker{control{name: name, desc: desc}, value}
}

func (c *ColorPicker) Value() string        { return c.value }
func (c *ColorPicker) String() string       { return c.value }
func (c *ColorPicker) Parse(s string) error { return c.Set(s) }

// Set sets the color to v, which must be a CSS color name or a hex
// triplet.
func (c *ColorPicker) Set(v string) error {
	if _, err := colorscale.ParseColor(v); err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	if v == c.value {
		return nil
	}
	old := c.value
	c.value = v
	c.notify(old, v)
	return nil
}

func member(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

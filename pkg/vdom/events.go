package vdom

import (
	"errors"
	"fmt"

	"github.com/vango-dev/vtree/pkg/dom"
)

// ErrDecode is returned (wrapped) by the built-in decoders when an event
// payload does not have the expected shape.
var ErrDecode = errors.New("vdom: event payload mismatch")

// Succeed returns a decoder that always produces msg. Two Succeed
// decoders are equal when their messages are, so re-rendering
// OnClick(Increment) does not produce a facts patch.
func Succeed(msg Msg) *Decoder {
	return &Decoder{
		decode:   func(dom.Event) (Decoded, error) { return Decoded{Msg: msg}, nil },
		constant: true,
		msg:      msg,
	}
}

// Field returns a decoder reading a string payload field and mapping it
// through fn.
func Field(name string, fn func(string) Msg) *Decoder {
	return NewDecoder(func(ev dom.Event) (Decoded, error) {
		raw, ok := ev.Get(name)
		if !ok {
			return Decoded{}, fmt.Errorf("%w: missing field %q", ErrDecode, name)
		}
		s, ok := raw.(string)
		if !ok {
			return Decoded{}, fmt.Errorf("%w: field %q is %T, not string", ErrDecode, name, raw)
		}
		return Decoded{Msg: fn(s)}, nil
	})
}

// BoolField returns a decoder reading a boolean payload field.
func BoolField(name string, fn func(bool) Msg) *Decoder {
	return NewDecoder(func(ev dom.Event) (Decoded, error) {
		raw, ok := ev.Get(name)
		if !ok {
			return Decoded{}, fmt.Errorf("%w: missing field %q", ErrDecode, name)
		}
		b, ok := raw.(bool)
		if !ok {
			return Decoded{}, fmt.Errorf("%w: field %q is %T, not bool", ErrDecode, name, raw)
		}
		return Decoded{Msg: fn(b)}, nil
	})
}

// On attaches a normal handler for eventType.
func On(eventType string, d *Decoder) Fact {
	return handlerFact(eventType, HandlerNormal, d)
}

// MayStopPropagationOn attaches a handler whose decoder may stop
// propagation.
func MayStopPropagationOn(eventType string, d *Decoder) Fact {
	return handlerFact(eventType, HandlerMayStopPropagation, d)
}

// MayPreventDefaultOn attaches a handler whose decoder may prevent the
// default action.
func MayPreventDefaultOn(eventType string, d *Decoder) Fact {
	return handlerFact(eventType, HandlerMayPreventDefault, d)
}

// CustomOn attaches a handler whose decoder controls both flags.
func CustomOn(eventType string, d *Decoder) Fact {
	return handlerFact(eventType, HandlerCustom, d)
}

func handlerFact(eventType string, kind HandlerKind, d *Decoder) Fact {
	return Fact{
		Category: CategoryEvent,
		Key:      eventType,
		Handler:  Handler{Kind: kind, Decoder: d},
	}
}

// Mouse events

// OnClick sends msg on click.
func OnClick(msg Msg) Fact { return On("click", Succeed(msg)) }

// OnDblClick sends msg on double-click.
func OnDblClick(msg Msg) Fact { return On("dblclick", Succeed(msg)) }

// OnMouseDown sends msg on mousedown.
func OnMouseDown(msg Msg) Fact { return On("mousedown", Succeed(msg)) }

// OnMouseUp sends msg on mouseup.
func OnMouseUp(msg Msg) Fact { return On("mouseup", Succeed(msg)) }

// OnMouseEnter sends msg on mouseenter.
func OnMouseEnter(msg Msg) Fact { return On("mouseenter", Succeed(msg)) }

// OnMouseLeave sends msg on mouseleave.
func OnMouseLeave(msg Msg) Fact { return On("mouseleave", Succeed(msg)) }

// Focus events

// OnFocus sends msg on focus.
func OnFocus(msg Msg) Fact { return On("focus", Succeed(msg)) }

// OnBlur sends msg on blur.
func OnBlur(msg Msg) Fact { return On("blur", Succeed(msg)) }

// Form events

// OnInput maps the target's value through fn on every input event and
// stops propagation, so enclosing inputs do not see it twice.
func OnInput(fn func(string) Msg) Fact {
	return MayStopPropagationOn("input", stopAlways(Field("value", fn)))
}

// OnCheck maps the target's checked state through fn on change.
func OnCheck(fn func(bool) Msg) Fact {
	return On("change", BoolField("checked", fn))
}

// OnSubmit sends msg on submit and prevents the browser's default form
// submission.
func OnSubmit(msg Msg) Fact {
	return MayPreventDefaultOn("submit", NewDecoder(func(dom.Event) (Decoded, error) {
		return Decoded{Msg: msg, PreventDefault: true}, nil
	}))
}

// Keyboard events

// OnKeyDown maps the pressed key through fn.
func OnKeyDown(fn func(key string) Msg) Fact { return On("keydown", Field("key", fn)) }

func stopAlways(d *Decoder) *Decoder {
	return NewDecoder(func(ev dom.Event) (Decoded, error) {
		out, err := d.Decode(ev)
		out.StopPropagation = true
		return out, err
	})
}

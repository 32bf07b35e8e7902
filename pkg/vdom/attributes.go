package vdom

import (
	"sort"
	"strconv"
	"strings"
)

// Namespaces used by ElNS and AttrNS.
const (
	NamespaceSVG   = "http://www.w3.org/2000/svg"
	NamespaceXLink = "http://www.w3.org/1999/xlink"
	NamespaceMath  = "http://www.w3.org/1998/Math/MathML"
)

// Identity attributes

// ID sets the id attribute.
func ID(id string) Fact { return Attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Fact { return Attr("class", strings.Join(classes, " ")) }

// ClassList sets the class attribute to the names whose flag is true,
// sorted for a stable value.
func ClassList(classes map[string]bool) Fact {
	var names []string
	for name, on := range classes {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return Class(names...)
}

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Fact { return Attr("data-"+key, value) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Fact { return Attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Fact { return Attr("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Fact { return Attr("aria-hidden", strconv.FormatBool(hidden)) }

// AriaExpanded sets the aria-expanded attribute.
func AriaExpanded(expanded bool) Fact { return Attr("aria-expanded", strconv.FormatBool(expanded)) }

// TabIndex sets the tabindex attribute.
func TabIndex(index int) Fact { return Attr("tabindex", strconv.Itoa(index)) }

// Visibility attributes

// Hidden sets the hidden attribute.
func Hidden() Fact { return Attr("hidden", "") }

// TitleAttr sets the title attribute (named to avoid conflict with Title element).
func TitleAttr(title string) Fact { return Attr("title", title) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Fact { return Attr("href", url) }

// Target sets the target attribute.
func Target(target string) Fact { return Attr("target", target) }

// Src sets the src attribute.
func Src(url string) Fact { return Attr("src", url) }

// XLinkHref sets the namespaced xlink:href attribute used by SVG <use>.
func XLinkHref(url string) Fact { return AttrNS(NamespaceXLink, "xlink:href", url) }

// Form attributes

// Name sets the name attribute.
func Name(name string) Fact { return Attr("name", name) }

// Type sets the type attribute.
func Type(typ string) Fact { return Attr("type", typ) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Fact { return Attr("placeholder", text) }

// For sets the for attribute on labels.
func For(id string) Fact { return Attr("for", id) }

// Disabled sets the disabled property.
func Disabled(disabled bool) Fact { return Prop("disabled", disabled) }

// Selected sets the selected property.
func Selected(selected bool) Fact { return Prop("selected", selected) }

// Value sets the value property. It is re-applied on every diff because
// the user may have edited the live value.
func Value(value string) Fact { return Prop("value", value) }

// Checked sets the checked property. Like Value, it is always re-applied.
func Checked(checked bool) Fact { return Prop("checked", checked) }

package browser

import (
	"fmt"
	"strconv"
)

// Kind identifies how a Locator addresses an element
type Kind int

// Locator kinds
const (
	KindID Kind = iota
	KindClass
	KindCSS
	KindTextContains
	KindStructuralSibling
)

func (k Kind) String() string {
	switch k {
	case KindID:
		return "id"
	case KindClass:
		return "class"
	case KindCSS:
		return "css"
	case KindTextContains:
		return "text"
	case KindStructuralSibling:
		return "sibling"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Locator is a query describing how to find a UI element
type Locator struct {
	Kind  Kind
	Value string

	// Text narrows a match to elements whose text contains it
	Text string

	// Structural parts, set only for KindStructuralSibling
	Anchor *Locator
	Row    *Locator
	Target *Locator
}

// ByID locates an element by its id attribute
func ByID(id string) Locator {
	return Locator{Kind: KindID, Value: id}
}

// ByClass locates elements carrying a class name
func ByClass(class string) Locator {
	return Locator{Kind: KindClass, Value: class}
}

// ByCSS locates elements with a CSS selector
func ByCSS(selector string) Locator {
	return Locator{Kind: KindCSS, Value: selector}
}

// ByTextContains locates the innermost elements whose text contains text
func ByTextContains(text string) Locator {
	return Locator{Kind: KindTextContains, Value: text}
}

// ByStructuralSibling locates target inside the row that holds anchor,
// e.g. the remove button on the same cart line as a product name
func ByStructuralSibling(anchor, row, target Locator) Locator {
	return Locator{
		Kind:   KindStructuralSibling,
		Anchor: &anchor,
		Row:    &row,
		Target: &target,
	}
}

// WithText returns a copy of the locator that also requires text containment
func (l Locator) WithText(text string) Locator {
	l.Text = text
	return l
}

// String returns a canonical description of the locator
func (l Locator) String() string {
	var s string
	if l.Kind == KindStructuralSibling {
		s = fmt.Sprintf("sibling(%s in %s of %s)", l.Target, l.Row, l.Anchor)
	} else {
		s = fmt.Sprintf("%s=%s", l.Kind, l.Value)
	}
	if l.Text != "" {
		s += " text~" + strconv.Quote(l.Text)
	}
	return s
}

// Selector translates the locator into a Playwright selector
func (l Locator) Selector() string {
	var sel string
	switch l.Kind {
	case KindID:
		sel = fmt.Sprintf("[id=%s]", strconv.Quote(l.Value))
	case KindClass:
		sel = "." + l.Value
	case KindCSS:
		sel = l.Value
	case KindTextContains:
		sel = fmt.Sprintf(":text(%s)", strconv.Quote(l.Value))
	case KindStructuralSibling:
		return fmt.Sprintf("%s:has(%s) >> %s", l.Row.Selector(), l.Anchor.Selector(), l.Target.Selector())
	}
	if l.Text != "" {
		sel += fmt.Sprintf(":has-text(%s)", strconv.Quote(l.Text))
	}
	return sel
}

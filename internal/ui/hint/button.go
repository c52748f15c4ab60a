// Package hint provides buttons that describe themselves on hover.
package hint

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Bar displays the hover text of the buttons bound to it.
type Bar struct {
	widget.Label
}

// NewBar creates an empty hint bar.
func NewBar() *Bar {
	bar := &Bar{}
	bar.Alignment = fyne.TextAlignCenter
	bar.Importance = widget.LowImportance
	bar.ExtendBaseWidget(bar)
	return bar
}

// Show replaces the displayed hint. An empty string clears it.
func (bar *Bar) Show(text string) {
	bar.SetText(text)
}

// Button is a widget.Button that publishes a hint while the pointer is over it.
type Button struct {
	widget.Button
	bar  *Bar
	text func() string
}

var _ desktop.Hoverable = (*Button)(nil)

// NewButton creates a hinted button. text is evaluated on every hover so it can follow state.
func NewButton(label string, bar *Bar, text func() string, tapped func()) *Button {
	button := &Button{bar: bar, text: text}
	button.Text = label
	button.OnTapped = tapped
	button.ExtendBaseWidget(button)
	return button
}

// NewIconButton creates a hinted button showing only an icon.
func NewIconButton(icon fyne.Resource, bar *Bar, text func() string, tapped func()) *Button {
	button := NewButton("", bar, text, tapped)
	button.Icon = icon
	return button
}

// Hint returns the current hover text.
func (button *Button) Hint() string {
	if button.text == nil {
		return ""
	}
	return button.text()
}

// MouseIn shows the hint.
func (button *Button) MouseIn(event *desktop.MouseEvent) {
	button.Button.MouseIn(event)
	if button.bar != nil {
		button.bar.Show(button.Hint())
	}
}

// MouseOut clears the hint.
func (button *Button) MouseOut() {
	button.Button.MouseOut()
	if button.bar != nil {
		button.bar.Show("")
	}
}

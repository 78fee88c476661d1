package shape

// Kind identifies which wrapper a shape element was classified as.
type Kind int

const (
	// KindAutoShape is a shape with a preset geometry.
	KindAutoShape Kind = iota
	// KindFreeform is a shape with a custom geometry.
	KindFreeform
	// KindTextBox is a preset-geometry shape flagged as a text box.
	KindTextBox
)

func (k Kind) String() string {
	switch k {
	case KindAutoShape:
		return "AutoShape"
	case KindFreeform:
		return "FreeformShape"
	case KindTextBox:
		return "TextBox"
	default:
		return "Unknown"
	}
}

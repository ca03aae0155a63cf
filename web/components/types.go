package components

// StyleFields pre-fills the style panel shared by every generator form.
type StyleFields struct {
	Size            int
	MinSize         int
	MaxSize         int
	ErrorCorrection string
	Foreground      string
	Background      string
	Style           string
	Styles          []string
	ECLevels        []string
	Speed           int
	Transparent     bool
}

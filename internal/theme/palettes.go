package theme

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// palette is the raw colour table behind a Theme, in the order
// background, accent, accent fg, accent dim, border, border dim, muted,
// text, success, warn, error, cyan, pink, yellow.
type palette struct {
	colors [14]string
	syntax string
	font   string
	light  bool
}

func (p palette) theme(name string) *Theme {
	c := func(i int) lipgloss.Color { return lipgloss.Color(p.colors[i]) }
	return &Theme{
		Name:       name,
		Background: c(0),
		Accent:     c(1),
		AccentFg:   c(2),
		AccentDim:  c(3),
		Border:     c(4),
		BorderDim:  c(5),
		MutedFg:    c(6),
		TextFg:     c(7),
		SuccessFg:  c(8),
		WarnFg:     c(9),
		ErrorFg:    c(10),
		Cyan:       c(11),
		Pink:       c(12),
		Yellow:     c(13),
		FontFamily: p.font,
		Syntax:     p.syntax,
		light:      p.light,
	}
}

var palettes = map[string]palette{
	DraculaName: {
		colors: [14]string{"#282A36", "#BD93F9", "#282A36", "#44475A", "#6272A4", "#44475A", "#6272A4", "#F8F8F2", "#50FA7B", "#FFB86C", "#FF5555", "#8BE9FD", "#FF79C6", "#F1FA8C"},
		syntax: "dracula",
	},
	DraculaLightName: {
		colors: [14]string{"#FFFFFF", "#C6DBE5", "#24292F", "#F3E8FF", "#D0D7DE", "#E8E8E8", "#6E7781", "#24292F", "#059669", "#D97706", "#DC2626", "#0891B2", "#DB2777", "#CA8A04"},
		syntax: "monokailight",
		light:  true,
	},
	NarnaName: {
		colors: [14]string{"#0D1117", "#41ADFF", "#0D1117", "#1A2230", "#30363D", "#20252D", "#8B949E", "#E6EDF3", "#3FB950", "#E3B341", "#F47067", "#7CE0F3", "#D2A8FF", "#F2CC60"},
		syntax: "github-dark",
	},
	CleanLightName: {
		colors: [14]string{"#FFFFFF", "#C6DBE5", "#24292F", "#DDF4FF", "#D0D7DE", "#E1E4E8", "#6E7781", "#24292F", "#1A7F37", "#9A6700", "#CF222E", "#0598BC", "#BF3989", "#D4A72C"},
		syntax: "github",
		light:  true,
	},
	CatppuccinLatteName: {
		colors: [14]string{"#EFF1F5", "#1E66F5", "#FFFFFF", "#CCD0DA", "#9CA0B0", "#BCC0CC", "#6C6F85", "#4C4F69", "#40A02B", "#DF8E1D", "#D20F39", "#04A5E5", "#EA76CB", "#DF8E1D"},
		syntax: "catppuccin-latte",
		light:  true,
	},
	CatppuccinMochaName: {
		colors: [14]string{"#1E1E2E", "#B4BEFE", "#1E1E2E", "#313244", "#45475A", "#313244", "#6C7086", "#CDD6F4", "#A6E3A1", "#F9E2AF", "#F38BA8", "#89DCEB", "#F5C2E7", "#F9E2AF"},
		syntax: "catppuccin-mocha",
	},
	RosePineDawnName: {
		colors: [14]string{"#FAF4ED", "#286983", "#FFFFFF", "#DFDAD9", "#CECACD", "#F2E9E1", "#9893A5", "#575279", "#56949F", "#EA9D34", "#B4637A", "#907AA9", "#B4637A", "#EA9D34"},
		syntax: "rose-pine-dawn",
		light:  true,
	},
	OneLightName: {
		colors: [14]string{"#FAFAFA", "#528BFF", "#FFFFFF", "#E5E5E6", "#A0A1A7", "#DBDBDC", "#A0A1A7", "#383A42", "#50A14F", "#C18401", "#E45649", "#0184BC", "#A626A4", "#986801"},
		syntax: "github",
		light:  true,
	},
	EverforestLightName: {
		colors: [14]string{"#F3EFDA", "#3A94C5", "#FFFFFF", "#EAE4CA", "#C5C1A5", "#E0DCC7", "#939F91", "#5C6A72", "#8DA101", "#DFA000", "#F85552", "#3A94C5", "#D3869B", "#DFA000"},
		syntax: "gruvbox-light",
		light:  true,
	},
	SolarizedDarkName: {
		colors: [14]string{"#002B36", "#268BD2", "#FDF6E3", "#073642", "#586E75", "#073642", "#586E75", "#EEE8D5", "#859900", "#B58900", "#DC322F", "#2AA198", "#D33682", "#B58900"},
		syntax: "solarized-dark",
	},
	SolarizedLightName: {
		colors: [14]string{"#FDF6E3", "#268BD2", "#FDF6E3", "#EEE8D5", "#93A1A1", "#E4DDC7", "#93A1A1", "#073642", "#859900", "#B58900", "#DC322F", "#2AA198", "#D33682", "#B58900"},
		syntax: "solarized-light",
		light:  true,
	},
	GruvboxDarkName: {
		colors: [14]string{"#282828", "#FABD2F", "#282828", "#3C3836", "#504945", "#3C3836", "#928374", "#EBDBB2", "#B8BB26", "#FABD2F", "#FB4934", "#83A598", "#D3869B", "#FABD2F"},
		syntax: "gruvbox",
	},
	GruvboxLightName: {
		colors: [14]string{"#FBF1C7", "#D79921", "#FBF1C7", "#E0CFA9", "#D5C4A1", "#C0B58A", "#7C6F64", "#3C3836", "#79740E", "#D79921", "#9D0006", "#427B58", "#B16286", "#D79921"},
		syntax: "gruvbox-light",
		light:  true,
	},
	NordName: {
		colors: [14]string{"#2E3440", "#88C0D0", "#2E3440", "#3B4252", "#4C566A", "#434C5E", "#81A1C1", "#E5E9F0", "#A3BE8C", "#EBCB8B", "#BF616A", "#88C0D0", "#B48EAD", "#EBCB8B"},
		syntax: "nord",
	},
	MonokaiName: {
		colors: [14]string{"#272822", "#A6E22E", "#272822", "#3E3D32", "#75715E", "#3E3D32", "#75715E", "#F8F8F2", "#A6E22E", "#FD971F", "#F92672", "#66D9EF", "#F92672", "#E6DB74"},
		syntax: "monokai",
	},
	// Parchment theme for tabletop notes.
	TorillicName: {
		colors: [14]string{"#FCF5E5", "#822000", "#FFFFFF", "#E0E5C1", "#C9AD6A", "#E0E5C1", "#704CD9", "#000000", "#E0E5C1", "#C9AD6A", "#822000", "#704CD9", "#704CD9", "#C9AD6A"},
		syntax: TorillicName,
		font:   "Source Code Pro",
		light:  true,
	},
}

func init() {
	styles.Register(chroma.MustNewStyle(TorillicName, chroma.StyleEntries{
		chroma.Background:        "bg:#fcf5e5",
		chroma.Text:              "#000000",
		chroma.TextWhitespace:    "#c9ad6a",
		chroma.Comment:           "#e0e5c1",
		chroma.Keyword:           "bold #822000",
		chroma.Operator:          "bold #822000",
		chroma.Name:              "#822000",
		chroma.NameDecorator:     "#704cd9",
		chroma.LiteralString:     "#c9ad6a bg:#e0e5c1",
		chroma.GenericHeading:    "bold #822000",
		chroma.GenericSubheading: "bold underline #822000",
		chroma.GenericEmph:       "italic",
		chroma.GenericStrong:     "bold",
		chroma.Error:             "#822000",
	}))
}

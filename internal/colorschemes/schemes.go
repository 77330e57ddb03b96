// Package colorschemes assigns palette colours to chart datasets.
package colorschemes

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	ErrUnknownScheme = errors.New("unknown color scheme")
	ErrEmptyScheme   = errors.New("color scheme has no colors")
)

const (
	CategoryBrewer  = "brewer"
	CategoryTableau = "tableau"
	CategoryOffice  = "office"
	CategoryGoogle  = "googlechart"
	CategoryTol     = "tol"
)

// Scheme is a named list of colours.
type Scheme struct {
	Category string
	Name     string
	Colors   []string
}

// Key is the registry key of the scheme, "category.name".
func (s Scheme) Key() string {
	return strings.ToLower(s.Category + "." + s.Name)
}

// Color returns the colour for index i, cycling through the scheme and
// counting from the end when reverse is set.
func (s Scheme) Color(i int, reverse bool) string {
	n := len(s.Colors)
	if n == 0 {
		return ""
	}
	idx := i % n
	if idx < 0 {
		idx += n
	}
	if reverse {
		idx = n - 1 - idx
	}
	return s.Colors[idx]
}

// TolQualitative is Paul Tol's qualitative palette, designed for colorblind accessibility.
// See: https://personal.sron.nl/~pault/
var TolQualitative = Scheme{
	Category: CategoryTol,
	Name:     "Qualitative10",
	Colors: []string{
		"#4477AA", // Blue
		"#EE6677", // Rose
		"#228833", // Green
		"#CCBB44", // Olive/Yellow
		"#66CCEE", // Cyan
		"#AA3377", // Purple
		"#BBBBBB", // Grey
		"#EE8866", // Orange
		"#44BB99", // Teal
		"#FFAABB", // Pink
	},
}

var BrewerPaired12 = Scheme{
	Category: CategoryBrewer,
	Name:     "Paired12",
	Colors:   []string{"#a6cee3", "#1f78b4", "#b2df8a", "#33a02c", "#fb9a99", "#e31a1c", "#fdbf6f", "#ff7f00", "#cab2d6", "#6a3d9a", "#ffff99", "#b15928"},
}

var builtin = []Scheme{
	BrewerPaired12,
	{Category: CategoryBrewer, Name: "Set1_9", Colors: []string{"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00", "#ffff33", "#a65628", "#f781bf", "#999999"}},
	{Category: CategoryBrewer, Name: "Set2_8", Colors: []string{"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3", "#a6d854", "#ffd92f", "#e5c494", "#b3b3b3"}},
	{Category: CategoryBrewer, Name: "Set3_12", Colors: []string{"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462", "#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f"}},
	{Category: CategoryBrewer, Name: "Dark2_8", Colors: []string{"#1b9e77", "#d95f02", "#7570b3", "#e7298a", "#66a61e", "#e6ab02", "#a6761d", "#666666"}},
	{Category: CategoryBrewer, Name: "Accent8", Colors: []string{"#7fc97f", "#beaed4", "#fdc086", "#ffff99", "#386cb0", "#f0027f", "#bf5b17", "#666666"}},
	{Category: CategoryBrewer, Name: "Pastel1_9", Colors: []string{"#fbb4ae", "#b3cde3", "#ccebc5", "#decbe4", "#fed9a6", "#ffffcc", "#e5d8bd", "#fddaec", "#f2f2f2"}},
	{Category: CategoryBrewer, Name: "Spectral11", Colors: []string{"#9e0142", "#d53e4f", "#f46d43", "#fdae61", "#fee08b", "#ffffbf", "#e6f598", "#abdda4", "#66c2a5", "#3288bd", "#5e4fa2"}},
	{Category: CategoryBrewer, Name: "RdYlGn11", Colors: []string{"#a50026", "#d73027", "#f46d43", "#fdae61", "#fee08b", "#ffffbf", "#d9ef8b", "#a6d96a", "#66bd63", "#1a9850", "#006837"}},
	{Category: CategoryTableau, Name: "Tableau10", Colors: []string{"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f", "#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac"}},
	{Category: CategoryTableau, Name: "Tableau20", Colors: []string{"#4e79a7", "#a0cbe8", "#f28e2b", "#ffbe7d", "#59a14f", "#8cd17d", "#b6992d", "#f1ce63", "#499894", "#86bcb6", "#e15759", "#ff9d9a", "#79706e", "#bab0ac", "#d37295", "#fabfd2", "#b07aa1", "#d4a6c8", "#9d7660", "#d7b5a6"}},
	{Category: CategoryTableau, Name: "ColorBlind10", Colors: []string{"#1170aa", "#fc7d0b", "#a3acb9", "#57606c", "#5fa2ce", "#c85200", "#7b848f", "#a3cce9", "#ffbc79", "#c8d0d9"}},
	{Category: CategoryTableau, Name: "Traffic9", Colors: []string{"#b60a1c", "#e39802", "#309143", "#e03531", "#f0bd27", "#51b364", "#ff684c", "#ffda66", "#8ace7e"}},
	{Category: CategoryTableau, Name: "HueCircle19", Colors: []string{"#1ba3c6", "#2cb5c0", "#30bcad", "#21b087", "#33a65c", "#57a337", "#a2b627", "#d5bb21", "#f8b620", "#f89217", "#f06719", "#e03426", "#f64971", "#fc719e", "#eb73b3", "#ce69be", "#a26dc2", "#7873c0", "#4f7cba"}},
	{Category: CategoryOffice, Name: "Office6", Colors: []string{"#5B9BD5", "#ED7D31", "#A5A5A5", "#FFC000", "#4472C4", "#70AD47"}},
	{Category: CategoryOffice, Name: "Office2007_2010_6", Colors: []string{"#4F81BD", "#C0504D", "#9BBB59", "#8064A2", "#4BACC6", "#F79646"}},
	{Category: CategoryOffice, Name: "Flow6", Colors: []string{"#0F6FC6", "#009DD9", "#0BD0D9", "#10CF9B", "#7CCA62", "#A5C249"}},
	{Category: CategoryOffice, Name: "Median6", Colors: []string{"#94B6D2", "#DD8047", "#A5AB81", "#D8B25C", "#7BA79D", "#968C8C"}},
	{Category: CategoryGoogle, Name: "Eight", Colors: []string{"#3366cc", "#dc3912", "#ff9900", "#109618", "#990099", "#0099c6", "#dd4477", "#66aa00"}},
	{Category: CategoryGoogle, Name: "Twelve", Colors: []string{"#3366cc", "#dc3912", "#ff9900", "#109618", "#990099", "#0099c6", "#dd4477", "#66aa00", "#b82e2e", "#316395", "#994499", "#22aa99"}},
	TolQualitative,
}

var (
	mu      sync.RWMutex
	schemes = make(map[string]Scheme)
)

func init() {
	for _, s := range builtin {
		schemes[s.Key()] = s
	}
}

// Register adds or replaces a scheme.
func Register(s Scheme) error {
	if len(s.Colors) == 0 {
		return fmt.Errorf("%s: %w", s.Key(), ErrEmptyScheme)
	}
	mu.Lock()
	defer mu.Unlock()
	schemes[s.Key()] = s
	return nil
}

// Lookup finds a scheme by its "category.name" key, ignoring case.
func Lookup(key string) (Scheme, error) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := schemes[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Scheme{}, fmt.Errorf("%q: %w", key, ErrUnknownScheme)
	}
	return s, nil
}

// All returns every registered scheme ordered by key.
func All() []Scheme {
	mu.RLock()
	defer mu.RUnlock()
	result := make([]Scheme, 0, len(schemes))
	for _, s := range schemes {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key() < result[j].Key() })
	return result
}

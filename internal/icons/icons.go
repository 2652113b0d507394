// Package icons maps free-text icon names stored on features and stats
// to a fixed set of glyphs the site can render.
package icons

import (
	"sort"
	"strings"
)

// Unknown is returned for names outside the canonical set and its synonyms.
const Unknown = "unknown"

// Icon is a canonical icon key with its rendered glyph.
type Icon struct {
	Key   string
	Glyph string
	Label string
}

var canonical = map[string]Icon{
	"droplet":   {Key: "droplet", Glyph: "💧", Label: "Water"},
	"sprinkler": {Key: "sprinkler", Glyph: "⛲", Label: "Sprinkler"},
	"leaf":      {Key: "leaf", Glyph: "🌿", Label: "Plant"},
	"sun":       {Key: "sun", Glyph: "☀️", Label: "Sun"},
	"gauge":     {Key: "gauge", Glyph: "⏲️", Label: "Pressure"},
	"pipe":      {Key: "pipe", Glyph: "🔧", Label: "Pipe"},
	"tool":      {Key: "tool", Glyph: "🛠️", Label: "Service"},
	"truck":     {Key: "truck", Glyph: "🚚", Label: "Delivery"},
	"shield":    {Key: "shield", Glyph: "🛡️", Label: "Warranty"},
	"award":     {Key: "award", Glyph: "🏆", Label: "Quality"},
	"users":     {Key: "users", Glyph: "👥", Label: "Clients"},
	"clock":     {Key: "clock", Glyph: "⏱️", Label: "Time"},
	"globe":     {Key: "globe", Glyph: "🌍", Label: "Regions"},
	"chart":     {Key: "chart", Glyph: "📈", Label: "Growth"},
	"settings":  {Key: "settings", Glyph: "⚙️", Label: "Automation"},
	"phone":     {Key: "phone", Glyph: "📞", Label: "Support"},
	Unknown:     {Key: Unknown, Glyph: "•", Label: ""},
}

var synonyms = map[string]string{
	"water":       "droplet",
	"drop":        "droplet",
	"droplets":    "droplet",
	"tint":        "droplet",
	"drip":        "droplet",
	"irrigation":  "sprinkler",
	"spray":       "sprinkler",
	"shower":      "sprinkler",
	"fountain":    "sprinkler",
	"plant":       "leaf",
	"sprout":      "leaf",
	"seedling":    "leaf",
	"eco":         "leaf",
	"tree":        "leaf",
	"sunny":       "sun",
	"solar":       "sun",
	"pressure":    "gauge",
	"meter":       "gauge",
	"speedometer": "gauge",
	"hose":        "pipe",
	"tube":        "pipe",
	"wrench":      "tool",
	"tools":       "tool",
	"service":     "tool",
	"delivery":    "truck",
	"shipping":    "truck",
	"warranty":    "shield",
	"guarantee":   "shield",
	"security":    "shield",
	"quality":     "award",
	"trophy":      "award",
	"medal":       "award",
	"star":        "award",
	"clients":     "users",
	"customers":   "users",
	"team":        "users",
	"people":      "users",
	"time":        "clock",
	"timer":       "clock",
	"years":       "clock",
	"calendar":    "clock",
	"world":       "globe",
	"map":         "globe",
	"regions":     "globe",
	"growth":      "chart",
	"trending-up": "chart",
	"bar-chart":   "chart",
	"cog":         "settings",
	"gear":        "settings",
	"automation":  "settings",
	"support":     "phone",
	"headset":     "phone",
	"call":        "phone",
}

// Normalize reduces an icon name to its lookup form: lower case, dashes,
// without "fa-"/"icon-" prefixes and an "Icon" suffix.
func Normalize(name string) string {
	n := strings.TrimSpace(name)
	n = strings.TrimSuffix(n, "Icon")
	n = strings.ToLower(n)
	n = strings.NewReplacer("_", "-", " ", "-").Replace(n)
	for _, prefix := range []string{"fa-", "icon-", "lucide-", "mdi-"} {
		n = strings.TrimPrefix(n, prefix)
	}
	return strings.Trim(n, "-")
}

// Key resolves a stored icon name to a canonical key, or Unknown.
func Key(name string) string {
	n := Normalize(name)
	if _, ok := canonical[n]; ok {
		return n
	}
	if k, ok := synonyms[n]; ok {
		return k
	}
	return Unknown
}

// Lookup returns the icon for a stored name; unmapped names get the Unknown glyph.
func Lookup(name string) Icon {
	return canonical[Key(name)]
}

// Keys lists the canonical keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(canonical))
	for k := range canonical {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

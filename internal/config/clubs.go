package config

import "sort"

// DefaultClubColor is used for clubs missing from the registry.
const DefaultClubColor = "#808080"

// clubColors maps the 2024/25 Premier League clubs to their primary colour.
var clubColors = map[string]string{
	"Arsenal":                 "#EF0107",
	"Aston Villa":             "#95BFE5",
	"Bournemouth":             "#DA291C",
	"Brentford":               "#E30613",
	"Brighton & Hove Albion":  "#0057B8",
	"Chelsea":                 "#034694",
	"Crystal Palace":          "#1B458F",
	"Everton":                 "#003399",
	"Fulham":                  "#000000",
	"Ipswich Town":            "#0000FF",
	"Leicester City":          "#003090",
	"Liverpool":               "#C8102E",
	"Manchester City":         "#6CABDD",
	"Manchester United":       "#DA291C",
	"Newcastle United":        "#241F20",
	"Nottingham Forest":       "#DD1E2F",
	"Southampton":             "#D71920",
	"Tottenham Hotspur":       "#132257",
	"West Ham United":         "#7A263A",
	"Wolverhampton Wanderers": "#FDB913",
}

// ClubColor returns the hex colour of a club and whether it is registered.
func ClubColor(club string) (string, bool) {
	c, ok := clubColors[club]
	if !ok {
		return DefaultClubColor, false
	}
	return c, true
}

// ClubColors returns a copy of the club colour registry.
func ClubColors() map[string]string {
	out := make(map[string]string, len(clubColors))
	for k, v := range clubColors {
		out[k] = v
	}
	return out
}

// Clubs returns the registered club names in alphabetical order.
func Clubs() []string {
	out := make([]string, 0, len(clubColors))
	for k := range clubColors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

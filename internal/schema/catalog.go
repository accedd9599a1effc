package schema

import "strings"

// Outlet groups.
const (
	GroupCompetition = "competition"
	GroupAzteca      = "azteca"
	GroupLocal       = "local"
	GroupImage       = "image"
)

// Map regions for local outlets.
const (
	RegionNorte     = "Norte"
	RegionCentro    = "Centro"
	RegionSur       = "Sur"
	RegionOriente   = "Oriente"
	RegionOccidente = "Occidente"
)

// Outlet is a tracked media brand. Index is the outlet's block position in
// the main sheet.
type Outlet struct {
	Name   string `json:"name"`
	Group  string `json:"group"`
	Index  int    `json:"index"`
	Color  string `json:"color"`
	Region string `json:"region,omitempty"`
}

// Catalog is the static outlet configuration, in sheet order.
var Catalog = []Outlet{
	{Name: "Heraldo", Group: GroupCompetition, Index: 0, Color: "#3B9EFF"},
	{Name: "Televisa", Group: GroupCompetition, Index: 1, Color: "#20C997"},
	{Name: "Milenio", Group: GroupCompetition, Index: 2, Color: "#21C285"},
	{Name: "Universal", Group: GroupCompetition, Index: 3, Color: "#EE5253"},
	{Name: "As", Group: GroupCompetition, Index: 4, Color: "#F44336"},
	{Name: "Infobae", Group: GroupCompetition, Index: 5, Color: "#66E34F"},
	{Name: "NyTimes", Group: GroupCompetition, Index: 6, Color: "#4285F4"},
	{Name: "Terra", Group: GroupCompetition, Index: 7, Color: "#FFA726"},

	{Name: "Azteca 7", Group: GroupAzteca, Index: 8, Color: "#22D34C"},
	{Name: "Azteca UNO", Group: GroupAzteca, Index: 9, Color: "#FF3B3B"},
	{Name: "ADN40", Group: GroupAzteca, Index: 10, Color: "#F2C744"},
	{Name: "Deportes", Group: GroupAzteca, Index: 11, Color: "#2255FF"},
	{Name: "A+", Group: GroupAzteca, Index: 12, Color: "#A452D1"},
	{Name: "Noticias", Group: GroupAzteca, Index: 13, Color: "#E46B17"},

	{Name: "Quintana Roo", Group: GroupLocal, Index: 14, Color: "#22D34C", Region: RegionSur},
	{Name: "Bajío", Group: GroupLocal, Index: 15, Color: "#FF3B3B", Region: RegionCentro},
	{Name: "Ciudad Juárez", Group: GroupLocal, Index: 16, Color: "#F2C744", Region: RegionNorte},
	{Name: "Yúcatan", Group: GroupLocal, Index: 17, Color: "#4A6CF7", Region: RegionSur},
	{Name: "Jalisco", Group: GroupLocal, Index: 18, Color: "#FF5F6D", Region: RegionCentro},
	{Name: "Puebla", Group: GroupLocal, Index: 19, Color: "#00F7FF", Region: RegionOriente},
	{Name: "Veracruz", Group: GroupLocal, Index: 20, Color: "#FF8A00", Region: RegionOriente},
	{Name: "Baja California", Group: GroupLocal, Index: 21, Color: "#7B61FF", Region: RegionOccidente},
	{Name: "Morelos", Group: GroupLocal, Index: 22, Color: "#00C2A8", Region: RegionCentro},
	{Name: "Guerrero", Group: GroupLocal, Index: 23, Color: "#FFC700", Region: RegionSur},
	{Name: "Chiapas", Group: GroupLocal, Index: 24, Color: "#FF6B6B", Region: RegionSur},
	{Name: "Sinaloa", Group: GroupLocal, Index: 25, Color: "#36D6AD", Region: RegionNorte},
	{Name: "Aguascalientes", Group: GroupLocal, Index: 26, Color: "#6772E5", Region: RegionCentro},
	{Name: "Queretaro", Group: GroupLocal, Index: 27, Color: "#FF4081", Region: RegionCentro},
	{Name: "Chihuahua", Group: GroupLocal, Index: 28, Color: "#29B6F6", Region: RegionNorte},
	{Name: "Laguna", Group: GroupLocal, Index: 29, Color: "#9C27B0", Region: RegionNorte},

	{Name: "img.Azteca7TVA", Group: GroupImage, Index: 30, Color: "#22D34C"},
	{Name: "img.AztecaUNOTVA", Group: GroupImage, Index: 31, Color: "#FF3B3B"},
	{Name: "img.AztecaNoticias", Group: GroupImage, Index: 32, Color: "#F2C744"},
}

// Regions lists the map regions in display order.
var Regions = []string{RegionNorte, RegionCentro, RegionSur, RegionOriente, RegionOccidente}

// Lookup finds an outlet by name, ignoring case and surrounding space.
func Lookup(name string) (Outlet, bool) {
	name = strings.TrimSpace(name)
	for _, o := range Catalog {
		if strings.EqualFold(o.Name, name) {
			return o, true
		}
	}
	return Outlet{}, false
}

// Group returns the outlets of one group in sheet order. An empty group
// returns the whole catalog.
func Group(group string) []Outlet {
	if group == "" {
		return append([]Outlet(nil), Catalog...)
	}
	var out []Outlet
	for _, o := range Catalog {
		if o.Group == group {
			out = append(out, o)
		}
	}
	return out
}

// InRegion returns the local outlets assigned to region.
func InRegion(region string) []Outlet {
	var out []Outlet
	for _, o := range Catalog {
		if o.Region == region {
			out = append(out, o)
		}
	}
	return out
}

// Vertical is the outlet list of the vertical sheet. Its blocks follow the
// image outlets, so indices start at 30 there.
var Vertical = []Outlet{
	{Name: "Azteca 7", Group: GroupAzteca, Index: 30, Color: "#22D34C"},
	{Name: "Azteca UNO", Group: GroupAzteca, Index: 31, Color: "#FF3B3B"},
	{Name: "Noticias", Group: GroupAzteca, Index: 32, Color: "#E46B17"},
	{Name: "Deportes", Group: GroupAzteca, Index: 33, Color: "#2255FF"},
	{Name: "ADN40", Group: GroupAzteca, Index: 34, Color: "#F2C744"},
	{Name: "A+", Group: GroupAzteca, Index: 35, Color: "#A452D1"},
	{Name: "Milenio", Group: GroupCompetition, Index: 36, Color: "#21C285"},
	{Name: "Heraldo", Group: GroupCompetition, Index: 37, Color: "#3B9EFF"},
	{Name: "Universal", Group: GroupCompetition, Index: 38, Color: "#EE5253"},
	{Name: "Televisa", Group: GroupCompetition, Index: 39, Color: "#20C997"},
	{Name: "Terra", Group: GroupCompetition, Index: 40, Color: "#FFA726"},
	{Name: "As", Group: GroupCompetition, Index: 41, Color: "#F44336"},
	{Name: "Infobae", Group: GroupCompetition, Index: 42, Color: "#66E34F"},
	{Name: "NyTimes", Group: GroupCompetition, Index: 43, Color: "#4285F4"},
}

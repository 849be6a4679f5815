package domain

// ProductionSite identifies one of the fixed factory sites goods ship from.
// The site set is static; quoting enumerates exactly these.
type ProductionSite string

const (
	SiteGebze   ProductionSite = "TR14"
	SiteTrabzon ProductionSite = "TR15"
	SiteAdana   ProductionSite = "TR16"
)

var siteNames = map[ProductionSite]string{
	SiteGebze:   "GEBZE",
	SiteTrabzon: "TRABZON",
	SiteAdana:   "ADANA",
}

// ProductionSites returns the fixed, ordered site set.
func ProductionSites() []ProductionSite {
	return []ProductionSite{SiteGebze, SiteTrabzon, SiteAdana}
}

// Name returns the human-readable site name, or the raw code if unknown.
func (s ProductionSite) Name() string {
	if name, ok := siteNames[s]; ok {
		return name
	}
	return string(s)
}

// Valid reports whether s belongs to the known site set.
func (s ProductionSite) Valid() bool {
	_, ok := siteNames[s]
	return ok
}

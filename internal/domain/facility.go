package domain

// Facility describes a bookable hall in the catalog
type Facility struct {
	ID          FacilityID
	DisplayName string
	Capacity    int
	Features    []string
	Restriction string // e.g. "Reserved for external guests only."
}

// HasRestriction returns true if the facility is limited to certain events
func (f *Facility) HasRestriction() bool {
	return f.Restriction != ""
}

// Catalog is the read-only facility catalog. Order follows the configuration.
type Catalog struct {
	facilities []Facility
	byID       map[FacilityID]Facility
}

// NewCatalog builds a catalog from the configured facilities
func NewCatalog(facilities []Facility) *Catalog {
	c := &Catalog{
		facilities: make([]Facility, len(facilities)),
		byID:       make(map[FacilityID]Facility, len(facilities)),
	}
	copy(c.facilities, facilities)
	for _, f := range facilities {
		c.byID[f.ID] = f
	}
	return c
}

// Get returns the facility by id
func (c *Catalog) Get(id FacilityID) (Facility, bool) {
	if c == nil {
		return Facility{}, false
	}
	f, ok := c.byID[id]
	return f, ok
}

// Has returns true if the facility is in the catalog
func (c *Catalog) Has(id FacilityID) bool {
	_, ok := c.Get(id)
	return ok
}

// All returns the facilities in catalog order
func (c *Catalog) All() []Facility {
	if c == nil {
		return nil
	}
	out := make([]Facility, len(c.facilities))
	copy(out, c.facilities)
	return out
}

// IDs returns facility ids in catalog order
func (c *Catalog) IDs() []FacilityID {
	if c == nil {
		return nil
	}
	ids := make([]FacilityID, 0, len(c.facilities))
	for _, f := range c.facilities {
		ids = append(ids, f.ID)
	}
	return ids
}

package content

// DB is the read-mostly content database mapping string ids to static
// definitions. It is loaded once and never mutated during a tick.
type DB struct {
	Resources     map[string]ResourceDef     `json:"resources" yaml:"resources"`
	Components    map[string]ComponentDef    `json:"components" yaml:"components"`
	Installations map[string]InstallationDef `json:"installations" yaml:"installations"`
	Techs         map[string]TechDef         `json:"techs" yaml:"techs"`
	Designs       map[string]ShipDesign      `json:"designs" yaml:"designs"`
}

// NewDB returns an empty database with all maps allocated
func NewDB() *DB {
	return &DB{
		Resources:     make(map[string]ResourceDef),
		Components:    make(map[string]ComponentDef),
		Installations: make(map[string]InstallationDef),
		Techs:         make(map[string]TechDef),
		Designs:       make(map[string]ShipDesign),
	}
}

// Design returns the design for id, or nil when unknown
func (db *DB) Design(id string) *ShipDesign {
	if d, ok := db.Designs[id]; ok {
		return &d
	}
	return nil
}

// Installation returns the installation for id, or nil when unknown
func (db *DB) Installation(id string) *InstallationDef {
	if d, ok := db.Installations[id]; ok {
		return &d
	}
	return nil
}

// Tech returns the tech for id, or nil when unknown
func (db *DB) Tech(id string) *TechDef {
	if t, ok := db.Techs[id]; ok {
		return &t
	}
	return nil
}

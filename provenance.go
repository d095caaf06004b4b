package envcheck

// Source names used in provenance records.
const (
	SourceEnv = "env"
)

// Provenance records where variables loaded by the checker came from.
type Provenance struct {
	Vars []VarProvenance
}

// VarProvenance describes where a variable's value came from.
type VarProvenance struct {
	Name   string // Variable name (e.g., "DATABASE_URL")
	Source string // Source identifier (e.g., "file:.env")
}

// SourceOf returns the recorded source of name, or "" when none was recorded.
func (p *Provenance) SourceOf(name string) string {
	if p == nil {
		return ""
	}
	for _, v := range p.Vars {
		if v.Name == name {
			return v.Source
		}
	}
	return ""
}

// Names returns the recorded variable names in load order.
func (p *Provenance) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.Vars))
	for _, v := range p.Vars {
		names = append(names, v.Name)
	}
	return names
}

func (p *Provenance) add(name, source string) {
	if p.SourceOf(name) != "" {
		return
	}
	p.Vars = append(p.Vars, VarProvenance{Name: name, Source: source})
}

package errcode

// Gateway persists or verifies one registry entry per generated code.
type Gateway interface {
	Persist(hash string, rec Record) error
}

// DryRun is a Gateway without any I/O.
type DryRun struct{}

func (DryRun) Persist(string, Record) error { return nil }

// Issue is one code handed out by a Generator.
type Issue struct {
	Record Record
	Hash   string
	Code   string
}

// Generator hands out codes for one compilation unit. It owns the unit's
// Occurrences and calls the Gateway once per code.
type Generator struct {
	commit   string
	filePath string
	gw       Gateway
	occ      *Occurrences
}

// NewGenerator creates a generator for the unit at filePath. A nil gw
// behaves as DryRun.
func NewGenerator(commit, filePath string, gw Gateway) *Generator {
	if gw == nil {
		gw = DryRun{}
	}
	return &Generator{
		commit:   commit,
		filePath: filePath,
		gw:       gw,
		occ:      NewOccurrences(),
	}
}

func (g *Generator) FilePath() string { return g.filePath }
func (g *Generator) Commit() string   { return g.commit }

// CodeFor returns the code of the next occurrence of template.
func (g *Generator) CodeFor(template string) (string, error) {
	is, err := g.Issue(template)
	if err != nil {
		return "", err
	}
	return is.Code, nil
}

// Issue is CodeFor that also returns the record and its hash. The
// occurrence is counted even when the gateway fails.
func (g *Generator) Issue(template string) (Issue, error) {
	rec := Record{
		FilePath:        g.filePath,
		ErrorMessage:    template,
		OccurrenceCount: g.occ.Next(template),
	}
	hash := Hash(rec)
	is := Issue{Record: rec, Hash: hash, Code: "E" + g.commit + hash}
	if err := g.gw.Persist(hash, rec); err != nil {
		return is, err
	}
	return is, nil
}

// skip counts an occurrence of template without issuing a code.
func (g *Generator) skip(template string) {
	g.occ.Next(template)
}

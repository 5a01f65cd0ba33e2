package dpn

import (
	"encoding/xml"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/flowmine/efsm"
	"github.com/katalvlaran/flowmine/eventlog"
)

// PNML is the root element of the augmented PNML document spec.md §6
// describes: a standard PNML net plus a top-level <variables> element
// and, per transition, a <data> child carrying the guard/update/read/
// write text children. No PNML-producing library exists anywhere in
// the example corpus (see DESIGN.md), so this is hand-written against
// stdlib encoding/xml — the idiomatic Go choice absent a domain
// library.
type PNML struct {
	XMLName   xml.Name     `xml:"pnml"`
	Net       pnmlNet      `xml:"net"`
	Variables pnmlVarBlock `xml:"variables"`
}

type pnmlNet struct {
	ID          string           `xml:"id,attr"`
	Places      []pnmlPlace      `xml:"place"`
	Transitions []pnmlTransition `xml:"transition"`
	Arcs        []pnmlArc        `xml:"arc"`
}

type pnmlPlace struct {
	ID                 string `xml:"id,attr"`
	Name               string `xml:"name>text"`
	InitialMarkingText string `xml:"initialMarking>text,omitempty"`
}

type pnmlTransition struct {
	ID   string   `xml:"id,attr"`
	Name string   `xml:"name>text"`
	Data pnmlData `xml:"data"`
}

type pnmlData struct {
	Guard  string `xml:"guard"`
	Update string `xml:"update"`
	Read   string `xml:"read"`
	Write  string `xml:"write"`
}

type pnmlArc struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

type pnmlVarBlock struct {
	Variables []pnmlVariable `xml:"variable"`
}

type pnmlVariable struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

// ExportPNML renders n as the augmented PNML document of spec.md §6.
func ExportPNML(n *Net) ([]byte, error) {
	pn := PNML{Net: pnmlNet{ID: n.Name}}

	for _, p := range n.Places() {
		pp := pnmlPlace{ID: p, Name: p}
		if tokens := n.Initial[p]; tokens > 0 {
			pp.InitialMarkingText = marshalInt(tokens)
		}
		pn.Net.Places = append(pn.Net.Places, pp)
	}

	for _, t := range n.Transitions() {
		td := n.transitions[t]
		pn.Net.Transitions = append(pn.Net.Transitions, pnmlTransition{
			ID:   t,
			Name: td.Label,
			Data: pnmlData{
				Guard:  td.Guard.Serialize(),
				Update: serializeUpdate(td.Update.Serialize()),
				Read:   joinIdentifiers(td.Read),
				Write:  joinIdentifiers(td.Write),
			},
		})
	}

	for i, a := range n.Arcs() {
		pn.Net.Arcs = append(pn.Net.Arcs, pnmlArc{ID: "arc" + marshalInt(int64(i)), Source: a.Source, Target: a.Target})
	}

	var names []string
	for name := range n.Variables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		pn.Variables.Variables = append(pn.Variables.Variables, pnmlVariable{
			Name: name,
			Type: jsonDtype(n.Variables[name].Dtype),
		})
	}

	return xml.MarshalIndent(pn, "", "  ")
}

// ImportPNML parses an augmented PNML document back into a Net. Places
// become the EFSM-state places of a canonical projection; transitions
// carry their guard/update reconstructed via efsm.ParseGuard (the
// untyped path, since PNML carries no per-variable dtype context
// alongside each atom) and read/write sets split from the
// whitespace-joined <read>/<write> text.
func ImportPNML(data []byte) (*Net, error) {
	var pn PNML
	if err := xml.Unmarshal(data, &pn); err != nil {
		return nil, err
	}

	variables := map[string]efsm.Variable{}
	for _, v := range pn.Variables.Variables {
		variables[v.Name] = efsm.Variable{Name: v.Name, Dtype: parsePNMLDtype(v.Type)}
	}

	n := newNet(pn.Net.ID, variables)
	for _, p := range pn.Net.Places {
		if err := n.addPlace(p.ID); err != nil {
			return nil, err
		}
		if p.InitialMarkingText != "" {
			n.Initial[p.ID] = parseInt(p.InitialMarkingText)
		}
	}
	for _, t := range pn.Net.Transitions {
		g, err := efsm.ParseGuard(nonEmptyPtr(t.Data.Guard))
		if err != nil {
			return nil, err
		}
		td := &TransitionData{
			Label:  t.Name,
			Guard:  g,
			Update: parsePNMLUpdate(t.Data.Update),
			Read:   splitIdentifiers(t.Data.Read),
			Write:  splitIdentifiers(t.Data.Write),
		}
		if err := n.addTransition(t.ID, td); err != nil {
			return nil, err
		}
	}
	for _, a := range pn.Net.Arcs {
		if err := n.addArc(a.Source, a.Target); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func nonEmptyPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parsePNMLDtype reverses jsonDtype's lossy int/float -> "number"
// collapse as DtypeFloat (the wider of the two), and everything else
// as DtypeString.
func parsePNMLDtype(t string) eventlog.Dtype {
	if t == "number" {
		return eventlog.DtypeFloat
	}
	return eventlog.DtypeString
}

func marshalInt(i int64) string { return strconv.FormatInt(i, 10) }

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

// joinIdentifiers/splitIdentifiers render a read/write variable set as
// whitespace-separated text for the PNML <read>/<write> children, per
// spec.md §6.
func joinIdentifiers(ids []string) string { return strings.Join(ids, " ") }

func splitIdentifiers(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}

// parsePNMLUpdate reverses serializeUpdate's "var=expr;var2=expr2"
// encoding.
func parsePNMLUpdate(s string) efsm.Update {
	out := efsm.Update{Assignments: map[string]efsm.Assignment{}}
	if s == "" {
		return out
	}
	for _, part := range strings.Split(s, ";") {
		idx := strings.Index(part, "=")
		if idx < 0 {
			continue
		}
		name, expr := part[:idx], part[idx+1:]
		out.Assignments[name] = efsm.ParseAssignment(expr)
	}
	return out
}

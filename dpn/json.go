package dpn

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/flowmine/eventlog"
)

// jsonNet mirrors spec.md §6's DPN JSON export shape exactly:
//
//	{name, description, places:[{id,label,tokens}],
//	 transitions:[{id,label,precondition,postcondition}],
//	 arcs:[{id,source,target,weight}],
//	 dataVariables:[{id,name,type,currentValue,description}]}
type jsonNet struct {
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Places        []jsonPlace         `json:"places"`
	Transitions   []jsonDPNTransition `json:"transitions"`
	Arcs          []jsonArc           `json:"arcs"`
	DataVariables []jsonDataVariable  `json:"dataVariables"`
}

type jsonPlace struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Tokens int64  `json:"tokens"`
}

type jsonDPNTransition struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	Precondition  string `json:"precondition"`
	Postcondition string `json:"postcondition"`
}

type jsonArc struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int64  `json:"weight"`
}

type jsonDataVariable struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	CurrentValue interface{} `json:"currentValue"`
	Description  string      `json:"description"`
}

// MarshalJSON implements the exact shape of spec.md §6's DPN JSON
// export. dataVariables types follow jsonDtype: int/float -> "number",
// every other dtype -> "string"; no variable is exported as "boolean".
func (n *Net) MarshalJSON() ([]byte, error) {
	jn := jsonNet{Name: n.Name, Description: n.Description}

	for _, p := range n.Places() {
		jn.Places = append(jn.Places, jsonPlace{ID: p, Label: p, Tokens: n.Initial[p]})
	}

	for _, t := range n.Transitions() {
		td := n.transitions[t]
		jn.Transitions = append(jn.Transitions, jsonDPNTransition{
			ID:            t,
			Label:         td.Label,
			Precondition:  td.Guard.Serialize(),
			Postcondition: serializeUpdate(td.Update.Serialize()),
		})
	}

	for i, a := range n.Arcs() {
		jn.Arcs = append(jn.Arcs, jsonArc{
			ID:     "arc" + strconv.Itoa(i),
			Source: a.Source,
			Target: a.Target,
			Weight: 1,
		})
	}

	var names []string
	for name := range n.Variables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := n.Variables[name]
		jn.DataVariables = append(jn.DataVariables, jsonDataVariable{
			ID:           name,
			Name:         name,
			Type:         jsonDtype(v.Dtype),
			CurrentValue: zeroForDtype(v.Dtype),
		})
	}

	return json.Marshal(jn)
}

// jsonDtype implements spec.md §6's export type-mapping table:
// int/integer/float/double/real -> "number"; else -> "string". The
// "bool/boolean -> boolean" branch of that table has no counterpart
// here, since eventlog.InferDomains only ever classifies an attribute
// as int/float/cat/string (spec.md §4.A) — value.Value's KindBool is
// reachable inside guard literals, never as a declared Variable dtype.
func jsonDtype(d eventlog.Dtype) string {
	switch d {
	case eventlog.DtypeInt, eventlog.DtypeFloat:
		return "number"
	default:
		return "string"
	}
}

func zeroForDtype(d eventlog.Dtype) interface{} {
	switch d {
	case eventlog.DtypeInt, eventlog.DtypeFloat:
		return 0
	default:
		return ""
	}
}

// serializeUpdate renders an Update.Serialize() map as a deterministic
// "var=expr;var2=expr2" string, sorted by variable name.
func serializeUpdate(assignments map[string]string) string {
	names := make([]string, 0, len(assignments))
	for name := range assignments {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + assignments[name]
	}
	return strings.Join(parts, ";")
}

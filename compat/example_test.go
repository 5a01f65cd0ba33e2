package compat_test

import (
	"fmt"

	"github.com/katalvlaran/flowmine/compat"
	"github.com/katalvlaran/flowmine/pta"
	"github.com/katalvlaran/flowmine/value"
)

func sample(region string) map[string]value.Value {
	return map[string]value.Value{"region": value.Str(region)}
}

// ExampleCompatible_compatible shows two nodes whose outgoing "pay"
// edges carry the same categorical distribution merging under a loose
// threshold.
func ExampleCompatible_compatible() {
	u := &pta.Node{EdgeSamples: map[string][]map[string]value.Value{
		"pay": {sample("eu"), sample("eu"), sample("us")},
	}}
	v := &pta.Node{EdgeSamples: map[string][]map[string]value.Value{
		"pay": {sample("eu"), sample("us"), sample("us")},
	}}
	attrs := []compat.Attr{{Name: "region", Kind: compat.AttrCategorical}}

	fmt.Println(compat.Compatible(u, v, attrs, 0.5))
	// Output:
	// true
}

// ExampleCompatible_incompatible shows two nodes with disjoint
// categorical distributions failing even a loose threshold.
func ExampleCompatible_incompatible() {
	u := &pta.Node{EdgeSamples: map[string][]map[string]value.Value{
		"pay": {sample("eu"), sample("eu")},
	}}
	v := &pta.Node{EdgeSamples: map[string][]map[string]value.Value{
		"pay": {sample("us"), sample("us")},
	}}
	attrs := []compat.Attr{{Name: "region", Kind: compat.AttrCategorical}}

	fmt.Println(compat.Compatible(u, v, attrs, 0.1))
	// Output:
	// false
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/katalvlaran/flowmine/eventlog"
	"github.com/katalvlaran/flowmine/value"
)

// jsonLog is flowmine's own minimal event-log interchange format: a
// list of traces, each a list of activity events with an attribute
// dictionary. This is glue for the CLI only, not the XES/CSV reader
// spec.md §6 names as an out-of-scope external collaborator — it
// exists so discover/evaluate/simulate are runnable end to end against
// a log a caller can hand-write or export from eventlog.Trace.
type jsonLog struct {
	Traces []jsonTrace `json:"traces"`
}

type jsonTrace struct {
	Events []jsonEvent `json:"events"`
}

type jsonEvent struct {
	Activity string                     `json:"activity"`
	Attrs    map[string]json.RawMessage `json:"attrs"`
}

// loadLog reads path as a jsonLog and converts it to []eventlog.Trace.
func loadLog(path string) ([]eventlog.Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", eventlog.ErrInputFormat, path, err)
	}

	var raw jsonLog
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", eventlog.ErrInputFormat, path, err)
	}

	traces := make([]eventlog.Trace, len(raw.Traces))
	for i, rt := range raw.Traces {
		tr := make(eventlog.Trace, len(rt.Events))
		for j, re := range rt.Events {
			attrs := make(map[string]value.Value, len(re.Attrs))
			for name, rawVal := range re.Attrs {
				v, err := decodeAttrValue(rawVal)
				if err != nil {
					return nil, fmt.Errorf("%w: %s: event %d attribute %q: %v", eventlog.ErrInputFormat, path, j, name, err)
				}
				attrs[name] = v
			}
			tr[j] = eventlog.Event{Activity: re.Activity, Attrs: attrs}
		}
		traces[i] = tr
	}
	return traces, nil
}

// decodeAttrValue converts one raw JSON attribute value into a
// value.Value, distinguishing integers from reals via json.Number.
func decodeAttrValue(raw json.RawMessage) (value.Value, error) {
	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		if i, err := asNumber.Int64(); err == nil {
			return value.Int(i), nil
		}
		f, err := asNumber.Float64()
		if err != nil {
			return value.Value{}, err
		}
		return value.Real(f), nil
	}

	var asBool bool
	if err := json.Unmarshal(raw, &asBool); err == nil {
		return value.Bool(asBool), nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return value.Str(asString), nil
	}

	return value.Value{}, fmt.Errorf("unsupported attribute value %s", raw)
}

package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"lacheck/checking"
	"lacheck/trace"
	"lacheck/valueset"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

var ErrMalformedRequest = errors.New("rpc: malformed request")

// Encode the traces of a run as a request.
//
// The request has the fields num_processes, proposals and decisions.
// The traces are objects mapping process ids to arrays of sets.
func EncodeRequest(m *trace.Memory, numProcesses int) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"num_processes": numProcesses,
		"proposals":     encodeTraces(m.Proposals),
		"decisions":     encodeTraces(m.Decisions),
	})
}

func encodeTraces(traces map[int]trace.Trace) map[string]interface{} {
	out := make(map[string]interface{}, len(traces))
	for id, t := range traces {
		slots := make([]interface{}, len(t))
		for i, vs := range t {
			values := []interface{}{}
			for _, v := range vs.Sorted() {
				values = append(values, v)
			}
			slots[i] = values
		}
		out[strconv.Itoa(id)] = slots
	}
	return out
}

// Decode a request into the traces of a run and the number of processes.
//
// Every number must be integral and every slot must be a list. Otherwise ErrMalformedRequest is returned.
func DecodeRequest(req *structpb.Struct) (*trace.Memory, int, error) {
	fields := req.GetFields()
	numProcesses, err := decodeInt(fields["num_processes"])
	if err != nil {
		return nil, 0, fmt.Errorf("%w: num_processes: %v", ErrMalformedRequest, err)
	}
	m := trace.NewMemory()
	if m.Proposals, err = decodeTraces(fields, "proposals"); err != nil {
		return nil, 0, err
	}
	if m.Decisions, err = decodeTraces(fields, "decisions"); err != nil {
		return nil, 0, err
	}
	return m, numProcesses, nil
}

// A missing field has no traces
func decodeTraces(fields map[string]*structpb.Value, name string) (map[int]trace.Trace, error) {
	traces := make(map[int]trace.Trace)
	field, ok := fields[name]
	if !ok {
		return traces, nil
	}
	s, ok := field.GetKind().(*structpb.Value_StructValue)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not an object", ErrMalformedRequest, name)
	}
	for key, value := range s.StructValue.GetFields() {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: process id %q", ErrMalformedRequest, key)
		}
		slots, ok := value.GetKind().(*structpb.Value_ListValue)
		if !ok {
			return nil, fmt.Errorf("%w: process %v: trace is not a list", ErrMalformedRequest, id)
		}
		t := trace.Trace{}
		for i, slot := range slots.ListValue.GetValues() {
			values, ok := slot.GetKind().(*structpb.Value_ListValue)
			if !ok {
				return nil, fmt.Errorf("%w: process %v: slot %v is not a list", ErrMalformedRequest, id, i)
			}
			vs := valueset.New()
			for _, v := range values.ListValue.GetValues() {
				n, err := decodeInt(v)
				if err != nil {
					return nil, fmt.Errorf("%w: process %v: slot %v: %v", ErrMalformedRequest, id, i, err)
				}
				vs.Add(n)
			}
			t = append(t, vs)
		}
		traces[id] = t
	}
	return traces, nil
}

func decodeInt(v *structpb.Value) (int, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("expected a number, got %v", v)
	}
	if n.NumberValue != math.Trunc(n.NumberValue) || math.IsInf(n.NumberValue, 0) {
		return 0, fmt.Errorf("expected an integer, got %v", n.NumberValue)
	}
	return int(n.NumberValue), nil
}

// Encode a verdict as a response
func EncodeVerdict(v checking.Verdict) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	resp := &structpb.Struct{}
	if err := protojson.Unmarshal(data, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Decode a response into a verdict
func DecodeVerdict(resp *structpb.Struct) (checking.Verdict, error) {
	data, err := protojson.Marshal(resp)
	if err != nil {
		return checking.Verdict{}, err
	}
	var v checking.Verdict
	if err := json.Unmarshal(data, &v); err != nil {
		return checking.Verdict{}, err
	}
	return v, nil
}

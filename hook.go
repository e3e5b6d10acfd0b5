package declient

import "strconv"

// Hook is an interceptor applied around a call. Both capabilities are
// optional: a nil BeforeRequest or AfterRequest is skipped by the pipeline.
//
// BeforeRequest receives the working Request and returns its replacement;
// each hook sees the previous hook's output, so execution is strictly
// sequential. AfterRequest folds the working Result the same way, receiving
// the final (post-before-stage) Request alongside it. Both phases run in the
// same precedence order: client hooks, then resource hooks, then per-request
// hooks. The after phase is NOT reversed.
//
// A hook returning an error aborts the pipeline and the whole call. Effects
// of hooks that already ran are not rolled back.
type Hook struct {
	// Name identifies the hook in debug logs and metrics. Optional.
	Name string

	BeforeRequest func(req *Request) (*Request, error)
	AfterRequest  func(req *Request, res *Result) (*Result, error)
}

func concatHooks(layers ...[]Hook) []Hook {
	total := 0
	for _, layer := range layers {
		total += len(layer)
	}
	if total == 0 {
		return nil
	}
	out := make([]Hook, 0, total)
	for _, layer := range layers {
		out = append(out, layer...)
	}
	return out
}

func hookLabel(h Hook, index int) string {
	if h.Name != "" {
		return h.Name
	}
	return "hook#" + strconv.Itoa(index)
}

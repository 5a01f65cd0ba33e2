package guard

import "errors"

// ErrGuardEval marks the GuardEvalError case of spec.md §7: a variable
// referenced by a guard was unbound or held an incompatible kind at
// evaluation time. Recovered locally by every caller — conformance
// reclassifies the firing as undefined, efsm.Simulate treats the
// guard as false.
var ErrGuardEval = errors.New("guard: evaluation error")

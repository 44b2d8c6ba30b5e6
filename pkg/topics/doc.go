// Package topics defines the topic and mask types that gate diagnostic output.
//
// A Topic is a named point in a 64-slot space, identified solely by its level.
// Its label is cosmetic and excluded from equality: sets key their members on
// the level, so two topics at the same level are interchangeable.
//
// A Set is the mask passed to every emit call. Membership is tested by level,
// with one reserved convention: the top slot, CatchAllLevel (63), is the
// catch-all. A set holding any topic at that level contains every topic.
// The convention is part of the public contract and scales with Width.
//
// Applications declare their topics once, usually as package variables:
//
//	var (
//		Info    = topics.MustLabeled(0, "info")
//		Warning = topics.MustLabeled(1, "warning")
//		Error   = topics.MustLabeled(2, "error")
//	)
//
//	mask := topics.SetOf(Error)
//	mask.Contains(Info)  // false
//	mask.Contains(Error) // true
//
// A Registry maps labels back to topics so that masks can be built from
// command line flags or configuration files:
//
//	reg, err := topics.NewRegistry(Info, Warning, Error, topics.All)
//	mask, err := reg.Parse([]string{"warning", "error"})
//
// Topics and sets encode to JSON and CBOR as
//
//	{"level": 2, "label": "error"}
//	{"topics": [{"level": 2, "label": "error"}]}
//
// and decoding rejects out-of-range levels with a *types.DecodeError. The
// catch-all flag is never encoded; it is derived again on load.
package topics

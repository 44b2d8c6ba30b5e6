/*
Package debugkit provides topic-filtered diagnostic output.

Every message is tagged with a topic from pkg/topics. The caller passes a
mask, a topics.Set, with each call; the message is written only when the mask
contains the topic. A mask holding the catch-all topic (level 63) enables
everything.

# Basic Usage

	info := topics.MustLabeled(0, "info")
	errTopic := topics.MustLabeled(2, "error")
	mask := topics.SetOf(errTopic)

	e := debugkit.New(os.Stderr)
	e.Dbg(info, mask, "not shown")
	e.Dbg(errTopic, mask, "Bang!") // debug-error: Bang!

# Output Format

A message is composed of a prefix, the label separator and topic label, a
message separator, the message and a terminator. Each token may be omitted
with the matching Without option. Omitting the label separator also omits
the label; an unlabeled topic shows its level instead:

	e := debugkit.New(w, debugkit.WithLabelSeparator("_"), debugkit.WithMessageSeparator(":"))
	e.Dbg(info, mask, "kala") // debug_info:kala

# Deferred Messages

Dbgf, DbgFn and DlogTopicFn build the message only after the mask check.
The multi-topic DbgEach family builds the message at most once.

# Timestamped Output

Dlog writes "<timestamp> <message>" unconditionally. DlogTopic adds the topic
label in brackets and honors the mask:

	e.DlogTopic(info, mask, "ready") // 2026-10-18 09:30:15.123 [info] ready

# Errors

Emission never returns errors. Failed writes and flushes are counted in
Metrics and passed to the ErrorHandler, which discards them by default.

# Package Functions

Dbg, Print, Dlog and the other package-level functions write through
Default(), an emitter bound to standard error. SetDefault replaces it.
*/
package debugkit

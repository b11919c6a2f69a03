// Package job sequences one cutting job from validated geometry to an
// emitted instruction stream.
//
// The Orchestrator is a linear state machine:
//
//	Idle → Validated → Encoded → Emitted → Done
//
// A job is Rejected from Idle when geometry or boundary checks fail, from
// Validated when the operator declines it or the context is cancelled,
// and from Emitted when the sink cannot take the stream. Every transition
// is recorded and can be read back with History.
//
// Nothing reaches the sink unless every point of every toolpath lies
// inside the workspace. The stream is built in full before emission, so a
// rejected job never leaves partial output behind.
package job

/*
Package observability provides tools for monitoring the automata engine.

Everything here plugs into domain.LifecycleHooks: Prometheus metrics for runs,
steps and validation findings, a structured audit logger, and ChainHooks to
combine several hook sets into one.
*/
package observability

/*
Package ports defines the driven ports (interfaces) for the automata engine.

These interfaces decouple the engine from external implementations, allowing
it to work with various automaton libraries, session backends and history stores.

# Key Interfaces

  - AutomatonLoader: Resolves automata by id (e.g., from Loam or Memory).
  - SessionStore: Persists and loads step sessions.
  - DistributedLocker: Provides distributed locking for concurrent session access.
  - RunHistory: Records one-shot runs for later inspection.
  - Engine: The call contract consumed by the HTTP and MCP adapters.
*/
package ports

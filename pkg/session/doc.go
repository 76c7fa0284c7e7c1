/*
Package session implements step session management and persistence orchestration.

A Manager serializes every load-modify-save cycle on a session id: locally through
reference counted mutexes, and across replicas through an optional
ports.DistributedLocker sharing the same SessionStore.
*/
package session

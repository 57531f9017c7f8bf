// Package bridge composes the flatpak client, the confirmation gate and the
// identifier validator into the five operations the HTTP layer exposes:
// Status, List, Install, Update and Run.
//
// Every failure is returned as *Error carrying a Kind the HTTP layer maps to
// a status code. Install and Update never run a subprocess before the
// operator approved; Run and Install never pass an identifier to a
// subprocess before it matched the identifier grammar.
package bridge

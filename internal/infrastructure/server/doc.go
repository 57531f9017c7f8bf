// Package server assembles the bridge: it binds the loopback listener,
// selects the confirmation provider, builds the gin engine with its
// middleware chain and routes, and runs it until shutdown.
package server

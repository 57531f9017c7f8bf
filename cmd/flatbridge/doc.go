// Command flatbridge runs the Flatpak install bridge and talks to a running
// instance.
//
//	flatbridge                      start the bridge (same as "serve")
//	flatbridge serve --port 9000    start on another preferred port
//	flatbridge status               query a running bridge
//	flatbridge list -o yaml         list installed applications
//	flatbridge install org.videolan.VLC --token <token>
//
// Client commands read the bridge address and token from --url/--token or
// FLATBRIDGE_URL/FLATBRIDGE_TOKEN.
package main

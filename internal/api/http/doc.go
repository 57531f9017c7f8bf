// Package http maps the bridge operations onto gin handlers.
//
// Every JSON body carries "ok". Failures carry "error" and, when the package
// tool ran, its captured "stdout" and "stderr". Status codes follow the
// bridge error kind:
//
//	validation  400
//	capability  500
//	subprocess  500
//	internal    500
//	rejected    200 (ok:false, nothing was changed)
package http

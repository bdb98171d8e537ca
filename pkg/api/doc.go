// Package api defines the ottshare RPC surface: message types, procedure
// names and Connect client/handler constructors.
//
// Messages are plain Go structs carried by a JSON codec registered under
// the "json" name, so any Connect client speaking
// "Content-Type: application/json" can call the service.
package api

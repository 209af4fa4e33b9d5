// Package http implements the loopback status API of the visit sync client.
//
// It exposes the sync status of the device, a manual sync trigger and the
// local capture endpoints. Request tracing, access logging, body
// decompression and the optional integrity check run as middleware before a
// request reaches the service layer.
package http

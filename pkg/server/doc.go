// Package server exposes the vault over HTTP.
//
// The API is JSON throughout:
//
//	POST /register                  create a user (admin token, or
//	                                none during bootstrap)
//	POST /login                     exchange credentials for a token
//	POST /secrets                   store a secret
//	GET  /secrets                   list visible secrets
//	GET  /secrets/{name}            read a secret's value
//	POST /secrets/{name}/rotate     replace a secret's value
//	GET  /audit                     list the audit trail
//	GET  /health                    readiness probe (no auth)
//
// Authenticated routes expect "Authorization: Bearer <token>".
package server

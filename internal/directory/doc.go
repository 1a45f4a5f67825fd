// Package directory implements the server side of the messaging fabric:
// the authoritative registry of node names, advertised topics, and
// offered services that every node's REQ socket talks to. It is the
// implicit collaborator package node's Connect/Advertise/Call methods
// assume is reachable at a well-known endpoint.
package directory

// MainRepPort is the well-known TCP port the directory binds its REP
// socket to, mirroring libmvsim's MVSIM_PORTNO_MAIN_REP constant.
const MainRepPort = 9999

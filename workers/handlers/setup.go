package handlers

import "gostablebridge/pool"

var bridgePool *pool.Pool

// Setup wires the handlers to the pool instance. Must be called before the
// HTTP worker starts serving.
func Setup(p *pool.Pool) {
	bridgePool = p
}

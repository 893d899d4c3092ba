// Package redis provides Redis-backed adapters: a cooldown store shared by
// every replica of a host.
package redis

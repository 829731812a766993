// Package fuel routes propellant from tanks to engines through the
// vessel's attachment tree.
//
// Feed lines follow structural joints in both directions but never cross
// a decoupler. Each engine drains its reachable tanks farthest first so
// drop stages empty before the tanks that stay with the craft. When
// several engines pull on one tank in the same tick, claims are planned
// against a snapshot of tank levels and then scaled fairly before any
// fuel moves, so the outcome does not depend on engine order.
package fuel

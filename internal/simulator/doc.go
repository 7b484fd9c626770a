// Package simulator is the Monte Carlo driver: it plays many independent
// games and collects the distribution of their outcomes.
package simulator

// Package statistics holds the frequency tables produced by a simulation run.
package statistics

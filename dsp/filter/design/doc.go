// Package design provides RBJ-style biquad coefficient designers.
//
// The functions in this package produce coefficients consumable by
// dsp/filter/biquad. Invalid frequencies or sample rates yield zero
// coefficients, which silence the section.
package design

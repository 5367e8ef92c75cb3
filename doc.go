// Package qfactor is the classical half of a set of integer factorization experiments:
// trial division, smooth-relation sieving with a congruence-of-squares search, and (in
// package period) the continued-fraction post-processing of Shor-style phase
// measurements. Package keygen derives small RSA keypairs from integer seeds.
//
// Everything operates on github.com/qfactor/qfactor/big integers and is free of shared
// state; see the package tests for usage.
package qfactor

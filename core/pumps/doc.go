// Package pumps models the platform's bank of water pump series.
//
// Pump series are indivisible: a bank of N series with K active means the
// first K series run and the remaining ones are stopped. The emergency
// lockout forces every series off and rejects reactivation until it is
// cleared by the operator.
package pumps

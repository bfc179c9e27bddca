// Package api
// Author: momentics <momentics@gmail.com>
//
// Public contracts of the localbuf library: reference strength classes,
// accounting and classification interfaces, stats types, and the error
// taxonomy shared by all packages.
//
// Implementations live in the buffers package; this package carries no
// state and no platform dependencies.
package api

// Package post reshapes per-channel adjoint sources into the 3-component
// set a spectral-element wave solver expects.
//
// The pipeline runs in a fixed order: convert each adjoint source to a
// trace on the shared nominal start time, zero-pad every trace to the
// reference synthetic's time range, resample onto the reference's exact
// sample grid, optionally sum co-located instruments per component with
// explicit weights, synthesize zero traces for absent components, and rotate
// the (Radial, Transverse) pair into (North, East) using the event/station
// back azimuth. Each stage relies on the invariants established by the
// previous one, so the order is not negotiable.
//
// Structural problems (missing channels, inverted ranges, duplicate
// components) abort the station. A failed rotation does not: the unrotated
// horizontals are returned and the failure is reported in Result.RotationErr.
package post

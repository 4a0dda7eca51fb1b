// Package geo provides great-circle distance on a spherical Earth.
//
// Distances use the haversine formula with a mean Earth radius of
// [EarthRadiusKm]. No projection math is done here: inputs are decimal
// degrees and outputs are kilometers.
//
// [DistanceKm] never validates its inputs; NaN in, NaN out. Callers that
// accept coordinates from users should check them first with
// [ValidCoordinate] or errors.ValidateCoordinate.
package geo

/*
Package routegeo converts arbitrary upstream route payloads into a canonical
route-feature representation.

Upstream sources disagree about shape: some return a proper GeoJSON
FeatureCollection, some a bare array of route objects, some wrap the array in
a data/routes envelope, and some carry coordinates in ad hoc fields
(coordinates, path, route, encoded polyline strings). The normalizer resolves
these with an explicit, ordered list of structural predicates; any element
that yields no valid geometry is dropped rather than raising.

Coordinates are longitude,latitude at the data-source boundary. The
presentation layer wants latitude,longitude; Feature.LatLngPaths performs
that explicit swap.
*/
package routegeo

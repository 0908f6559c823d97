// Package domain models NSW Beachwatch water-quality sites.
//
// # Data Source
//
// The NSW Department of Climate Change, Energy, the Environment and Water
// publishes a GeoJSON FeatureCollection at
// https://api.beachwatch.nsw.gov.au/public/sites/geojson. Each Feature is one
// monitored swimming site; its properties carry the latest pollution forecast
// and the latest enterococci sample result. The feed can be filtered by
// repeating the site_name query parameter.
//
// # Feed Conventions
//
// Property keys are camelCase:
//
//	id                          opaque site identifier
//	siteName                    display name, also the filter key
//	pollutionForecast           "Unlikely", "Possible", "Likely" or null
//	pollutionForecastTimeStamp  ISO-8601 issue time, e.g. "2024-06-18T03:30:04.62+00:00"
//	latestResult                "Good", "Fair", "Poor", "Very poor" or null
//	latestResultRating          1-4 star rating or null, occasionally a numeric string
//	latestResultObservationDate ISO-8601 sampling time, e.g. "2024-06-14T10:00:00+10:00"
//
// Null and missing values both map to nil on [Site]. A value that is present
// but cannot be coerced is reported as a [FieldError]; schema drift is fatal
// rather than silently dropped.
//
// Geometry is a standard GeoJSON geometry (in practice a Point in lon,lat
// order) and is passed through untouched. [Site.Point] decodes it on demand.
//
// # Resolving Names
//
// The feed silently omits unknown site names. [CheckResolved] treats a
// filtered response as unresolved when it is empty or its feature count
// differs from the number of names requested, and reports the requested names
// that are absent from the response.
package domain

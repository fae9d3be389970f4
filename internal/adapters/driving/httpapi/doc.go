// Package httpapi exposes the enrichment pipeline and tag suggestions over
// HTTP using the chi router.
//
// Routes:
//
//	GET  /health                      liveness
//	GET  /metrics                     prometheus exposition
//	GET  /api/tags/suggest?q=&limit=  tag suggestions
//	POST /api/processing/media/{id}   enrich one media item (bearer JWT)
//	GET  /api/media/{id}              read one media item (bearer JWT)
package httpapi

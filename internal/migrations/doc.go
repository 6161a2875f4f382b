// Package migrations reads GitHub migration archives.
//
// A migration archive is a gzipped tarball holding one JSON file per
// record type. Users live in users_NNNNNN.json files. ExtractUserMappings
// turns those into the login,name,email,url rows used to map archived
// users onto accounts on the target instance.
package migrations
